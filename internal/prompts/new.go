// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
)

// RunNewForm runs the interactive form for creating a new map or mission
// file. Width and height are collected as strings and validated as positive
// integers; the mission form ignores them.
func RunNewForm(kind, name, width, height *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("File kind").
				Options(
					huh.NewOption("world", "world"),
					huh.NewOption("mission", "mission"),
				).
				Value(kind),
			huh.NewInput().
				Title("Name").
				Placeholder("e.g., Three Way Island").
				Value(name).
				Validate(nameValidator(format.HeaderNameLen - 1)),
			huh.NewInput().
				Title("Width (world only)").
				Value(width).
				Validate(dimensionValidator),
			huh.NewInput().
				Title("Height (world only)").
				Value(height).
				Validate(dimensionValidator),
		),
	).Run()
}

// RunWorldRefForm asks for the world file a new mission references.
func RunWorldRefForm(world *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("World file").
				Placeholder("e.g., island.gwd").
				Value(world).
				Validate(requiredValidator("world file")),
		),
	).Run()
}

// ConfirmOverwrite asks before replacing an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	).Run()
	return overwrite, err
}
