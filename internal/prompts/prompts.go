// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package prompts contains the interactive forms the CLI presents when run
// without the flags a command needs.
package prompts

import (
	"errors"
	"fmt"
	"strconv"
)

func requiredValidator(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func nameValidator(maxLen int) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New("name is required")
		}
		if len(s) > maxLen {
			return fmt.Errorf("name must be at most %d characters", maxLen)
		}
		return nil
	}
}

func dimensionValidator(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("must be a whole number")
	}
	if v <= 0 {
		return errors.New("must be positive")
	}
	return nil
}
