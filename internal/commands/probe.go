// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package commands

import (
	"fmt"
	"os"

	"github.com/ncblakely/GiantsEdit-sub002/internal/session"
	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe FILE",
		Short: "Identify which format a file is",
		Long: `Try each known format against the file's magic value and report the one
that matches. A matching magic followed by malformed content is reported as
corruption, distinct from an unrecognized format.`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runProbe(ctx, args[0])
		},
	}

	return cmd
}

func runProbe(ctx *session.Context, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}

	c, tree, err := ctx.Codecs.Probe(data)
	if err != nil {
		return fmt.Errorf("%s matches the %s format but is corrupt: %w", path, c.Name(), err)
	}
	if tree == nil {
		return fmt.Errorf("%s is not a recognized world or mission file", path)
	}

	fmt.Printf("%s: %s file (%d nodes, %d bytes)\n", path, c.Name(), countNodes(tree), len(data))
	return nil
}
