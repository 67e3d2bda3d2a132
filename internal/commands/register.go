// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "giantsedit",
		Short: "Inspect, create, and verify legacy world and mission files",
	}

	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newProbeCmd())
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
