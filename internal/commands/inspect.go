// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
	"github.com/ncblakely/GiantsEdit-sub002/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	leafStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type inspectOptions struct {
	output string // output format: text, json, yaml
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the document tree of a world or mission file",
		Long:  `Decode a world or mission file and print its document tree. The format is detected from the file's magic value.`,
		Example: `  # Human-readable tree
  giantsedit inspect island.gwd

  # Tree as JSON
  giantsedit inspect raid.gms -o json`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = ctx.Config.Output
			}
			return runInspect(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format (text, json, yaml)")

	return cmd
}

func runInspect(ctx *session.Context, path string, opts *inspectOptions) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}

	c, tree, err := ctx.Codecs.Probe(data)
	if err != nil {
		return fmt.Errorf("corrupt %s file: %w", c.Name(), err)
	}
	if tree == nil {
		return fmt.Errorf("%s is not a recognized world or mission file", path)
	}

	switch opts.output {
	case "json":
		output := map[string]any{"format": c.Name(), tree.Name(): doctree.ToMap(tree)}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)

	case "yaml":
		output := map[string]any{"format": c.Name(), tree.Name(): doctree.ToMap(tree)}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(output)

	default:
		fmt.Printf("Format: %s\n\n", c.Name())
		printTree(tree, "")
		return nil
	}
}

func printTree(n *doctree.Node, indent string) {
	fmt.Println(indent + sectionStyle.Render(n.Name()))
	for l := range n.Leaves() {
		v := l.Value()
		if v == nil {
			fmt.Printf("%s  %s\n", indent, leafStyle.Render(l.Name()))
			continue
		}
		fmt.Printf("%s  %s = %v\n", indent, leafStyle.Render(l.Name()), v)
	}
	for c := range n.Nodes() {
		printTree(c, indent+"  ")
	}
}
