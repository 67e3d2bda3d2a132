// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/ncblakely/GiantsEdit-sub002/internal/schema"
	"github.com/ncblakely/GiantsEdit-sub002/internal/session"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "schema",
		Short:             "Inspect the rule catalog",
		PersistentPreRunE: session.PreRunLoad,
	}

	cmd.AddCommand(newSchemaListCmd())
	cmd.AddCommand(newSchemaDescribeCmd())
	cmd.AddCommand(newSchemaExportCmd())

	return cmd
}

func newSchemaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the node types the rule catalog declares",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			for _, name := range ctx.Rules.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newSchemaDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe TYPE",
		Short: "Show the declared slots of a node type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runSchemaDescribe(ctx, args[0])
		},
	}
}

func runSchemaDescribe(ctx *session.Context, name string) error {
	rule := ctx.Rules.Lookup(name)
	if rule == nil {
		return fmt.Errorf("type %q not found in the rule catalog", name)
	}

	fmt.Printf("Type: %s\n", rule.Name)

	if len(rule.SubNodes) > 0 {
		fmt.Println("Nodes:")
		for _, slot := range rule.SubNodes {
			fmt.Printf("  - %s (%s, %s)\n", slot.Name, slot.Type.Name, slot.Occurs)
		}
	} else {
		fmt.Println("Nodes:  (none)")
	}

	if len(rule.SubLeaves) > 0 {
		fmt.Println("Leaves:")
		for _, slot := range rule.SubLeaves {
			extra := ""
			if slot.MaxLength > 0 {
				extra = fmt.Sprintf(", max %d", slot.MaxLength)
			}
			fmt.Printf("  - %s (%s, %s%s)\n", slot.Name, slot.Type, slot.Occurs, extra)
		}
	} else {
		fmt.Println("Leaves: (none)")
	}

	return nil
}

type schemaExportOptions struct {
	out string
}

func newSchemaExportCmd() *cobra.Command {
	opts := &schemaExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rule catalog as a JSON Schema document",
		Long: `Translate the rule catalog into a JSON Schema document with one $defs
entry per node type. Useful for editors and tooling that validate the
JSON/YAML renditions of a document tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runSchemaExport(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func runSchemaExport(ctx *session.Context, opts *schemaExportOptions) error {
	doc := exportCatalog(ctx.Rules)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize schema: %w", err)
	}
	data = append(data, '\n')

	if opts.out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(opts.out, data, 0o644) //nolint:gosec // schema docs are not secrets
}

// exportCatalog translates the rule catalog into a JSON Schema document:
// one $defs entry per node type, with cardinalities mapped to
// required/array shapes.
func exportCatalog(cat *schema.Catalog) *jsonschema.Schema {
	doc := &jsonschema.Schema{
		Type:        "object",
		Description: "Rule catalog for legacy world and mission documents",
		Defs:        make(map[string]*jsonschema.Schema),
	}
	for _, name := range cat.Names() {
		doc.Defs[name] = exportType(cat.Lookup(name))
	}
	return doc
}

func exportType(rule *schema.Node) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema),
	}
	for _, slot := range rule.SubLeaves {
		out.Properties[slot.Name] = occursShape(slot.Occurs, exportLeafType(slot))
		if slot.Occurs.Required() {
			out.Required = append(out.Required, slot.Name)
		}
	}
	for _, slot := range rule.SubNodes {
		ref := &jsonschema.Schema{Ref: "#/$defs/" + slot.Type.Name}
		out.Properties[slot.Name] = occursShape(slot.Occurs, ref)
		if slot.Occurs.Required() {
			out.Required = append(out.Required, slot.Name)
		}
	}
	return out
}

// occursShape wraps unbounded slots in an array schema.
func occursShape(occurs schema.Cardinality, item *jsonschema.Schema) *jsonschema.Schema {
	if occurs.Single() {
		return item
	}
	return &jsonschema.Schema{Type: "array", Items: item}
}

func exportLeafType(slot schema.LeafSlot) *jsonschema.Schema {
	switch slot.Type {
	case schema.TypeByte:
		return &jsonschema.Schema{Type: "integer", Minimum: floatPtr(0), Maximum: floatPtr(255)}
	case schema.TypeInt32:
		return &jsonschema.Schema{Type: "integer"}
	case schema.TypeSingle:
		return &jsonschema.Schema{Type: "number"}
	case schema.TypeString:
		return &jsonschema.Schema{Type: "string"}
	default: // void: presence is the value
		return &jsonschema.Schema{Type: "boolean"}
	}
}

func floatPtr(v float64) *float64 { return &v }
