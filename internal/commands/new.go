// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
	"github.com/ncblakely/GiantsEdit-sub002/internal/prompts"
	"github.com/ncblakely/GiantsEdit-sub002/internal/session"
	"github.com/spf13/cobra"
)

// Default field values for freshly created files.
const (
	defaultWorldVersion   = 3
	defaultMissionVersion = 1
	defaultMapSize        = 512
	defaultTileSize       = 64
	defaultTileScale      = 0.25
	defaultFogMax         = 4000
)

type newOptions struct {
	kind           string
	name           string
	width          int
	height         int
	world          string
	nonInteractive bool
	force          bool
}

func newNewCmd() *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Create a minimal world or mission file",
		Long: `Create a new world or mission file with default sections. Runs an
interactive form unless --non-interactive is given with --kind and --name.`,
		Example: `  # Interactive mode
  giantsedit new island.gwd

  # Non-interactive
  giantsedit new island.gwd --kind world --name "Three Way Island" --non-interactive
  giantsedit new raid.gms --kind mission --name "Raid the Base" --world island.gwd --non-interactive`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runNew(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "world", "File kind (world or mission)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Map or mission name")
	cmd.Flags().IntVar(&opts.width, "width", defaultMapSize, "Map width (world only)")
	cmd.Flags().IntVar(&opts.height, "height", defaultMapSize, "Map height (world only)")
	cmd.Flags().StringVarP(&opts.world, "world", "w", "", "World file a mission references")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --name)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file without asking")

	return cmd
}

func runNew(ctx *session.Context, path string, opts *newOptions) error {
	if opts.nonInteractive {
		if opts.name == "" {
			return errors.New("non-interactive mode requires --name")
		}
	} else {
		width := strconv.Itoa(opts.width)
		height := strconv.Itoa(opts.height)
		if err := prompts.RunNewForm(&opts.kind, &opts.name, &width, &height); err != nil {
			return err
		}
		// Validated as positive integers by the form.
		opts.width, _ = strconv.Atoi(width)
		opts.height, _ = strconv.Atoi(height)
		if opts.kind == "mission" && opts.world == "" {
			if err := prompts.RunWorldRefForm(&opts.world); err != nil {
				return err
			}
		}
	}

	if _, err := os.Stat(path); err == nil && !opts.force {
		if opts.nonInteractive {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		overwrite, err := prompts.ConfirmOverwrite(path)
		if err != nil {
			return err
		}
		if !overwrite {
			return errors.New("aborted")
		}
	}

	var tree *doctree.Node
	var err error
	switch opts.kind {
	case "world":
		tree, err = buildWorld(ctx, opts)
	case "mission":
		if opts.world == "" {
			return errors.New("a mission requires --world")
		}
		tree, err = buildMission(ctx, opts)
	default:
		return fmt.Errorf("unknown file kind %q (world or mission)", opts.kind)
	}
	if err != nil {
		return err
	}

	c, err := ctx.Codecs.Get(opts.kind)
	if err != nil {
		return err
	}
	data, err := c.Save(tree)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // map files are not secrets
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Created %s file %s (%d bytes)\n", opts.kind, path, len(data))
	return nil
}

// buildWorld assembles a minimal valid world document: header, tiling, both
// fog sections, and version fields, with no textures, objects, effects,
// scenarios, or includes.
func buildWorld(ctx *session.Context, opts *newOptions) (*doctree.Node, error) {
	root := doctree.New(format.RootWorld, ctx.Rules.Lookup(format.RootWorld))

	h, err := root.AddNode(format.NodeHeader)
	if err != nil {
		return nil, err
	}
	if _, err := h.AddInt32(format.LeafVersion, defaultWorldVersion); err != nil {
		return nil, err
	}
	if _, err := h.AddString(format.LeafName, opts.name); err != nil {
		return nil, err
	}
	if _, err := h.AddInt32(format.LeafWidth, int32(opts.width)); err != nil {
		return nil, err
	}
	if _, err := h.AddInt32(format.LeafHeight, int32(opts.height)); err != nil {
		return nil, err
	}

	t, err := root.AddNode(format.NodeTiling)
	if err != nil {
		return nil, err
	}
	if _, err := t.AddInt32(format.LeafTileWidth, defaultTileSize); err != nil {
		return nil, err
	}
	if _, err := t.AddInt32(format.LeafTileHeight, defaultTileSize); err != nil {
		return nil, err
	}
	if _, err := t.AddSingle(format.LeafTileScale, defaultTileScale); err != nil {
		return nil, err
	}

	if err := addDefaultFog(root, format.NodeFog); err != nil {
		return nil, err
	}
	if err := addDefaultFog(root, format.NodeUnderwater); err != nil {
		return nil, err
	}
	if err := addVersionLeaves(root); err != nil {
		return nil, err
	}

	return root, nil
}

// buildMission assembles a minimal valid mission document.
func buildMission(ctx *session.Context, opts *newOptions) (*doctree.Node, error) {
	root := doctree.New(format.RootMission, ctx.Rules.Lookup(format.RootMission))

	h, err := root.AddNode(format.NodeHeader)
	if err != nil {
		return nil, err
	}
	if _, err := h.AddInt32(format.LeafVersion, defaultMissionVersion); err != nil {
		return nil, err
	}
	if _, err := h.AddString(format.LeafName, opts.name); err != nil {
		return nil, err
	}
	if _, err := h.AddString(format.LeafWorld, opts.world); err != nil {
		return nil, err
	}

	if err := addVersionLeaves(root); err != nil {
		return nil, err
	}

	return root, nil
}

func addDefaultFog(root *doctree.Node, name string) error {
	f, err := root.AddNode(name)
	if err != nil {
		return err
	}
	if _, err := f.AddSingle(format.LeafMin, 0); err != nil {
		return err
	}
	if _, err := f.AddSingle(format.LeafMax, defaultFogMax); err != nil {
		return err
	}
	for _, channel := range []string{format.LeafR, format.LeafG, format.LeafB} {
		if _, err := f.AddByte(channel, 255); err != nil {
			return err
		}
	}
	return nil
}

func addVersionLeaves(root *doctree.Node) error {
	for _, name := range []string{format.LeafObjectVersion, format.LeafEffectVersion, format.LeafScenarioVersion} {
		if _, err := root.AddInt32(name, 1); err != nil {
			return err
		}
	}
	return nil
}
