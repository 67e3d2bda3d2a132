// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ncblakely/GiantsEdit-sub002/internal/codec"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
	"github.com/ncblakely/GiantsEdit-sub002/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) *session.Context {
	t.Helper()
	rules, err := format.Rules()
	require.NoError(t, err)
	world := codec.NewWorld(rules)
	mission := codec.NewMission(rules)
	return &session.Context{
		Rules: rules,
		Codecs: codec.Register{
			world.Name():   world,
			mission.Name(): mission,
		},
	}
}

func TestBuildWorld(t *testing.T) {
	ctx := testContext(t)
	tree, err := buildWorld(ctx, &newOptions{name: "Fresh Map", width: 256, height: 128})
	require.NoError(t, err)

	require.NoError(t, tree.Validate(), "a fresh world must satisfy the rule catalog")

	h, err := tree.GetNode(format.NodeHeader)
	require.NoError(t, err)
	name, err := h.GetLeaf(format.LeafName)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Map", name.String())
	width, err := h.GetLeaf(format.LeafWidth)
	require.NoError(t, err)
	assert.Equal(t, int32(256), width.Int32())
}

func TestBuildMission(t *testing.T) {
	ctx := testContext(t)
	tree, err := buildMission(ctx, &newOptions{name: "Raid", world: "island.gwd"})
	require.NoError(t, err)

	require.NoError(t, tree.Validate())

	h, err := tree.GetNode(format.NodeHeader)
	require.NoError(t, err)
	world, err := h.GetLeaf(format.LeafWorld)
	require.NoError(t, err)
	assert.Equal(t, "island.gwd", world.String())
}

func TestRunNew_NonInteractive(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "fresh.gwd")

	opts := &newOptions{
		kind:           "world",
		name:           "Fresh Map",
		width:          256,
		height:         256,
		nonInteractive: true,
	}
	require.NoError(t, runNew(ctx, path, opts))

	data, err := os.ReadFile(path) //nolint:gosec // test file path
	require.NoError(t, err)

	// Every created file must probe back to its own format.
	c, tree, err := ctx.Codecs.Probe(data)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "world", c.Name())

	// Existing files are not overwritten without --force.
	err = runNew(ctx, path, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	opts.force = true
	assert.NoError(t, runNew(ctx, path, opts))
}

func TestRunNew_MissionRequiresWorld(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "raid.gms")

	opts := &newOptions{kind: "mission", name: "Raid", nonInteractive: true}
	err := runNew(ctx, path, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--world")
}

func TestRunNew_RequiresName(t *testing.T) {
	ctx := testContext(t)
	err := runNew(ctx, filepath.Join(t.TempDir(), "x.gwd"), &newOptions{kind: "world", nonInteractive: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name")
}
