// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package codec_test

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/ncblakely/GiantsEdit-sub002/internal/codec"
	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
	"github.com/ncblakely/GiantsEdit-sub002/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rules(t *testing.T) *schema.Catalog {
	t.Helper()
	cat, err := format.Rules()
	require.NoError(t, err)
	return cat
}

// flatten renders a tree as one line per node and leaf in canonical order,
// so trees can be compared for identical names, order, and values.
func flatten(n *doctree.Node) []string {
	var out []string
	n.Walk(
		func(node *doctree.Node) { out = append(out, "node "+node.Name()) },
		func(leaf *doctree.Leaf) { out = append(out, fmt.Sprintf("leaf %s=%v", leaf.Name(), leaf.Value())) },
	)
	return out
}

func mustAddInt32(t *testing.T, n *doctree.Node, name string, v int32) {
	t.Helper()
	_, err := n.AddInt32(name, v)
	require.NoError(t, err)
}

func mustAddSingle(t *testing.T, n *doctree.Node, name string, v float32) {
	t.Helper()
	_, err := n.AddSingle(name, v)
	require.NoError(t, err)
}

func mustAddByte(t *testing.T, n *doctree.Node, name string, v byte) {
	t.Helper()
	_, err := n.AddByte(name, v)
	require.NoError(t, err)
}

func mustAddString(t *testing.T, n *doctree.Node, name, v string) {
	t.Helper()
	_, err := n.AddString(name, v)
	require.NoError(t, err)
}

func addFog(t *testing.T, root *doctree.Node, name string, minDist, maxDist float32) {
	t.Helper()
	f, err := root.AddNode(name)
	require.NoError(t, err)
	mustAddSingle(t, f, format.LeafMin, minDist)
	mustAddSingle(t, f, format.LeafMax, maxDist)
	mustAddByte(t, f, format.LeafR, 120)
	mustAddByte(t, f, format.LeafG, 140)
	mustAddByte(t, f, format.LeafB, 200)
}

func addObject(t *testing.T, root *doctree.Node, typ int32, x, y, z, facing float32) *doctree.Node {
	t.Helper()
	o, err := root.AddNode(format.NodeObject)
	require.NoError(t, err)
	mustAddInt32(t, o, format.LeafType, typ)
	mustAddSingle(t, o, format.LeafX, x)
	mustAddSingle(t, o, format.LeafY, y)
	mustAddSingle(t, o, format.LeafZ, z)
	mustAddSingle(t, o, format.LeafDirFacing, facing)
	return o
}

// newWorldTree builds a complete, valid world document.
func newWorldTree(t *testing.T) *doctree.Node {
	t.Helper()
	root := doctree.New(format.RootWorld, rules(t).Lookup(format.RootWorld))

	h, err := root.AddNode(format.NodeHeader)
	require.NoError(t, err)
	mustAddInt32(t, h, format.LeafVersion, 3)
	mustAddString(t, h, format.LeafName, "Three Way Island")
	mustAddInt32(t, h, format.LeafWidth, 512)
	mustAddInt32(t, h, format.LeafHeight, 512)

	tl, err := root.AddNode(format.NodeTiling)
	require.NoError(t, err)
	mustAddInt32(t, tl, format.LeafTileWidth, 64)
	mustAddInt32(t, tl, format.LeafTileHeight, 64)
	mustAddSingle(t, tl, format.LeafTileScale, 0.25)

	addFog(t, root, format.NodeFog, 100, 4000)
	addFog(t, root, format.NodeUnderwater, 0, 250)

	tex, err := root.AddNode(format.NodeTexture)
	require.NoError(t, err)
	mustAddByte(t, tex, format.LeafFlags, 1)
	mustAddByte(t, tex, format.LeafSkyDome, 0)
	mustAddString(t, tex, format.LeafName, "Grass01")

	mustAddInt32(t, root, format.LeafObjectVersion, 2)
	mustAddInt32(t, root, format.LeafEffectVersion, 1)
	mustAddInt32(t, root, format.LeafScenarioVersion, 1)

	e, err := root.AddNode(format.NodeEffect)
	require.NoError(t, err)
	mustAddInt32(t, e, format.LeafType, 12)
	mustAddSingle(t, e, format.LeafX, 10)
	mustAddSingle(t, e, format.LeafY, 20)
	mustAddSingle(t, e, format.LeafZ, 30)
	mustAddString(t, e, format.LeafName, "waterfall")

	s, err := root.AddNode(format.NodeScenario)
	require.NoError(t, err)
	mustAddString(t, s, format.LeafName, "Skirmish")
	mustAddString(t, s, format.LeafFile, "skirmish.gms")

	mustAddString(t, root, format.LeafInclude, "common.gti")
	mustAddString(t, root, format.LeafInclude, "island.gti")

	return root
}

func TestWorld_RoundTrip(t *testing.T) {
	w := codec.NewWorld(rules(t))

	tests := []struct {
		name    string
		objects int
	}{
		{"zero objects", 0},
		{"one object", 1},
		{"many objects", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newWorldTree(t)
			for i := range tt.objects {
				addObject(t, root, int32(i), float32(i), float32(i)+0.5, -float32(i), 1.5)
			}

			data, err := w.Save(root)
			require.NoError(t, err)

			loaded, err := w.Load(data)
			require.NoError(t, err)
			require.NotNil(t, loaded)

			assert.Equal(t, flatten(root), flatten(loaded))

			count, err := loaded.NodeCountOf(format.NodeObject)
			require.NoError(t, err)
			assert.Equal(t, tt.objects, count)
		})
	}
}

func TestWorld_SecondSaveIsByteIdentical(t *testing.T) {
	w := codec.NewWorld(rules(t))
	root := newWorldTree(t)
	addObject(t, root, 50, 1, 2, 3, 0.5)

	first, err := w.Save(root)
	require.NoError(t, err)
	loaded, err := w.Load(first)
	require.NoError(t, err)
	second, err := w.Save(loaded)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWorld_MagicRejection(t *testing.T) {
	w := codec.NewWorld(rules(t))

	tests := []struct {
		name  string
		magic uint32
	}{
		{"mission magic", format.MissionMagic},
		{"zero magic", 0},
		{"arbitrary bytes", 0xDEADBEEF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := binary.LittleEndian.AppendUint32(nil, tt.magic)
			tree, err := w.Load(data)
			assert.NoError(t, err, "wrong magic is not a failure")
			assert.Nil(t, tree)
		})
	}
}

func TestWorld_ShortMagic(t *testing.T) {
	w := codec.NewWorld(rules(t))
	_, err := w.Load([]byte{0x47, 0x57})
	assert.Error(t, err)
}

func TestWorld_TruncatedAnywhereFails(t *testing.T) {
	w := codec.NewWorld(rules(t))
	root := newWorldTree(t)
	o := addObject(t, root, 50, 1, 2, 3, 0.5)
	_, err := o.AddSingle(format.LeafTiltForward, 0.2)
	require.NoError(t, err)
	_, err = o.AddSingle(format.LeafTiltLeft, 0.3)
	require.NoError(t, err)

	data, err := w.Save(root)
	require.NoError(t, err)

	// Cutting the buffer at any point past the magic must fail cleanly,
	// never return a partial tree.
	for cut := 4; cut < len(data); cut++ {
		tree, err := w.Load(data[:cut])
		assert.Error(t, err, "cut at %d", cut)
		assert.Nil(t, tree, "cut at %d", cut)
	}
}

func TestWorld_SaveMissingSectionFails(t *testing.T) {
	w := codec.NewWorld(rules(t))
	root := doctree.New(format.RootWorld, rules(t).Lookup(format.RootWorld))

	_, err := w.Save(root)
	assert.ErrorIs(t, err, doctree.ErrNotFound)
}

func TestWorld_IncludeCap(t *testing.T) {
	w := codec.NewWorld(rules(t))
	root := newWorldTree(t)
	for i := range format.MaxIncludeFiles + 1 {
		mustAddString(t, root, format.LeafInclude, fmt.Sprintf("inc%02d.gti", i))
	}

	_, err := w.Save(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed the cap")
}

func TestWorld_OverlongNameRejectedAtSave(t *testing.T) {
	w := codec.NewWorld(rules(t))

	// An unbound tree can carry strings the fixed buffers cannot; the
	// save must reject them rather than truncate.
	root := doctree.New(format.RootWorld, nil)
	h, err := root.AddNode(format.NodeHeader)
	require.NoError(t, err)
	mustAddInt32(t, h, format.LeafVersion, 1)
	mustAddString(t, h, format.LeafName, "a name well beyond the thirty-two byte fixed buffer size")
	mustAddInt32(t, h, format.LeafWidth, 1)
	mustAddInt32(t, h, format.LeafHeight, 1)

	_, err = w.Save(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fixed field")
}
