// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package codec_test

import (
	"testing"

	"github.com/ncblakely/GiantsEdit-sub002/internal/codec"
	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMissionTree builds a minimal valid mission document.
func newMissionTree(t *testing.T) *doctree.Node {
	t.Helper()
	root := doctree.New(format.RootMission, rules(t).Lookup(format.RootMission))

	h, err := root.AddNode(format.NodeHeader)
	require.NoError(t, err)
	mustAddInt32(t, h, format.LeafVersion, 1)
	mustAddString(t, h, format.LeafName, "Raid the Base")
	mustAddString(t, h, format.LeafWorld, "island.gwd")

	mustAddInt32(t, root, format.LeafObjectVersion, 2)
	mustAddInt32(t, root, format.LeafEffectVersion, 1)
	mustAddInt32(t, root, format.LeafScenarioVersion, 1)

	return root
}

func TestMission_RoundTrip(t *testing.T) {
	m := codec.NewMission(rules(t))
	root := newMissionTree(t)
	addObject(t, root, 7, 100, 0, -100, 3.14)
	mustAddString(t, root, format.LeafInclude, "shared.gti")

	data, err := m.Save(root)
	require.NoError(t, err)

	loaded, err := m.Load(data)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, flatten(root), flatten(loaded))
}

func TestMission_MagicRejection(t *testing.T) {
	m := codec.NewMission(rules(t))

	w := codec.NewWorld(rules(t))
	worldData, err := w.Save(newWorldTree(t))
	require.NoError(t, err)

	tree, err := m.Load(worldData)
	assert.NoError(t, err, "a world file is not a mission failure")
	assert.Nil(t, tree)
}

func TestObject_VariantSelection(t *testing.T) {
	m := codec.NewMission(rules(t))

	type opt struct {
		tilt   bool
		aiMode bool
		team   bool
		scale  bool
	}
	tests := []struct {
		name string
		opt  opt
	}{
		{"baseline", opt{}},
		{"three angle", opt{tilt: true}},
		{"ai mode only", opt{aiMode: true}},
		{"team only", opt{team: true}},
		{"scale only", opt{scale: true}},
		{"ai mode and team", opt{aiMode: true, team: true}},
		{"all optional fields", opt{tilt: true, aiMode: true, team: true, scale: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newMissionTree(t)
			o := addObject(t, root, 42, 1, 2, 3, 0.5)
			if tt.opt.tilt {
				mustAddSingle(t, o, format.LeafTiltForward, 0.2)
				mustAddSingle(t, o, format.LeafTiltLeft, 0.3)
			}
			if tt.opt.aiMode {
				mustAddByte(t, o, format.LeafAIMode, 5)
			}
			if tt.opt.team {
				mustAddInt32(t, o, format.LeafTeam, 2)
			}
			if tt.opt.scale {
				mustAddSingle(t, o, format.LeafScale, 1.25)
			}

			data, err := m.Save(root)
			require.NoError(t, err)
			loaded, err := m.Load(data)
			require.NoError(t, err)
			require.NotNil(t, loaded)

			got, err := loaded.GetNode(format.NodeObject)
			require.NoError(t, err)

			// The optional leaf set after decoding equals the set before
			// encoding; absent attributes produce no leaf at all.
			for name, want := range map[string]bool{
				format.LeafTiltForward: tt.opt.tilt,
				format.LeafTiltLeft:    tt.opt.tilt,
				format.LeafAIMode:      tt.opt.aiMode,
				format.LeafTeam:        tt.opt.team,
				format.LeafScale:       tt.opt.scale,
			} {
				assert.Equal(t, want, got.FindLeaf(name) != nil, name)
			}

			assert.Equal(t, flatten(root), flatten(loaded))
		})
	}
}

func TestObject_LoneTiltFailsAtSave(t *testing.T) {
	m := codec.NewMission(rules(t))
	root := newMissionTree(t)
	o := addObject(t, root, 1, 0, 0, 0, 0)
	mustAddSingle(t, o, format.LeafTiltForward, 0.2)

	_, err := m.Save(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "present together")
}

// The canonical two-object fixture: one baseline object, one three-angle
// object, nothing else.
func TestObject_TwoObjectFixture(t *testing.T) {
	m := codec.NewMission(rules(t))
	root := newMissionTree(t)

	addObject(t, root, 50, 1.0, 2.0, 3.0, 0.5)
	o2 := addObject(t, root, 100, -1.0, -2.0, -3.0, 0.1)
	mustAddSingle(t, o2, format.LeafTiltForward, 0.2)
	mustAddSingle(t, o2, format.LeafTiltLeft, 0.3)

	data, err := m.Save(root)
	require.NoError(t, err)
	loaded, err := m.Load(data)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	var objects []*doctree.Node
	for n := range loaded.Nodes() {
		if n.Name() == format.NodeObject {
			objects = append(objects, n)
		}
	}
	require.Len(t, objects, 2)

	first := objects[0]
	assert.Equal(t, 5, first.LeafCount(), "baseline object carries exactly five leaves")
	assert.Equal(t, int32(50), first.FindLeaf(format.LeafType).Int32())
	assert.Equal(t, float32(1.0), first.FindLeaf(format.LeafX).Single())
	assert.Equal(t, float32(2.0), first.FindLeaf(format.LeafY).Single())
	assert.Equal(t, float32(3.0), first.FindLeaf(format.LeafZ).Single())
	assert.Equal(t, float32(0.5), first.FindLeaf(format.LeafDirFacing).Single())
	assert.Nil(t, first.FindLeaf(format.LeafTiltForward))

	second := objects[1]
	assert.Equal(t, 7, second.LeafCount(), "three-angle object carries exactly seven leaves")
	assert.Equal(t, int32(100), second.FindLeaf(format.LeafType).Int32())
	assert.Equal(t, float32(-1.0), second.FindLeaf(format.LeafX).Single())
	assert.Equal(t, float32(-2.0), second.FindLeaf(format.LeafY).Single())
	assert.Equal(t, float32(-3.0), second.FindLeaf(format.LeafZ).Single())
	assert.Equal(t, float32(0.1), second.FindLeaf(format.LeafDirFacing).Single())
	assert.Equal(t, float32(0.2), second.FindLeaf(format.LeafTiltForward).Single())
	assert.Equal(t, float32(0.3), second.FindLeaf(format.LeafTiltLeft).Single())
}

func TestRegister(t *testing.T) {
	reg := codec.Register{}
	w := codec.NewWorld(rules(t))
	m := codec.NewMission(rules(t))
	reg[w.Name()] = w
	reg[m.Name()] = m

	assert.Equal(t, []string{"mission", "world"}, reg.Available())

	got, err := reg.Get("world")
	require.NoError(t, err)
	assert.Same(t, codec.Codec(w), got)

	_, err = reg.Get("terrain")
	assert.Error(t, err)
}

func TestRegister_Probe(t *testing.T) {
	reg := codec.Register{}
	w := codec.NewWorld(rules(t))
	m := codec.NewMission(rules(t))
	reg[w.Name()] = w
	reg[m.Name()] = m

	missionData, err := m.Save(newMissionTree(t))
	require.NoError(t, err)

	c, tree, err := reg.Probe(missionData)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "mission", c.Name())

	c, tree, err = reg.Probe([]byte("not a map file at all"))
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, tree)
}
