// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package codec

import (
	"fmt"

	"github.com/ncblakely/GiantsEdit-sub002/internal/binbuf"
	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
	"github.com/ncblakely/GiantsEdit-sub002/internal/schema"
)

// Mission is the codec for the legacy mission format. It shares the object,
// effect, scenario, and include record shapes with the world format but
// carries a mission header instead of the terrain sections.
type Mission struct {
	rules *schema.Catalog
}

// NewMission creates the mission codec, binding decoded trees to the given
// rule catalog.
func NewMission(rules *schema.Catalog) *Mission {
	return &Mission{rules: rules}
}

// Name returns the codec's identifier.
func (*Mission) Name() string { return "mission" }

// Load decodes a mission file. A buffer with a different magic value yields
// (nil, nil).
func (m *Mission) Load(data []byte) (*doctree.Node, error) {
	b := binbuf.From(data)
	magic, err := b.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("mission: %w", err)
	}
	if magic != format.MissionMagic {
		return nil, nil
	}

	r := &treeReader{b: b}
	root := doctree.New(format.RootMission, m.rules.Lookup(format.RootMission))

	h := r.node(root, format.NodeHeader)
	if r.err == nil {
		r.int32Leaf(h, format.LeafVersion)
		r.fixedStringLeaf(h, format.LeafName, format.HeaderNameLen)
		r.prefixedStringLeaf(h, format.LeafWorld)
	}

	readVersions(r, root)
	readObjects(r, root)
	readEffects(r, root)
	readScenarios(r, root)
	readIncludes(r, root)

	if r.err != nil {
		return nil, fmt.Errorf("mission: %w", r.err)
	}
	return root, nil
}

// Save encodes a mission tree into the format's byte layout.
func (*Mission) Save(root *doctree.Node) ([]byte, error) {
	w := &treeWriter{b: binbuf.New()}
	w.b.WriteUint32(format.MissionMagic)

	h := w.node(root, format.NodeHeader)
	if w.err == nil {
		w.int32Leaf(h, format.LeafVersion)
		w.fixedStringLeaf(h, format.LeafName, format.HeaderNameLen)
		w.prefixedStringLeaf(h, format.LeafWorld)
	}

	writeVersions(w, root)
	writeObjects(w, root)
	writeEffects(w, root)
	writeScenarios(w, root)
	writeIncludes(w, root)

	if w.err != nil {
		return nil, fmt.Errorf("mission: %w", w.err)
	}
	return w.b.Bytes(), nil
}
