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

// World is the codec for the legacy world format.
type World struct {
	rules *schema.Catalog
}

// NewWorld creates the world codec, binding decoded trees to the given rule
// catalog.
func NewWorld(rules *schema.Catalog) *World {
	return &World{rules: rules}
}

// Name returns the codec's identifier.
func (*World) Name() string { return "world" }

// Load decodes a world file. A buffer with a different magic value yields
// (nil, nil).
func (w *World) Load(data []byte) (*doctree.Node, error) {
	b := binbuf.From(data)
	magic, err := b.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if magic != format.WorldMagic {
		return nil, nil
	}

	r := &treeReader{b: b}
	root := doctree.New(format.RootWorld, w.rules.Lookup(format.RootWorld))

	h := r.node(root, format.NodeHeader)
	if r.err == nil {
		r.int32Leaf(h, format.LeafVersion)
		r.fixedStringLeaf(h, format.LeafName, format.HeaderNameLen)
		r.int32Leaf(h, format.LeafWidth)
		r.int32Leaf(h, format.LeafHeight)
	}

	t := r.node(root, format.NodeTiling)
	if r.err == nil {
		r.int32Leaf(t, format.LeafTileWidth)
		r.int32Leaf(t, format.LeafTileHeight)
		r.singleLeaf(t, format.LeafTileScale)
	}

	readFog(r, root, format.NodeFog)
	readFog(r, root, format.NodeUnderwater)
	readTextures(r, root)
	readVersions(r, root)
	readObjects(r, root)
	readEffects(r, root)
	readScenarios(r, root)
	readIncludes(r, root)

	if r.err != nil {
		return nil, fmt.Errorf("world: %w", r.err)
	}
	return root, nil
}

// Save encodes a world tree into the format's byte layout.
func (*World) Save(root *doctree.Node) ([]byte, error) {
	w := &treeWriter{b: binbuf.New()}
	w.b.WriteUint32(format.WorldMagic)

	h := w.node(root, format.NodeHeader)
	if w.err == nil {
		w.int32Leaf(h, format.LeafVersion)
		w.fixedStringLeaf(h, format.LeafName, format.HeaderNameLen)
		w.int32Leaf(h, format.LeafWidth)
		w.int32Leaf(h, format.LeafHeight)
	}

	t := w.node(root, format.NodeTiling)
	if w.err == nil {
		w.int32Leaf(t, format.LeafTileWidth)
		w.int32Leaf(t, format.LeafTileHeight)
		w.singleLeaf(t, format.LeafTileScale)
	}

	writeFog(w, root, format.NodeFog)
	writeFog(w, root, format.NodeUnderwater)
	writeTextures(w, root)
	writeVersions(w, root)
	writeObjects(w, root)
	writeEffects(w, root)
	writeScenarios(w, root)
	writeIncludes(w, root)

	if w.err != nil {
		return nil, fmt.Errorf("world: %w", w.err)
	}
	return w.b.Bytes(), nil
}

func readTextures(r *treeReader, root *doctree.Node) {
	n := r.count("textures")
	for range n {
		t := r.node(root, format.NodeTexture)
		if r.err != nil {
			return
		}
		r.byteLeaf(t, format.LeafFlags)
		r.byteLeaf(t, format.LeafSkyDome)
		r.prefixedStringLeaf(t, format.LeafName)
	}
}

func writeTextures(w *treeWriter, root *doctree.Node) {
	textures := childNodes(root, format.NodeTexture)
	if w.err != nil {
		return
	}
	w.b.WriteInt32(int32(len(textures)))
	for _, t := range textures {
		w.byteLeaf(t, format.LeafFlags)
		w.byteLeaf(t, format.LeafSkyDome)
		w.prefixedStringLeaf(t, format.LeafName)
	}
}
