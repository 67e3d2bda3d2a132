// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package codec implements the paired encoders/decoders for the legacy
// world and mission binary formats. Each codec converts between a document
// tree and one format's exact byte layout.
package codec

import (
	"fmt"
	"sort"

	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
)

// Codec converts between document trees and one binary format.
type Codec interface {
	// Name returns the codec's identifier (e.g., "world", "mission").
	Name() string

	// Load decodes data into a document tree. A buffer whose magic value
	// belongs to a different format yields (nil, nil): not this format,
	// not an error. A recognized magic followed by malformed content
	// yields an error and no tree.
	Load(data []byte) (*doctree.Node, error)

	// Save encodes a document tree into the format's byte layout.
	Save(root *doctree.Node) ([]byte, error)
}

// Register maps codec names to codecs.
type Register map[string]Codec

// Get retrieves a codec by name.
func (r Register) Get(name string) (Codec, error) {
	c, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
	return c, nil
}

// Available returns all registered codec names in sorted order.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Probe tries each registered codec against data and returns the first one
// that recognizes it, with the decoded tree. A recognized magic with
// malformed content is an error; no codec recognizing the data returns all
// nils.
func (r Register) Probe(data []byte) (Codec, *doctree.Node, error) {
	for _, name := range r.Available() {
		c := r[name]
		tree, err := c.Load(data)
		if err != nil {
			return c, nil, err
		}
		if tree != nil {
			return c, tree, nil
		}
	}
	return nil, nil, nil
}
