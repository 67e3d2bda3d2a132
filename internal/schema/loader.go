// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package schema

import (
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// rawSlot is the YAML form of a slot declaration. Of names another catalog
// type (node slots); Type/MaxLen describe the payload (leaf slots).
type rawSlot struct {
	Name   string `yaml:"name"`
	Of     string `yaml:"of"`
	Occurs string `yaml:"occurs"`
	Type   string `yaml:"type"`
	MaxLen int    `yaml:"maxlen"`
}

type rawType struct {
	Nodes  []rawSlot `yaml:"nodes"`
	Leaves []rawSlot `yaml:"leaves"`
}

type rawCatalog struct {
	Types map[string]rawType `yaml:"types"`
}

// Loader loads rule catalogs from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a YAML rule catalog.
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a Catalog from a YAML catalog description. Node slot `of:`
// references are resolved by name after all types are known, so types may
// reference each other in any order.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Types) == 0 {
		return nil, fmt.Errorf("catalog declares no types")
	}

	cat := &Catalog{types: make(map[string]*Node, len(raw.Types))}
	for name := range raw.Types {
		cat.types[name] = &Node{Name: name}
	}

	for name, rt := range raw.Types {
		node := cat.types[name]
		for _, rs := range rt.Nodes {
			occurs, err := ParseCardinality(rs.Occurs)
			if err != nil {
				return nil, fmt.Errorf("type %s, node slot %s: %w", name, rs.Name, err)
			}
			ofName := rs.Of
			if ofName == "" {
				ofName = rs.Name
			}
			ref := cat.types[ofName]
			if ref == nil {
				return nil, fmt.Errorf("type %s, node slot %s: unknown type %q", name, rs.Name, ofName)
			}
			node.SubNodes = append(node.SubNodes, NodeSlot{Name: rs.Name, Occurs: occurs, Type: ref})
		}
		for _, rs := range rt.Leaves {
			occurs, err := ParseCardinality(rs.Occurs)
			if err != nil {
				return nil, fmt.Errorf("type %s, leaf slot %s: %w", name, rs.Name, err)
			}
			vt, err := ParseValueType(rs.Type)
			if err != nil {
				return nil, fmt.Errorf("type %s, leaf slot %s: %w", name, rs.Name, err)
			}
			if rs.MaxLen != 0 && vt != TypeString {
				return nil, fmt.Errorf("type %s, leaf slot %s: maxlen only applies to string slots", name, rs.Name)
			}
			node.SubLeaves = append(node.SubLeaves, LeafSlot{Name: rs.Name, Occurs: occurs, Type: vt, MaxLength: rs.MaxLen})
		}
	}

	return cat, nil
}
