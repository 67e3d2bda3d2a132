// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package schema models the structural rules the document tree is validated
// against: named node types, each declaring ordered child-node and
// child-leaf slots with cardinality constraints.
package schema

import (
	"fmt"
	"sort"
)

// Cardinality constrains how many instances a slot may hold.
type Cardinality int

const (
	// Any allows zero or more instances.
	Any Cardinality = iota
	// Once requires exactly one instance.
	Once
	// Optional allows zero or one instance.
	Optional
	// Multiple requires one or more instances.
	Multiple
)

// Single reports whether the cardinality caps a slot at one instance.
func (c Cardinality) Single() bool {
	return c == Once || c == Optional
}

// Required reports whether the cardinality demands at least one instance.
func (c Cardinality) Required() bool {
	return c == Once || c == Multiple
}

func (c Cardinality) String() string {
	switch c {
	case Any:
		return "any"
	case Once:
		return "once"
	case Optional:
		return "optional"
	case Multiple:
		return "multiple"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

// ParseCardinality parses the catalog spelling of a cardinality.
func ParseCardinality(s string) (Cardinality, error) {
	switch s {
	case "any":
		return Any, nil
	case "once":
		return Once, nil
	case "optional":
		return Optional, nil
	case "multiple":
		return Multiple, nil
	default:
		return 0, fmt.Errorf("unknown cardinality %q", s)
	}
}

// ValueType is the basic type a leaf carries.
type ValueType int

const (
	// TypeByte is an 8-bit unsigned integer.
	TypeByte ValueType = iota
	// TypeInt32 is a 32-bit signed integer.
	TypeInt32
	// TypeSingle is a 32-bit IEEE float.
	TypeSingle
	// TypeString is variable-length text, optionally length-capped.
	TypeString
	// TypeVoid is a marker leaf carrying no value.
	TypeVoid
)

func (t ValueType) String() string {
	switch t {
	case TypeByte:
		return "byte"
	case TypeInt32:
		return "int32"
	case TypeSingle:
		return "single"
	case TypeString:
		return "string"
	case TypeVoid:
		return "void"
	default:
		return fmt.Sprintf("valuetype(%d)", int(t))
	}
}

// ParseValueType parses the catalog spelling of a value type.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "byte":
		return TypeByte, nil
	case "int32":
		return TypeInt32, nil
	case "single":
		return TypeSingle, nil
	case "string":
		return TypeString, nil
	case "void":
		return TypeVoid, nil
	default:
		return 0, fmt.Errorf("unknown value type %q", s)
	}
}

// NodeSlot declares a permitted child node: its name, how many instances the
// slot may hold, and the rule its instances are bound to.
type NodeSlot struct {
	Name   string
	Occurs Cardinality
	Type   *Node
}

// LeafSlot declares a permitted child leaf. MaxLength applies only to
// string-typed slots; zero means unconstrained.
type LeafSlot struct {
	Name      string
	Occurs    Cardinality
	Type      ValueType
	MaxLength int
}

// Node is one named structural rule. Slot order is significant: it defines
// the indices the document tree stores children under and the canonical
// serialization order.
type Node struct {
	Name      string
	SubNodes  []NodeSlot
	SubLeaves []LeafSlot
}

// NodeSlotIndex returns the index of the node slot with the given name, or
// -1 when the rule declares no such slot.
func (n *Node) NodeSlotIndex(name string) int {
	for i := range n.SubNodes {
		if n.SubNodes[i].Name == name {
			return i
		}
	}
	return -1
}

// LeafSlotIndex returns the index of the leaf slot with the given name, or
// -1 when the rule declares no such slot.
func (n *Node) LeafSlotIndex(name string) int {
	for i := range n.SubLeaves {
		if n.SubLeaves[i].Name == name {
			return i
		}
	}
	return -1
}

// Catalog is the set of named rules loaded from a schema description. It is
// immutable once loaded and safe for concurrent lookup.
type Catalog struct {
	types map[string]*Node
}

// Lookup returns the rule with the given name, or nil.
func (c *Catalog) Lookup(name string) *Node {
	return c.types[name]
}

// Names returns all rule names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
