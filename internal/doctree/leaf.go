// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package doctree

import (
	"fmt"

	"github.com/ncblakely/GiantsEdit-sub002/internal/schema"
)

// Leaf is a named scalar value owned by a Node. Its value type is fixed at
// creation; setters reject mismatched types. A Void leaf carries no payload.
type Leaf struct {
	name    string
	typ     schema.ValueType
	parent  *Node
	maxLen  int
	byteVal byte
	intVal  int32
	fltVal  float32
	strVal  string
}

// Name returns the leaf's name.
func (l *Leaf) Name() string { return l.name }

// Type returns the leaf's value type.
func (l *Leaf) Type() schema.ValueType { return l.typ }

// Parent returns the owning node, or nil after detachment.
func (l *Leaf) Parent() *Node { return l.parent }

// MaxLength returns the string length cap, or zero when unconstrained.
func (l *Leaf) MaxLength() int { return l.maxLen }

// Byte returns the payload of a byte leaf, or zero for other types.
func (l *Leaf) Byte() byte { return l.byteVal }

// Int32 returns the payload of an int32 leaf, or zero for other types.
func (l *Leaf) Int32() int32 { return l.intVal }

// Single returns the payload of a single leaf, or zero for other types.
func (l *Leaf) Single() float32 { return l.fltVal }

// String returns the payload of a string leaf, or "" for other types.
func (l *Leaf) String() string { return l.strVal }

// SetByte replaces the payload of a byte leaf.
func (l *Leaf) SetByte(v byte) error {
	if l.typ != schema.TypeByte {
		return fmt.Errorf("leaf %s holds %s, not byte", l.name, l.typ)
	}
	l.byteVal = v
	return nil
}

// SetInt32 replaces the payload of an int32 leaf.
func (l *Leaf) SetInt32(v int32) error {
	if l.typ != schema.TypeInt32 {
		return fmt.Errorf("leaf %s holds %s, not int32", l.name, l.typ)
	}
	l.intVal = v
	return nil
}

// SetSingle replaces the payload of a single leaf.
func (l *Leaf) SetSingle(v float32) error {
	if l.typ != schema.TypeSingle {
		return fmt.Errorf("leaf %s holds %s, not single", l.name, l.typ)
	}
	l.fltVal = v
	return nil
}

// SetString replaces the payload of a string leaf, enforcing the length cap
// when one is set.
func (l *Leaf) SetString(v string) error {
	if l.typ != schema.TypeString {
		return fmt.Errorf("leaf %s holds %s, not string", l.name, l.typ)
	}
	if l.maxLen > 0 && len(v) > l.maxLen {
		return fmt.Errorf("leaf %s: string of %d bytes exceeds maximum length %d", l.name, len(v), l.maxLen)
	}
	l.strVal = v
	return nil
}

// Value returns the payload as an any, or nil for a Void leaf.
func (l *Leaf) Value() any {
	switch l.typ {
	case schema.TypeByte:
		return l.byteVal
	case schema.TypeInt32:
		return l.intVal
	case schema.TypeSingle:
		return l.fltVal
	case schema.TypeString:
		return l.strVal
	default:
		return nil
	}
}
