// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package doctree implements the generic, schema-aware document tree the
// map and mission codecs operate on. A node with a bound rule partitions
// its children into the rule's declared slots and rejects mutations the
// rule does not permit; an unbound node is a plain ordered tree.
package doctree

import (
	"fmt"
	"iter"

	"github.com/ncblakely/GiantsEdit-sub002/internal/schema"
)

// Node is a named element of the document tree. It exclusively owns its
// child nodes and leaves, grouped by declared slot; children keep a
// non-owning back-reference to their parent used only for detachment.
type Node struct {
	name      string
	rule      *schema.Node
	parent    *Node
	nodeSlots [][]*Node
	leafSlots [][]*Leaf
}

// New creates a root node. When rule is non-nil every mutation of the node
// is validated against it; child nodes inherit the rule declared by the
// slot they are added to.
func New(name string, rule *schema.Node) *Node {
	n := &Node{name: name, rule: rule}
	if rule != nil {
		n.nodeSlots = make([][]*Node, len(rule.SubNodes))
		n.leafSlots = make([][]*Leaf, len(rule.SubLeaves))
	} else {
		// One catch-all slot each for unconstrained trees.
		n.nodeSlots = make([][]*Node, 1)
		n.leafSlots = make([][]*Leaf, 1)
	}
	return n
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Rule returns the bound rule, or nil.
func (n *Node) Rule() *schema.Node { return n.rule }

// Parent returns the owning node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// AddNode creates a child node in the slot declared for name. With a bound
// rule the name must match a declared slot and single-instance slots must
// be empty; without one the child is appended to the catch-all slot.
func (n *Node) AddNode(name string) (*Node, error) {
	idx := 0
	var childRule *schema.Node
	if n.rule != nil {
		idx = n.rule.NodeSlotIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s declares no child node %q", ErrSchemaViolation, n.name, name)
		}
		slot := &n.rule.SubNodes[idx]
		if slot.Occurs.Single() && len(n.nodeSlots[idx]) > 0 {
			return nil, fmt.Errorf("%w: %s already holds a %q node (%s)", ErrSchemaViolation, n.name, name, slot.Occurs)
		}
		childRule = slot.Type
	}
	child := New(name, childRule)
	child.parent = n
	n.nodeSlots[idx] = append(n.nodeSlots[idx], child)
	return child, nil
}

// GetOrAddNode returns the first child node with the given name, adding one
// when none exists.
func (n *Node) GetOrAddNode(name string) (*Node, error) {
	if c := n.FindNode(name); c != nil {
		return c, nil
	}
	return n.AddNode(name)
}

// leafSlotFor resolves the slot for a leaf of the given name and type,
// enforcing slot identity, declared type, and single-instance cardinality.
func (n *Node) leafSlotFor(name string, typ schema.ValueType) (int, *schema.LeafSlot, error) {
	if n.rule == nil {
		return 0, nil, nil
	}
	idx := n.rule.LeafSlotIndex(name)
	if idx < 0 {
		return 0, nil, fmt.Errorf("%w: %s declares no leaf %q", ErrSchemaViolation, n.name, name)
	}
	slot := &n.rule.SubLeaves[idx]
	if slot.Type != typ {
		return 0, nil, fmt.Errorf("%w: leaf %q of %s is declared %s, not %s", ErrSchemaViolation, name, n.name, slot.Type, typ)
	}
	if slot.Occurs.Single() && len(n.leafSlots[idx]) > 0 {
		return 0, nil, fmt.Errorf("%w: %s already holds a %q leaf (%s)", ErrSchemaViolation, n.name, name, slot.Occurs)
	}
	return idx, slot, nil
}

func (n *Node) attachLeaf(idx int, l *Leaf) *Leaf {
	l.parent = n
	n.leafSlots[idx] = append(n.leafSlots[idx], l)
	return l
}

// AddLeaf creates a zero-valued leaf of the given type.
func (n *Node) AddLeaf(name string, typ schema.ValueType) (*Leaf, error) {
	idx, slot, err := n.leafSlotFor(name, typ)
	if err != nil {
		return nil, err
	}
	l := &Leaf{name: name, typ: typ}
	if slot != nil {
		l.maxLen = slot.MaxLength
	}
	return n.attachLeaf(idx, l), nil
}

// AddByte creates a byte leaf carrying v.
func (n *Node) AddByte(name string, v byte) (*Leaf, error) {
	l, err := n.AddLeaf(name, schema.TypeByte)
	if err != nil {
		return nil, err
	}
	l.byteVal = v
	return l, nil
}

// AddInt32 creates an int32 leaf carrying v.
func (n *Node) AddInt32(name string, v int32) (*Leaf, error) {
	l, err := n.AddLeaf(name, schema.TypeInt32)
	if err != nil {
		return nil, err
	}
	l.intVal = v
	return l, nil
}

// AddSingle creates a single leaf carrying v.
func (n *Node) AddSingle(name string, v float32) (*Leaf, error) {
	l, err := n.AddLeaf(name, schema.TypeSingle)
	if err != nil {
		return nil, err
	}
	l.fltVal = v
	return l, nil
}

// AddString creates a string leaf carrying v, capped by the slot's declared
// maximum length when one is bound. The leaf is not attached when v exceeds
// the cap.
func (n *Node) AddString(name, v string) (*Leaf, error) {
	return n.AddStringMax(name, v, 0)
}

// AddStringMax creates a string leaf with an explicit maximum length. A
// bound slot's declared cap takes precedence over maxLen.
func (n *Node) AddStringMax(name, v string, maxLen int) (*Leaf, error) {
	idx, slot, err := n.leafSlotFor(name, schema.TypeString)
	if err != nil {
		return nil, err
	}
	if slot != nil && slot.MaxLength != 0 {
		maxLen = slot.MaxLength
	}
	if maxLen > 0 && len(v) > maxLen {
		return nil, fmt.Errorf("leaf %s: string of %d bytes exceeds maximum length %d", name, len(v), maxLen)
	}
	l := &Leaf{name: name, typ: schema.TypeString, maxLen: maxLen, strVal: v}
	return n.attachLeaf(idx, l), nil
}

// AddVoid creates a marker leaf carrying no value.
func (n *Node) AddVoid(name string) (*Leaf, error) {
	return n.AddLeaf(name, schema.TypeVoid)
}

// FindNode returns the first child node with the given name, in slot order,
// or nil.
func (n *Node) FindNode(name string) *Node {
	for _, slot := range n.nodeSlots {
		for _, c := range slot {
			if c.name == name {
				return c
			}
		}
	}
	return nil
}

// GetNode returns the first child node with the given name, or ErrNotFound.
func (n *Node) GetNode(name string) (*Node, error) {
	if c := n.FindNode(name); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: node %q in %s", ErrNotFound, name, n.name)
}

// FindLeaf returns the first child leaf with the given name, in slot order,
// or nil.
func (n *Node) FindLeaf(name string) *Leaf {
	for _, slot := range n.leafSlots {
		for _, l := range slot {
			if l.name == name {
				return l
			}
		}
	}
	return nil
}

// GetLeaf returns the first child leaf with the given name, or ErrNotFound.
func (n *Node) GetLeaf(name string) (*Leaf, error) {
	if l := n.FindLeaf(name); l != nil {
		return l, nil
	}
	return nil, fmt.Errorf("%w: leaf %q in %s", ErrNotFound, name, n.name)
}

// RemoveNode detaches child from whichever slot holds it and reports
// whether a removal occurred.
func (n *Node) RemoveNode(child *Node) bool {
	for si, slot := range n.nodeSlots {
		for i, c := range slot {
			if c == child {
				n.nodeSlots[si] = append(slot[:i], slot[i+1:]...)
				child.parent = nil
				return true
			}
		}
	}
	return false
}

// RemoveLeaf detaches leaf from whichever slot holds it and reports whether
// a removal occurred.
func (n *Node) RemoveLeaf(leaf *Leaf) bool {
	for si, slot := range n.leafSlots {
		for i, l := range slot {
			if l == leaf {
				n.leafSlots[si] = append(slot[:i], slot[i+1:]...)
				leaf.parent = nil
				return true
			}
		}
	}
	return false
}

// Nodes iterates all child nodes in slot order, then insertion order within
// each slot. This is the canonical serialization order.
func (n *Node) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, slot := range n.nodeSlots {
			for _, c := range slot {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Leaves iterates all child leaves in slot order, then insertion order
// within each slot.
func (n *Node) Leaves() iter.Seq[*Leaf] {
	return func(yield func(*Leaf) bool) {
		for _, slot := range n.leafSlots {
			for _, l := range slot {
				if !yield(l) {
					return
				}
			}
		}
	}
}

// NodeCount returns the total child node count across all slots.
func (n *Node) NodeCount() int {
	total := 0
	for _, slot := range n.nodeSlots {
		total += len(slot)
	}
	return total
}

// LeafCount returns the total child leaf count across all slots.
func (n *Node) LeafCount() int {
	total := 0
	for _, slot := range n.leafSlots {
		total += len(slot)
	}
	return total
}

// NodeCountOf returns the instance count of the named node slot. It is
// valid only on nodes with a bound rule.
func (n *Node) NodeCountOf(name string) (int, error) {
	if n.rule == nil {
		return 0, fmt.Errorf("%w: cannot count %q nodes", ErrNoRule, name)
	}
	idx := n.rule.NodeSlotIndex(name)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s declares no child node %q", ErrSchemaViolation, n.name, name)
	}
	return len(n.nodeSlots[idx]), nil
}

// LeafCountOf returns the instance count of the named leaf slot. It is
// valid only on nodes with a bound rule.
func (n *Node) LeafCountOf(name string) (int, error) {
	if n.rule == nil {
		return 0, fmt.Errorf("%w: cannot count %q leaves", ErrNoRule, name)
	}
	idx := n.rule.LeafSlotIndex(name)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s declares no leaf %q", ErrSchemaViolation, n.name, name)
	}
	return len(n.leafSlots[idx]), nil
}

// Walk visits the node itself, then its leaves in slot order, then recurses
// into child nodes in slot order. Either callback may be nil.
func (n *Node) Walk(visitNode func(*Node), visitLeaf func(*Leaf)) {
	if visitNode != nil {
		visitNode(n)
	}
	if visitLeaf != nil {
		for l := range n.Leaves() {
			visitLeaf(l)
		}
	}
	for c := range n.Nodes() {
		c.Walk(visitNode, visitLeaf)
	}
}

// Validate checks the lower bounds insertion cannot enforce: Once slots
// must hold exactly one instance and Multiple slots at least one, at every
// level of the tree.
func (n *Node) Validate() error {
	if n.rule != nil {
		for i := range n.rule.SubNodes {
			slot := &n.rule.SubNodes[i]
			if slot.Occurs.Required() && len(n.nodeSlots[i]) == 0 {
				return fmt.Errorf("%w: %s requires a %q node (%s)", ErrSchemaViolation, n.name, slot.Name, slot.Occurs)
			}
		}
		for i := range n.rule.SubLeaves {
			slot := &n.rule.SubLeaves[i]
			if slot.Occurs.Required() && len(n.leafSlots[i]) == 0 {
				return fmt.Errorf("%w: %s requires a %q leaf (%s)", ErrSchemaViolation, n.name, slot.Name, slot.Occurs)
			}
		}
	}
	for c := range n.Nodes() {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
