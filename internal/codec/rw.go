// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package codec

import (
	"fmt"

	"github.com/ncblakely/GiantsEdit-sub002/internal/binbuf"
	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
)

// treeReader pairs a byte buffer with the tree under construction. The
// first failure sticks; every later operation is a no-op, so a section
// decoder can run straight through and check the error once.
type treeReader struct {
	b   *binbuf.Buffer
	err error
}

// fail records the first error.
func (r *treeReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// node adds a child node, or nil after a failure.
func (r *treeReader) node(parent *doctree.Node, name string) *doctree.Node {
	if r.err != nil {
		return nil
	}
	n, err := parent.AddNode(name)
	if err != nil {
		r.fail(err)
		return nil
	}
	return n
}

// count reads a non-negative int32 element count.
func (r *treeReader) count(section string) int {
	if r.err != nil {
		return 0
	}
	v, err := r.b.ReadInt32()
	if err != nil {
		r.fail(err)
		return 0
	}
	if v < 0 {
		r.fail(fmt.Errorf("%s: negative element count %d", section, v))
		return 0
	}
	return int(v)
}

func (r *treeReader) byteVal() byte {
	if r.err != nil {
		return 0
	}
	v, err := r.b.ReadByte()
	if err != nil {
		r.fail(err)
	}
	return v
}

func (r *treeReader) byteLeaf(n *doctree.Node, name string) {
	if r.err != nil {
		return
	}
	v, err := r.b.ReadByte()
	if err == nil {
		_, err = n.AddByte(name, v)
	}
	r.fail(err)
}

func (r *treeReader) int32Leaf(n *doctree.Node, name string) {
	if r.err != nil {
		return
	}
	v, err := r.b.ReadInt32()
	if err == nil {
		_, err = n.AddInt32(name, v)
	}
	r.fail(err)
}

func (r *treeReader) singleLeaf(n *doctree.Node, name string) {
	if r.err != nil {
		return
	}
	v, err := r.b.ReadSingle()
	if err == nil {
		_, err = n.AddSingle(name, v)
	}
	r.fail(err)
}

func (r *treeReader) fixedStringLeaf(n *doctree.Node, name string, size int) {
	if r.err != nil {
		return
	}
	v, err := r.b.ReadFixedString(size)
	if err == nil {
		_, err = n.AddString(name, v)
	}
	r.fail(err)
}

func (r *treeReader) prefixedStringLeaf(n *doctree.Node, name string) {
	if r.err != nil {
		return
	}
	v, err := r.b.ReadPrefixedString()
	if err == nil {
		_, err = n.AddString(name, v)
	}
	r.fail(err)
}

// treeWriter mirrors treeReader for encoding: leaves are looked up on the
// tree and emitted, with the first failure sticking.
type treeWriter struct {
	b   *binbuf.Buffer
	err error
}

func (w *treeWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// node resolves a required child node, or nil after a failure.
func (w *treeWriter) node(parent *doctree.Node, name string) *doctree.Node {
	if w.err != nil {
		return nil
	}
	n, err := parent.GetNode(name)
	if err != nil {
		w.fail(err)
		return nil
	}
	return n
}

func (w *treeWriter) leaf(n *doctree.Node, name string) *doctree.Leaf {
	if w.err != nil {
		return nil
	}
	l, err := n.GetLeaf(name)
	if err != nil {
		w.fail(err)
		return nil
	}
	return l
}

func (w *treeWriter) byteLeaf(n *doctree.Node, name string) {
	if l := w.leaf(n, name); l != nil {
		w.b.WriteByte(l.Byte())
	}
}

func (w *treeWriter) int32Leaf(n *doctree.Node, name string) {
	if l := w.leaf(n, name); l != nil {
		w.b.WriteInt32(l.Int32())
	}
}

func (w *treeWriter) singleLeaf(n *doctree.Node, name string) {
	if l := w.leaf(n, name); l != nil {
		w.b.WriteSingle(l.Single())
	}
}

func (w *treeWriter) fixedStringLeaf(n *doctree.Node, name string, size int) {
	if l := w.leaf(n, name); l != nil {
		w.fail(w.b.WriteFixedString(l.String(), size))
	}
}

func (w *treeWriter) prefixedStringLeaf(n *doctree.Node, name string) {
	if l := w.leaf(n, name); l != nil {
		w.fail(w.b.WritePrefixedString(l.String()))
	}
}

// childNodes collects the children with the given name in canonical
// enumeration order. It works on bound and unbound trees alike.
func childNodes(n *doctree.Node, name string) []*doctree.Node {
	var out []*doctree.Node
	for c := range n.Nodes() {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// childLeaves collects the leaves with the given name in canonical
// enumeration order.
func childLeaves(n *doctree.Node, name string) []*doctree.Leaf {
	var out []*doctree.Leaf
	for l := range n.Leaves() {
		if l.Name() == name {
			out = append(out, l)
		}
	}
	return out
}
