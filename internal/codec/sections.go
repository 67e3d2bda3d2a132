// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package codec

import (
	"fmt"

	"github.com/ncblakely/GiantsEdit-sub002/internal/doctree"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
)

// Sections shared between the world and mission layouts. Every section is a
// fixed record shape except the placed-object entry, whose optional fields
// are recorded in a leading flags byte.

func readVersions(r *treeReader, root *doctree.Node) {
	r.int32Leaf(root, format.LeafObjectVersion)
	r.int32Leaf(root, format.LeafEffectVersion)
	r.int32Leaf(root, format.LeafScenarioVersion)
}

func writeVersions(w *treeWriter, root *doctree.Node) {
	w.int32Leaf(root, format.LeafObjectVersion)
	w.int32Leaf(root, format.LeafEffectVersion)
	w.int32Leaf(root, format.LeafScenarioVersion)
}

func readObjects(r *treeReader, root *doctree.Node) {
	n := r.count("objects")
	for range n {
		readObject(r, root)
	}
}

func readObject(r *treeReader, parent *doctree.Node) {
	flags := r.byteVal()
	o := r.node(parent, format.NodeObject)
	if r.err != nil {
		return
	}
	r.int32Leaf(o, format.LeafType)
	r.singleLeaf(o, format.LeafX)
	r.singleLeaf(o, format.LeafY)
	r.singleLeaf(o, format.LeafZ)
	r.singleLeaf(o, format.LeafDirFacing)
	if flags&format.ObjFlagThreeAngle != 0 {
		r.singleLeaf(o, format.LeafTiltForward)
		r.singleLeaf(o, format.LeafTiltLeft)
	}
	if flags&format.ObjFlagAIMode != 0 {
		r.byteLeaf(o, format.LeafAIMode)
	}
	if flags&format.ObjFlagTeam != 0 {
		r.int32Leaf(o, format.LeafTeam)
	}
	if flags&format.ObjFlagScale != 0 {
		r.singleLeaf(o, format.LeafScale)
	}
}

func writeObjects(w *treeWriter, root *doctree.Node) {
	objects := childNodes(root, format.NodeObject)
	if w.err != nil {
		return
	}
	w.b.WriteInt32(int32(len(objects)))
	for _, o := range objects {
		writeObject(w, o)
	}
}

// writeObject derives the flags byte from which optional leaves exist: the
// three-angle variant is selected exactly when both tilt leaves are present.
func writeObject(w *treeWriter, o *doctree.Node) {
	if w.err != nil {
		return
	}
	tiltF := o.FindLeaf(format.LeafTiltForward)
	tiltL := o.FindLeaf(format.LeafTiltLeft)
	if (tiltF == nil) != (tiltL == nil) {
		w.fail(fmt.Errorf("object: %s and %s must be present together", format.LeafTiltForward, format.LeafTiltLeft))
		return
	}

	var flags byte
	if tiltF != nil {
		flags |= format.ObjFlagThreeAngle
	}
	aiMode := o.FindLeaf(format.LeafAIMode)
	if aiMode != nil {
		flags |= format.ObjFlagAIMode
	}
	team := o.FindLeaf(format.LeafTeam)
	if team != nil {
		flags |= format.ObjFlagTeam
	}
	scale := o.FindLeaf(format.LeafScale)
	if scale != nil {
		flags |= format.ObjFlagScale
	}

	w.b.WriteByte(flags)
	w.int32Leaf(o, format.LeafType)
	w.singleLeaf(o, format.LeafX)
	w.singleLeaf(o, format.LeafY)
	w.singleLeaf(o, format.LeafZ)
	w.singleLeaf(o, format.LeafDirFacing)
	if w.err != nil {
		return
	}
	if tiltF != nil {
		w.b.WriteSingle(tiltF.Single())
		w.b.WriteSingle(tiltL.Single())
	}
	if aiMode != nil {
		w.b.WriteByte(aiMode.Byte())
	}
	if team != nil {
		w.b.WriteInt32(team.Int32())
	}
	if scale != nil {
		w.b.WriteSingle(scale.Single())
	}
}

func readEffects(r *treeReader, root *doctree.Node) {
	n := r.count("effects")
	for range n {
		e := r.node(root, format.NodeEffect)
		if r.err != nil {
			return
		}
		r.int32Leaf(e, format.LeafType)
		r.singleLeaf(e, format.LeafX)
		r.singleLeaf(e, format.LeafY)
		r.singleLeaf(e, format.LeafZ)
		r.prefixedStringLeaf(e, format.LeafName)
	}
}

func writeEffects(w *treeWriter, root *doctree.Node) {
	effects := childNodes(root, format.NodeEffect)
	if w.err != nil {
		return
	}
	w.b.WriteInt32(int32(len(effects)))
	for _, e := range effects {
		w.int32Leaf(e, format.LeafType)
		w.singleLeaf(e, format.LeafX)
		w.singleLeaf(e, format.LeafY)
		w.singleLeaf(e, format.LeafZ)
		w.prefixedStringLeaf(e, format.LeafName)
	}
}

func readScenarios(r *treeReader, root *doctree.Node) {
	n := r.count("scenarios")
	for range n {
		s := r.node(root, format.NodeScenario)
		if r.err != nil {
			return
		}
		r.prefixedStringLeaf(s, format.LeafName)
		r.fixedStringLeaf(s, format.LeafFile, format.ScenarioFileLen)
	}
}

func writeScenarios(w *treeWriter, root *doctree.Node) {
	scenarios := childNodes(root, format.NodeScenario)
	if w.err != nil {
		return
	}
	w.b.WriteInt32(int32(len(scenarios)))
	for _, s := range scenarios {
		w.prefixedStringLeaf(s, format.LeafName)
		w.fixedStringLeaf(s, format.LeafFile, format.ScenarioFileLen)
	}
}

func readIncludes(r *treeReader, root *doctree.Node) {
	n := r.count("include files")
	if r.err == nil && n > format.MaxIncludeFiles {
		r.fail(fmt.Errorf("include files: %d entries exceed the cap of %d", n, format.MaxIncludeFiles))
		return
	}
	for range n {
		r.fixedStringLeaf(root, format.LeafInclude, format.IncludeNameLen)
	}
}

func writeIncludes(w *treeWriter, root *doctree.Node) {
	includes := childLeaves(root, format.LeafInclude)
	if w.err != nil {
		return
	}
	if len(includes) > format.MaxIncludeFiles {
		w.fail(fmt.Errorf("include files: %d entries exceed the cap of %d", len(includes), format.MaxIncludeFiles))
		return
	}
	w.b.WriteInt32(int32(len(includes)))
	for _, l := range includes {
		w.fail(w.b.WriteFixedString(l.String(), format.IncludeNameLen))
	}
}

func readFog(r *treeReader, root *doctree.Node, name string) {
	f := r.node(root, name)
	if r.err != nil {
		return
	}
	r.singleLeaf(f, format.LeafMin)
	r.singleLeaf(f, format.LeafMax)
	if r.err != nil {
		return
	}
	cr, cg, cb, err := r.b.ReadRGB()
	if err != nil {
		r.fail(err)
		return
	}
	if _, err := f.AddByte(format.LeafR, cr); err != nil {
		r.fail(err)
		return
	}
	if _, err := f.AddByte(format.LeafG, cg); err != nil {
		r.fail(err)
		return
	}
	if _, err := f.AddByte(format.LeafB, cb); err != nil {
		r.fail(err)
	}
}

func writeFog(w *treeWriter, root *doctree.Node, name string) {
	f := w.node(root, name)
	if w.err != nil {
		return
	}
	w.singleLeaf(f, format.LeafMin)
	w.singleLeaf(f, format.LeafMax)
	r := w.leaf(f, format.LeafR)
	g := w.leaf(f, format.LeafG)
	b := w.leaf(f, format.LeafB)
	if w.err != nil {
		return
	}
	w.b.WriteRGB(r.Byte(), g.Byte(), b.Byte())
}
