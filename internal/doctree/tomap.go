// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package doctree

// ToMap flattens a tree into plain maps and slices for JSON or YAML output.
// Leaf names map to their scalar payloads and child node names to nested
// maps; a name with several instances becomes a list. Void leaves map to
// true, so presence survives the flattening.
func ToMap(n *Node) map[string]any {
	out := make(map[string]any)
	for l := range n.Leaves() {
		v := l.Value()
		if v == nil {
			v = true
		}
		insert(out, l.Name(), v)
	}
	for c := range n.Nodes() {
		insert(out, c.Name(), ToMap(c))
	}
	return out
}

func insert(out map[string]any, name string, v any) {
	existing, ok := out[name]
	if !ok {
		out[name] = v
		return
	}
	if list, ok := existing.([]any); ok {
		out[name] = append(list, v)
		return
	}
	out[name] = []any{existing, v}
}
