package toon

import "strings"

// foldChain walks a single-key chain: while the node is an object with
// exactly one entry whose key is a valid identifier, the key joins the
// accumulator and the walk descends. It returns the dot-joined key and
// the terminal (non-foldable) node, or ok=false when nothing folded.
//
// Folding is idempotent: a dotted key produced by a previous fold is
// no longer a valid identifier, so re-folding stops immediately and
// the synthetic object renders unchanged.
func foldChain(v *Value) (key string, terminal *Value, ok bool) {
	var parts []string

	node := v
	for node.Kind() == KindMap && len(node.mapVal) == 1 && isIdent(node.mapVal[0].Key) {
		parts = append(parts, node.mapVal[0].Key)
		node = node.mapVal[0].Value
	}

	if len(parts) == 0 {
		return "", nil, false
	}
	return strings.Join(parts, "."), node, true
}
