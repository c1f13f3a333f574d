package ir

import (
	"strconv"

	"github.com/treeq-dev/treeq/token"
)

// Path returns the kinded path of this node's position in the tree:
// fields dot-joined, indices bracketed, "" for the root.
//
// Examples:
//   - Object field "a" under the root → "a"
//   - Array element at index 0 → "[0]"
//   - Mixed → "a[0].b"
func (node *Node) Path() string {
	if node.Parent == nil {
		return ""
	}
	switch node.Parent.Type {
	case ObjectType:
		f := node.ParentField
		prefix := node.Parent.Path()
		var quoted string
		if token.QuoteField(f) {
			quoted = token.Quote(f)
		} else {
			quoted = f
		}
		if prefix == "" {
			return quoted
		}
		return prefix + "." + quoted

	case ArrayType:
		return node.Parent.Path() + "[" + strconv.Itoa(node.ParentIndex) + "]"

	default:
		panic("parent but not in container")
	}
}
