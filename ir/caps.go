package ir

import (
	"github.com/treeq-dev/treeq"
)

// Node implements every treeq capability.
var (
	_ treeq.Value       = (*Node)(nil)
	_ treeq.MutLookuper = (*Node)(nil)
	_ treeq.Shaper      = (*Node)(nil)
	_ treeq.MutShaper   = (*Node)(nil)
	_ treeq.Decoder     = (*Node)(nil)
)

// Lookup resolves one query step: a field on an object or an index
// into an array. The returned node aliases the tree.
func (y *Node) Lookup(k treeq.Key) (treeq.Value, bool) {
	child := y.lookup(k)
	if child == nil {
		return nil, false
	}
	return child, true
}

// LookupMut is Lookup; nodes are inherently mutable, so the immutable
// form already aliases the tree.
func (y *Node) LookupMut(k treeq.Key) (treeq.Value, bool) {
	return y.Lookup(k)
}

func (y *Node) lookup(k treeq.Key) *Node {
	switch k.Kind {
	case treeq.FieldKey:
		if y.Type != ObjectType {
			return nil
		}
		return Get(y, k.Field)
	case treeq.IndexKey:
		if y.Type != ArrayType {
			return nil
		}
		if k.Index < 0 || k.Index >= len(y.Values) {
			return nil
		}
		return y.Values[k.Index]
	}
	return nil
}

// AsShape views the node as the requested shape. Scalar shapes yield
// Go scalars; ObjectShape and ArrayShape yield snapshots whose entries
// still alias the tree.
func (y *Node) AsShape(s treeq.Shape) (any, bool) {
	switch s {
	case treeq.StringShape:
		if y.Type != StringType {
			return nil, false
		}
		return y.String, true
	case treeq.IntShape:
		if y.Type != NumberType || y.Int64 == nil {
			return nil, false
		}
		return *y.Int64, true
	case treeq.UintShape:
		if y.Type != NumberType || y.Int64 == nil || *y.Int64 < 0 {
			return nil, false
		}
		return uint64(*y.Int64), true
	case treeq.FloatShape:
		if y.Type != NumberType {
			return nil, false
		}
		if y.Float64 != nil {
			return *y.Float64, true
		}
		if y.Int64 != nil {
			return float64(*y.Int64), true
		}
		return nil, false
	case treeq.NumberShape:
		if y.Type != NumberType {
			return nil, false
		}
		if y.Int64 != nil {
			return *y.Int64, true
		}
		if y.Float64 != nil {
			return *y.Float64, true
		}
		return nil, false
	case treeq.BoolShape:
		if y.Type != BoolType {
			return nil, false
		}
		return y.Bool, true
	case treeq.NullShape:
		if y.Type != NullType {
			return nil, false
		}
		return nil, true
	case treeq.ObjectShape:
		if y.Type != ObjectType {
			return nil, false
		}
		return ToMap(y), true
	case treeq.ArrayShape:
		if y.Type != ArrayType {
			return nil, false
		}
		vs := make([]*Node, len(y.Values))
		copy(vs, y.Values)
		return vs, true
	}
	return nil, false
}

// AsShapeMut views the node as a mutable container: the node itself,
// whose SetField, RemoveField, Append and Replace methods edit the
// tree in place. Only ObjectShape and ArrayShape have mutable views.
func (y *Node) AsShapeMut(s treeq.Shape) (any, bool) {
	switch s {
	case treeq.ObjectShape:
		if y.Type != ObjectType {
			return nil, false
		}
		return y, true
	case treeq.ArrayShape:
		if y.Type != ArrayType {
			return nil, false
		}
		return y, true
	}
	return nil, false
}

// Decode deserializes the subtree into dst, which must be a non-nil
// pointer.
func (y *Node) Decode(dst any) error {
	return decodeInto(y, dst)
}
