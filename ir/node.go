package ir

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Node is one value in the tree. It is a tagged union: Type selects
// which of the remaining fields carry the value.
//
// For ObjectType, Fields[i] is the string-typed key node for the value
// at Values[i]. For ArrayType only Values is populated. Numbers carry
// Int64 or Float64, with Number as a string fallback for values
// neither can represent.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromMap builds an object node with fields in sorted key order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(m))
	res.Values = make([]*Node, len(m))
	keys := slices.Sorted(maps.Keys(m))
	for i, key := range keys {
		v := m[key]
		v.Parent = res
		v.ParentIndex = i
		v.ParentField = key
		res.Fields[i] = &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Values[i] = v
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	for i, v := range vs {
		res.Values[i] = v
		v.Parent = res
		v.ParentIndex = i
	}
	return res
}

// ToMap snapshots an object node's fields. Returns nil for non-objects.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

// Get returns the value of the named field, or nil.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Visit walks the subtree rooted at y. f is called once before and
// once after each node's children; returning false from the pre call
// skips the children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// SetField sets field name to v on an object node, replacing any
// existing value in place.
func (y *Node) SetField(name string, v *Node) error {
	if y.Type != ObjectType {
		return fmt.Errorf("set field %q: expected object, got %s", name, y.Type)
	}
	v.ParentField = name
	for i := range y.Fields {
		if y.Fields[i].String != name {
			continue
		}
		v.Parent = y
		v.ParentIndex = i
		y.Values[i] = v
		return nil
	}
	i := len(y.Fields)
	v.Parent = y
	v.ParentIndex = i
	y.Fields = append(y.Fields, &Node{
		Parent:      y,
		ParentIndex: i,
		ParentField: name,
		Type:        StringType,
		String:      name,
	})
	y.Values = append(y.Values, v)
	return nil
}

// RemoveField removes field name from an object node. Removing an
// absent field is a no-op.
func (y *Node) RemoveField(name string) error {
	if y.Type != ObjectType {
		return fmt.Errorf("remove field %q: expected object, got %s", name, y.Type)
	}
	for i := range y.Fields {
		if y.Fields[i].String != name {
			continue
		}
		y.Fields = slices.Delete(y.Fields, i, i+1)
		y.Values = slices.Delete(y.Values, i, i+1)
		for j := i; j < len(y.Values); j++ {
			y.Fields[j].ParentIndex = j
			y.Values[j].ParentIndex = j
		}
		return nil
	}
	return nil
}

// Append appends v to an array node.
func (y *Node) Append(v *Node) error {
	if y.Type != ArrayType {
		return fmt.Errorf("append: expected array, got %s", y.Type)
	}
	v.Parent = y
	v.ParentIndex = len(y.Values)
	y.Values = append(y.Values, v)
	return nil
}

// Replace overwrites y's value in place with v's, keeping y's position
// in the tree. Replacing through an alias obtained from a query makes
// the edit visible at the root.
func (y *Node) Replace(v *Node) {
	parent, pi, pf := y.Parent, y.ParentIndex, y.ParentField
	v.CloneTo(y)
	y.Parent, y.ParentIndex, y.ParentField = parent, pi, pf
	for i := range y.Values {
		y.Values[i].Parent = y
	}
	for i := range y.Fields {
		y.Fields[i].Parent = y
	}
}

// used when input was read as untyped text
func (y *Node) ReType() {
	if y.Type != StringType {
		return
	}
	v := y.String
	switch v {
	case "null":
		y.Type = NullType
		return
	case "true":
		y.Type = BoolType
		y.Bool = true
		return
	case "false":
		y.Type = BoolType
		y.Bool = false
		return
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		y.Type = NumberType
		y.Int64 = &i
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil {
		y.Type = NumberType
		y.Float64 = &f
	}
}
