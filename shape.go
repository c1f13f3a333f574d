package treeq

import "fmt"

// Shape is a narrow structural category the final node of a query may
// be cast to with the -> operator.
type Shape int

const (
	StringShape Shape = iota
	IntShape
	UintShape
	FloatShape
	NumberShape
	BoolShape
	NullShape
	ObjectShape
	ArrayShape
)

func (s Shape) String() string {
	v, ok := map[Shape]string{
		StringShape: "str",
		IntShape:    "int",
		UintShape:   "uint",
		FloatShape:  "float",
		NumberShape: "number",
		BoolShape:   "bool",
		NullShape:   "null",
		ObjectShape: "object",
		ArrayShape:  "array",
	}[s]
	if ok {
		return v
	}
	return "<unknown shape>"
}

func ParseShape(v string) (Shape, error) {
	s, ok := map[string]Shape{
		"str":    StringShape,
		"string": StringShape,
		"int":    IntShape,
		"i64":    IntShape,
		"uint":   UintShape,
		"u64":    UintShape,
		"float":  FloatShape,
		"f64":    FloatShape,
		"number": NumberShape,
		"bool":   BoolShape,
		"null":   NullShape,
		"object": ObjectShape,
		"map":    ObjectShape,
		"array":  ArrayShape,
		"seq":    ArrayShape,
	}[v]
	if !ok {
		return 0, fmt.Errorf("unrecognized shape %q", v)
	}
	return s, nil
}

func Shapes() []Shape {
	return []Shape{
		StringShape,
		IntShape,
		UintShape,
		FloatShape,
		NumberShape,
		BoolShape,
		NullShape,
		ObjectShape,
		ArrayShape,
	}
}

// Mutable reports whether the shape has a mutable accessor. Only
// container shapes can be narrowed by a mut query; scalar casts yield
// owned values and are rejected at compile time.
func (s Shape) Mutable() bool {
	switch s {
	case ObjectShape, ArrayShape:
		return true
	default:
		return false
	}
}
