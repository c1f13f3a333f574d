package ir

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// FromAny builds a node tree from dynamically typed data, such as the
// output of a JSON, YAML or TOML parser. Object fields come out in
// sorted key order. Timestamps render as RFC 3339 strings.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case time.Time:
		return FromString(x.Format(time.RFC3339)), nil
	case []any:
		vs := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return FromMap(m), nil
	case *Node:
		return x, nil
	}
	return fromAnyReflect(v)
}

// fromAnyReflect covers typed maps and slices the type switch misses,
// such as map[string]string from a TOML table.
func fromAnyReflect(v any) (*Node, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		vs := make([]*Node, rv.Len())
		for i := range vs {
			n, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot build node from map with %s keys", rv.Type().Key())
		}
		m := make(map[string]*Node, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			n, err := FromAny(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			m[iter.Key().String()] = n
		}
		return FromMap(m), nil
	}
	if s, ok := v.(fmt.Stringer); ok {
		return FromString(s.String()), nil
	}
	return nil, fmt.Errorf("cannot build node from %T", v)
}

func fromUint(u uint64) *Node {
	if u <= math.MaxInt64 {
		return FromInt(int64(u))
	}
	return &Node{Type: NumberType, Number: strconv.FormatUint(u, 10)}
}

// ToAny converts a node tree to plain Go data: nil, bool, int64,
// float64, string, []any and map[string]any.
func ToAny(node *Node) (any, error) {
	return toAny(node, "")
}

func toAny(node *Node, fieldPath string) (any, error) {
	switch node.Type {
	case NullType:
		return nil, nil
	case BoolType:
		return node.Bool, nil
	case StringType:
		return node.String, nil
	case NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		case node.Number != "":
			if i, err := strconv.ParseInt(node.Number, 10, 64); err == nil {
				return i, nil
			}
			if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
				return f, nil
			}
			return nil, &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid number: %q", node.Number),
			}
		default:
			return nil, &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "number node has no value",
			}
		}
	case ArrayType:
		vs := make([]any, len(node.Values))
		for i, e := range node.Values {
			v, err := toAny(e, fmt.Sprintf("%s[%d]", fieldPath, i))
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return vs, nil
	case ObjectType:
		m := make(map[string]any, len(node.Fields))
		for i := range node.Fields {
			key := node.Fields[i].String
			v, err := toAny(node.Values[i], joinPath(fieldPath, key))
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil
	}
	return nil, &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported node type %s", node.Type),
	}
}

// SortedFields returns an object's field names in sorted order,
// regardless of document order.
func SortedFields(node *Node) []string {
	if node.Type != ObjectType {
		return nil
	}
	keys := make([]string, len(node.Fields))
	for i := range node.Fields {
		keys[i] = node.Fields[i].String
	}
	sort.Strings(keys)
	return keys
}
