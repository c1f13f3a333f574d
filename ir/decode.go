package ir

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/treeq-dev/treeq/debug"
)

var (
	nodeType = reflect.TypeOf((*Node)(nil))
	timeType = reflect.TypeOf(time.Time{})
)

// decodeInto converts a node tree to a Go value. v must be a non-nil
// pointer. Struct fields are matched by `treeq` tag, then by name,
// then case-insensitively.
func decodeInto(node *Node, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	if debug.Decode() {
		debug.Logf("decode %s node at %q into %T\n", node.Type, node.Path(), v)
	}
	return decodeReflect(node, val.Elem(), "")
}

func decodeReflect(node *Node, val reflect.Value, fieldPath string) error {
	if node == nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "node is nil"}
	}

	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Pointer {
		if typ == nodeType {
			if val.IsNil() {
				val.Set(reflect.ValueOf(node.Clone()))
			} else {
				node.CloneTo(val.Interface().(*Node))
			}
			return nil
		}
		if node.Type == NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return decodeReflect(node, val.Elem(), fieldPath)
	}

	if node.Type == NullType {
		if val.CanSet() {
			val.Set(reflect.Zero(typ))
		}
		return nil
	}

	if typ == timeType {
		return decodeTime(node, val, fieldPath)
	}

	switch kind {
	case reflect.String:
		return decodeString(node, val, fieldPath)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decodeInt(node, val, fieldPath)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decodeUint(node, val, fieldPath)
	case reflect.Float32, reflect.Float64:
		return decodeFloat(node, val, fieldPath)
	case reflect.Bool:
		return decodeBool(node, val, fieldPath)
	case reflect.Slice, reflect.Array:
		return decodeSlice(node, val, fieldPath)
	case reflect.Map:
		return decodeMap(node, val, fieldPath)
	case reflect.Struct:
		return decodeStruct(node, val, fieldPath)
	case reflect.Interface:
		return decodeInterface(node, val, fieldPath)
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

func decodeString(node *Node, val reflect.Value, fieldPath string) error {
	if node.Type != StringType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected string, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetString(node.String)
	}
	return nil
}

func decodeTime(node *Node, val reflect.Value, fieldPath string) error {
	if node.Type != StringType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected timestamp string, got %s", node.Type),
		}
	}
	t, err := time.Parse(time.RFC3339, node.String)
	if err != nil {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("invalid timestamp %q", node.String),
			Err:       err,
		}
	}
	if val.CanSet() {
		val.Set(reflect.ValueOf(t))
	}
	return nil
}

func decodeInt(node *Node, val reflect.Value, fieldPath string) error {
	var iv int64
	switch node.Type {
	case NumberType:
		switch {
		case node.Int64 != nil:
			iv = *node.Int64
		case node.Number != "":
			parsed, err := strconv.ParseInt(node.Number, 10, 64)
			if err != nil {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("invalid number: %q", node.Number),
					Err:       err,
				}
			}
			iv = parsed
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "non-integer number cannot be converted to int",
			}
		}
	case StringType:
		parsed, err := strconv.ParseInt(node.String, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to int", node.String),
				Err:       err,
			}
		}
		iv = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	if val.OverflowInt(iv) {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("value %d overflows %s", iv, val.Type()),
		}
	}
	if val.CanSet() {
		val.SetInt(iv)
	}
	return nil
}

func decodeUint(node *Node, val reflect.Value, fieldPath string) error {
	var uv uint64
	switch node.Type {
	case NumberType:
		switch {
		case node.Int64 != nil:
			if *node.Int64 < 0 {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("negative value %d cannot be converted to unsigned integer", *node.Int64),
				}
			}
			uv = uint64(*node.Int64)
		case node.Number != "":
			parsed, err := strconv.ParseUint(node.Number, 10, 64)
			if err != nil {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("invalid unsigned number: %q", node.Number),
					Err:       err,
				}
			}
			uv = parsed
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "non-integer number cannot be converted to uint",
			}
		}
	case StringType:
		parsed, err := strconv.ParseUint(node.String, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to uint", node.String),
				Err:       err,
			}
		}
		uv = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	if val.OverflowUint(uv) {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("value %d overflows %s", uv, val.Type()),
		}
	}
	if val.CanSet() {
		val.SetUint(uv)
	}
	return nil
}

func decodeFloat(node *Node, val reflect.Value, fieldPath string) error {
	var fv float64
	switch node.Type {
	case NumberType:
		switch {
		case node.Float64 != nil:
			fv = *node.Float64
		case node.Int64 != nil:
			fv = float64(*node.Int64)
		case node.Number != "":
			parsed, err := strconv.ParseFloat(node.Number, 64)
			if err != nil {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("invalid float: %q", node.Number),
					Err:       err,
				}
			}
			fv = parsed
		default:
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   "number node has no value",
			}
		}
	case StringType:
		parsed, err := strconv.ParseFloat(node.String, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot convert string %q to float", node.String),
				Err:       err,
			}
		}
		fv = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	if val.CanSet() {
		if val.Kind() == reflect.Float32 {
			val.SetFloat(float64(float32(fv)))
		} else {
			val.SetFloat(fv)
		}
	}
	return nil
}

func decodeBool(node *Node, val reflect.Value, fieldPath string) error {
	if node.Type != BoolType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected bool, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetBool(node.Bool)
	}
	return nil
}

func decodeSlice(node *Node, val reflect.Value, fieldPath string) error {
	if node.Type != ArrayType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected array, got %s", node.Type),
		}
	}
	length := len(node.Values)
	typ := val.Type()
	if typ.Kind() == reflect.Array {
		if val.Len() != length {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("array length mismatch: expected %d, got %d", val.Len(), length),
			}
		}
	} else {
		if val.IsNil() || val.Cap() < length {
			val.Set(reflect.MakeSlice(typ, length, length))
		} else {
			val.SetLen(length)
		}
	}
	for i := 0; i < length; i++ {
		elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
		if err := decodeReflect(node.Values[i], val.Index(i), elemPath); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(node *Node, val reflect.Value, fieldPath string) error {
	if node.Type != ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
		}
	}
	valType := typ.Elem()
	val.Set(reflect.MakeMap(typ))
	for i := range node.Fields {
		key := node.Fields[i].String
		valueVal := reflect.New(valType).Elem()
		valuePath := joinPath(fieldPath, key)
		if err := decodeReflect(node.Values[i], valueVal, valuePath); err != nil {
			return err
		}
		val.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), valueVal)
	}
	return nil
}

func decodeStruct(node *Node, val reflect.Value, fieldPath string) error {
	if node.Type != ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}
	byName, byFold := structFields(val.Type())
	for i := range node.Fields {
		name := node.Fields[i].String
		idx, ok := byName[name]
		if !ok {
			idx, ok = byFold[strings.ToLower(name)]
		}
		if !ok {
			// unknown document fields are skipped
			continue
		}
		fieldVal := val.FieldByIndex(idx)
		if !fieldVal.IsValid() {
			continue
		}
		if err := decodeReflect(node.Values[i], fieldVal, joinPath(fieldPath, name)); err != nil {
			return err
		}
	}
	return nil
}

// structFields indexes a struct's decodable fields: by `treeq` tag or
// exact name, and case-folded as a fallback. Embedded structs are
// flattened one level, with outer fields winning conflicts.
func structFields(typ reflect.Type) (byName, byFold map[string][]int) {
	byName = make(map[string][]int)
	byFold = make(map[string][]int)
	add := func(name string, idx []int) {
		if _, ok := byName[name]; !ok {
			byName[name] = idx
		}
		if folded := strings.ToLower(name); folded != name {
			if _, ok := byFold[folded]; !ok {
				byFold[folded] = idx
			}
		}
	}
	var embedded []reflect.StructField
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded = append(embedded, field)
			continue
		}
		name, skip := fieldName(field)
		if skip {
			continue
		}
		add(name, field.Index)
	}
	for _, outer := range embedded {
		et := outer.Type
		for j := 0; j < et.NumField(); j++ {
			field := et.Field(j)
			if !field.IsExported() || field.Anonymous {
				continue
			}
			name, skip := fieldName(field)
			if skip {
				continue
			}
			add(name, append(outer.Index, field.Index...))
		}
	}
	return byName, byFold
}

func fieldName(field reflect.StructField) (name string, skip bool) {
	tag := field.Tag.Get("treeq")
	if tag == "-" {
		return "", true
	}
	name, _, _ = strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, false
}

func decodeInterface(node *Node, val reflect.Value, fieldPath string) error {
	v, err := toAny(node, fieldPath)
	if err != nil {
		return err
	}
	if val.CanSet() {
		if v == nil {
			val.Set(reflect.Zero(val.Type()))
		} else {
			val.Set(reflect.ValueOf(v))
		}
	}
	return nil
}

func joinPath(fieldPath, name string) string {
	if fieldPath == "" {
		return name
	}
	return fieldPath + "." + name
}
