package treeq

import (
	"fmt"
	"reflect"
)

// convertTo adapts an evaluation or fallback result to the caller's
// destination type. Besides direct assertion it permits numeric
// widening/narrowing with overflow checks and conversion between
// string kinds; anything else is a type mismatch.
func convertTo[T any](v any) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}
	out, err := convertValue(v, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	t, ok := out.Interface().(T)
	if !ok {
		// a zero interface or nil-able result asserts false; the
		// zero value is the faithful conversion
		return zero, nil
	}
	return t, nil
}

func convertValue(v any, tt reflect.Type) (reflect.Value, error) {
	none := reflect.Value{}
	if v == nil {
		switch tt.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
			return reflect.Zero(tt), nil
		}
		return none, fmt.Errorf("cannot use nil as %s", tt)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(tt) {
		return rv, nil
	}
	out := reflect.New(tt).Elem()
	sk, dk := rv.Kind(), tt.Kind()
	switch {
	case isIntKind(sk):
		i := rv.Int()
		switch {
		case isIntKind(dk):
			if out.OverflowInt(i) {
				return none, fmt.Errorf("%d overflows %s", i, tt)
			}
			out.SetInt(i)
		case isUintKind(dk):
			if i < 0 {
				return none, fmt.Errorf("%d overflows %s", i, tt)
			}
			u := uint64(i)
			if out.OverflowUint(u) {
				return none, fmt.Errorf("%d overflows %s", i, tt)
			}
			out.SetUint(u)
		case isFloatKind(dk):
			out.SetFloat(float64(i))
		default:
			return none, fmt.Errorf("cannot convert %T to %s", v, tt)
		}
	case isUintKind(sk):
		u := rv.Uint()
		switch {
		case isUintKind(dk):
			if out.OverflowUint(u) {
				return none, fmt.Errorf("%d overflows %s", u, tt)
			}
			out.SetUint(u)
		case isIntKind(dk):
			i := int64(u)
			if i < 0 || out.OverflowInt(i) {
				return none, fmt.Errorf("%d overflows %s", u, tt)
			}
			out.SetInt(i)
		case isFloatKind(dk):
			out.SetFloat(float64(u))
		default:
			return none, fmt.Errorf("cannot convert %T to %s", v, tt)
		}
	case isFloatKind(sk):
		if !isFloatKind(dk) {
			return none, fmt.Errorf("cannot convert %T to %s", v, tt)
		}
		f := rv.Float()
		if out.OverflowFloat(f) {
			return none, fmt.Errorf("%v overflows %s", f, tt)
		}
		out.SetFloat(f)
	case sk == reflect.String && dk == reflect.String:
		out.SetString(rv.String())
	default:
		return none, fmt.Errorf("cannot convert %T to %s", v, tt)
	}
	return out, nil
}

// setInto writes v into the pointer dst, applying the same conversion
// rules as convertTo. A nil v zeroes the destination.
func setInto(dst, v any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("destination must be a non-nil pointer, got %T", dst)
	}
	el := rv.Elem()
	if v == nil {
		el.Set(reflect.Zero(el.Type()))
		return nil
	}
	out, err := convertValue(v, el.Type())
	if err != nil {
		return err
	}
	el.Set(out)
	return nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
