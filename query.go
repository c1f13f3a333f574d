package treeq

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Lookup evaluates p against root and returns the resolved node.
// A "?? default" fallback on a failed query yields (nil, true); any
// other failure yields (nil, false).
func (p *Plan) Lookup(root Value, opts ...EvalOption) (Value, bool) {
	v, err := p.LookupStrict(root, opts...)
	if err != nil {
		return nil, false
	}
	return v, true
}

// LookupStrict is Lookup with the failure preserved. An expression
// fallback is applied only when its result itself implements Value;
// otherwise the original failure is returned.
func (p *Plan) LookupStrict(root Value, opts ...EvalOption) (Value, error) {
	eo := evalOptions(opts)
	o := p.eval(root, eo)
	if o.Found() {
		return o.node, nil
	}
	switch p.Coalesce.Kind {
	case DefaultCoalesce:
		return nil, nil
	case ExprCoalesce:
		res, err := p.runCoalesce(eo)
		if err != nil {
			return nil, err
		}
		if v, ok := res.(Value); ok {
			return v, nil
		}
		return nil, fmt.Errorf("fallback %T is not a node: %w", res, o.err)
	}
	return nil, o.err
}

// Get evaluates p against root and adapts the result to T.
func Get[T any](p *Plan, root Value, opts ...EvalOption) (T, bool) {
	v, err := GetStrict[T](p, root, opts...)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// GetStrict is Get with the failure preserved. Plans that end in a
// ">>" finisher are decoded into T; otherwise the cast value (or the
// final node, absent a finisher) is converted to T. Any failure runs
// the fallback when one is present.
func GetStrict[T any](p *Plan, root Value, opts ...EvalOption) (T, error) {
	eo := evalOptions(opts)
	if p.Finisher.Kind == DecodeFinisher {
		return decodeTo[T](p, root, eo)
	}
	o := p.eval(root, eo)
	if o.Found() {
		v, err := convertTo[T](o.Val())
		if err == nil {
			return v, nil
		}
		return coalesceTo[T](p, eo, fmt.Errorf("%w: %v", ErrCast, err))
	}
	return coalesceTo[T](p, eo, o.err)
}

// Decode deserializes the node p resolves into a fresh T. Plans with a
// "->" cast finisher cannot be decoded.
func Decode[T any](p *Plan, root Value, opts ...EvalOption) (T, error) {
	if p.Finisher.Kind == CastFinisher {
		var zero T
		return zero, &UnsupportedError{Op: "decoding a cast query"}
	}
	return decodeTo[T](p, root, evalOptions(opts))
}

// DecodeInto is Decode for callers without a static destination type.
// dst must be a non-nil pointer.
func (p *Plan) DecodeInto(root Value, dst any, opts ...EvalOption) error {
	if p.Finisher.Kind == CastFinisher {
		return &UnsupportedError{Op: "decoding a cast query"}
	}
	eo := evalOptions(opts)
	o := p.eval(root, eo)
	if !o.Found() {
		return coalesceInto(p, eo, dst, o.err)
	}
	dec, ok := o.node.(Decoder)
	if !ok {
		return &UnsupportedError{Op: "structured decoding"}
	}
	if err := dec.Decode(dst); err != nil {
		return coalesceInto(p, eo, dst, &DecodeError{Type: p.Finisher.Type, Err: err})
	}
	return nil
}

// Query compiles and evaluates q in one shot. Prefer Compile plus
// Lookup when the same query runs more than once.
func Query(root Value, q string, opts ...EvalOption) (Value, error) {
	p, err := Compile(q)
	if err != nil {
		return nil, err
	}
	return p.LookupStrict(root, opts...)
}

func decodeTo[T any](p *Plan, root Value, eo *evalOpts) (T, error) {
	var zero T
	o := p.eval(root, eo)
	if !o.Found() {
		return coalesceTo[T](p, eo, o.err)
	}
	dec, ok := o.node.(Decoder)
	if !ok {
		return zero, &UnsupportedError{Op: "structured decoding"}
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return coalesceTo[T](p, eo, &DecodeError{Type: p.Finisher.Type, Err: err})
	}
	return dst, nil
}

// coalesceTo applies the plan's fallback to a typed failure. Without
// one the original failure stands.
func coalesceTo[T any](p *Plan, eo *evalOpts, orig error) (T, error) {
	var zero T
	switch p.Coalesce.Kind {
	case DefaultCoalesce:
		return zero, nil
	case ExprCoalesce:
		res, err := p.runCoalesce(eo)
		if err != nil {
			return zero, err
		}
		v, err := convertTo[T](res)
		if err != nil {
			return zero, fmt.Errorf("fallback: %w", err)
		}
		return v, nil
	}
	return zero, orig
}

func coalesceInto(p *Plan, eo *evalOpts, dst any, orig error) error {
	switch p.Coalesce.Kind {
	case DefaultCoalesce:
		return setInto(dst, nil)
	case ExprCoalesce:
		res, err := p.runCoalesce(eo)
		if err != nil {
			return err
		}
		if err := setInto(dst, res); err != nil {
			return fmt.Errorf("fallback: %w", err)
		}
		return nil
	}
	return orig
}

// runCoalesce evaluates the "??" fallback expression. Fallbacks run
// lazily, only after the query itself has failed.
func (p *Plan) runCoalesce(eo *evalOpts) (any, error) {
	res, err := expr.Run(p.Coalesce.Expr, map[string]any(eo.env))
	if err != nil {
		return nil, &ExprError{Step: -1, Src: p.Coalesce.Src, Err: err}
	}
	return res, nil
}
