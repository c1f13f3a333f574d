package treeq

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"

	"github.com/treeq-dev/treeq/debug"
)

// Env is the environment dynamic bracket and fallback expressions are
// evaluated against. Entries may be plain values or functions.
type Env map[string]any

type evalOpts struct {
	env Env
}

type EvalOption func(*evalOpts)

// WithEnv supplies the expression environment for [expr] steps and
// ?? fallbacks.
func WithEnv(env Env) EvalOption {
	return func(o *evalOpts) {
		o.env = env
	}
}

func evalOptions(opts []EvalOption) *evalOpts {
	eo := &evalOpts{}
	for _, f := range opts {
		f(eo)
	}
	return eo
}

// Eval walks root according to the plan and returns the raw Outcome.
// Steps run strictly left to right; the first missing lookup halts the
// walk. Index expressions are evaluated exactly once, at the moment
// their step is reached.
func (p *Plan) Eval(root Value, opts ...EvalOption) Outcome {
	return p.eval(root, evalOptions(opts))
}

func (p *Plan) eval(root Value, eo *evalOpts) Outcome {
	cur := root
	keys := make([]Key, 0, len(p.Steps))
	for i := range p.Steps {
		step := &p.Steps[i]
		key, err := p.stepKey(step, i, eo)
		if err != nil {
			return Outcome{err: err}
		}
		keys = append(keys, key)
		var (
			next Value
			ok   bool
		)
		if p.Mode == Mutable {
			ml, is := cur.(MutLookuper)
			if !is {
				return Outcome{err: &UnsupportedError{Op: "mutable lookup"}}
			}
			next, ok = ml.LookupMut(key)
		} else {
			next, ok = cur.Lookup(key)
		}
		if !ok {
			return Outcome{err: &NotFoundError{Step: i, Path: path(keys)}}
		}
		if debug.Eval() {
			debug.Logf("eval %q: step %d resolved %s\n", p.src, i, path(keys))
		}
		cur = next
	}
	if p.Finisher.Kind != CastFinisher {
		// For DecodeFinisher the adapter supplies the destination
		// and performs the decode on the resolved node.
		return Outcome{node: cur}
	}
	s := p.Finisher.Shape
	if p.Mode == Mutable {
		ms, is := cur.(MutShaper)
		if !is {
			return Outcome{err: &UnsupportedError{Op: "mutable shape casts"}}
		}
		v, ok := ms.AsShapeMut(s)
		if !ok {
			return Outcome{err: &CastError{Shape: s, Mutable: true}}
		}
		return Outcome{node: cur, val: v, cast: true}
	}
	sh, is := cur.(Shaper)
	if !is {
		return Outcome{err: &UnsupportedError{Op: "shape casts"}}
	}
	v, ok := sh.AsShape(s)
	if !ok {
		return Outcome{err: &CastError{Shape: s}}
	}
	return Outcome{node: cur, val: v, cast: true}
}

func (p *Plan) stepKey(step *Step, i int, eo *evalOpts) (Key, error) {
	if step.Kind == FieldStep {
		return FieldOf(step.Field), nil
	}
	res, err := expr.Run(step.Expr, map[string]any(eo.env))
	if err != nil {
		return Key{}, &ExprError{Step: i, Src: step.Src, Err: err}
	}
	key, err := toKey(res)
	if err != nil {
		return Key{}, &ExprError{Step: i, Src: step.Src, Err: err}
	}
	return key, nil
}

// toKey maps an index expression result onto a lookup key: strings
// address fields, integers address array elements.
func toKey(v any) (Key, error) {
	switch x := v.(type) {
	case string:
		return FieldOf(x), nil
	case int:
		return IndexOf(x), nil
	case int8:
		return IndexOf(int(x)), nil
	case int16:
		return IndexOf(int(x)), nil
	case int32:
		return IndexOf(int(x)), nil
	case int64:
		return IndexOf(int(x)), nil
	case uint:
		if uint64(x) > math.MaxInt {
			return Key{}, fmt.Errorf("index %d overflows int", x)
		}
		return IndexOf(int(x)), nil
	case uint8:
		return IndexOf(int(x)), nil
	case uint16:
		return IndexOf(int(x)), nil
	case uint32:
		return IndexOf(int(x)), nil
	case uint64:
		if x > math.MaxInt {
			return Key{}, fmt.Errorf("index %d overflows int", x)
		}
		return IndexOf(int(x)), nil
	case float64:
		if x != math.Trunc(x) {
			return Key{}, fmt.Errorf("index %v is not an integer", x)
		}
		return IndexOf(int(x)), nil
	default:
		return Key{}, fmt.Errorf("cannot index with %T", v)
	}
}
