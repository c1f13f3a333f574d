package treeq

import (
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Mode selects which lookup capability a plan uses.
type Mode int

const (
	Immutable Mode = iota
	Mutable
)

func (m Mode) String() string {
	if m == Mutable {
		return "mut"
	}
	return "immutable"
}

type StepKind int

const (
	// FieldStep is a static identifier access, .name.
	FieldStep StepKind = iota
	// IndexStep is a bracketed access whose key is computed at
	// evaluation time, [expr].
	IndexStep
)

// Step is one field or index access in a query pipeline.
type Step struct {
	Kind  StepKind
	Field string

	// IndexStep only: the compiled bracket expression and its source.
	Expr *vm.Program
	Src  string
}

type FinisherKind int

const (
	NoFinisher FinisherKind = iota
	// CastFinisher narrows the final node to a Shape, ->.
	CastFinisher
	// DecodeFinisher requests full structured deserialization, >>.
	DecodeFinisher
)

// Finisher is the optional terminal operation of a plan.
type Finisher struct {
	Kind  FinisherKind
	Shape Shape
	// DecodeFinisher only: the destination type name from the query
	// text, carried for diagnostics.
	Type string
}

type CoalesceKind int

const (
	NoCoalesce CoalesceKind = iota
	// DefaultCoalesce substitutes the destination type's zero value
	// on failure, ?? default.
	DefaultCoalesce
	// ExprCoalesce substitutes the fallback expression's value on
	// failure, evaluated lazily, ?? expr.
	ExprCoalesce
)

// Coalesce is the optional fallback policy of a plan.
type Coalesce struct {
	Kind CoalesceKind
	Expr *vm.Program
	Src  string
}

// Plan is a compiled query: an ordered step pipeline, an optional
// finisher, an optional coalesce, and the mutability mode. Plans are
// pure data, immutable after Compile, and safe to evaluate any number
// of times from multiple goroutines.
type Plan struct {
	Steps    []Step
	Finisher Finisher
	Coalesce Coalesce
	Mode     Mode

	src string
}

// String returns the query source the plan was compiled from.
func (p *Plan) String() string {
	return p.src
}

// path renders the keys resolved so far, kinded-path style, e.g.
// "package.authors[0]".
func path(keys []Key) string {
	var b strings.Builder
	for _, k := range keys {
		k.appendPath(&b)
	}
	return b.String()
}
