package treeq

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("value not found")
	ErrCast        = errors.New("cast failed")
	ErrDecode      = errors.New("deserialization failed")
	ErrExpr        = errors.New("index expression failed")
	ErrUnsupported = errors.New("capability not supported")
	ErrCompile     = errors.New("invalid query")
)

// NotFoundError reports a lookup step that found no child. Path is the
// rendered path up to and including the failing key, Step the index of
// the failing step.
type NotFoundError struct {
	Step int
	Path string
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("value not found at path %s (step %d)", e.Path, e.Step)
}

// CastError reports that the final node does not match the requested
// shape.
type CastError struct {
	Shape   Shape
	Mutable bool
}

func (e *CastError) Unwrap() error {
	return ErrCast
}

func (e *CastError) Error() string {
	if e.Mutable {
		return fmt.Sprintf("mutable cast to %s failed", e.Shape)
	}
	return fmt.Sprintf("cast to %s failed", e.Shape)
}

// DecodeError reports a failed structured deserialization of the final
// node. Type is the type name from the query text, when present.
type DecodeError struct {
	Type string
	Err  error
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

func (e *DecodeError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("failed to deserialize the queried value into %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("failed to deserialize the queried value: %v", e.Err)
}

// ExprError reports a dynamic index or fallback expression that failed
// at evaluation time. Step is -1 for a "??" fallback.
type ExprError struct {
	Step int
	Src  string
	Err  error
}

func (e *ExprError) Unwrap() error {
	return ErrExpr
}

func (e *ExprError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("fallback expression %s failed: %v", e.Src, e.Err)
	}
	return fmt.Sprintf("index expression [%s] at step %d failed: %v", e.Src, e.Step, e.Err)
}

// UnsupportedError reports that the queried value does not implement
// the capability a query feature requires.
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("value does not support %s", e.Op)
}

// CompileError wraps all construction-time failures of Compile.
type CompileError struct {
	Query string
	Err   error
}

func (e *CompileError) Unwrap() []error {
	return []error{ErrCompile, e.Err}
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid query %q: %v", e.Query, e.Err)
}
