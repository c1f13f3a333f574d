package treeq

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/treeq-dev/treeq/debug"
	"github.com/treeq-dev/treeq/token"
)

var (
	errNoSteps     = errors.New("query has no steps")
	errMutDecode   = errors.New("mut cannot be combined with >>")
	errMutCoalesce = errors.New("mut cannot be combined with ??")
	errMutShape    = errors.New("shape has no mutable accessor")
	errTrailing    = errors.New("unexpected trailing input")
)

// Compile parses a query expression into a Plan. Malformed grammar is
// a construction-time failure and never reaches evaluation.
func Compile(q string) (*Plan, error) {
	p, err := compile(q)
	if err != nil {
		return nil, &CompileError{Query: q, Err: err}
	}
	if debug.Compile() {
		debug.Logf("compiled %q: %d steps, finisher %d, coalesce %d, %s\n",
			q, len(p.Steps), p.Finisher.Kind, p.Coalesce.Kind, p.Mode)
	}
	return p, nil
}

// MustCompile is like Compile but panics on malformed grammar. It is
// intended for queries fixed at program construction time.
func MustCompile(q string) *Plan {
	p, err := Compile(q)
	if err != nil {
		panic(err)
	}
	return p
}

func compile(q string) (*Plan, error) {
	toks, err := token.Tokenize(q)
	if err != nil {
		return nil, err
	}
	p := &Plan{src: q}
	i := 0
	if toks[0].Type == token.TIdent && toks[0].Text == "mut" {
		p.Mode = Mutable
		i++
	}
	if i < len(toks) && toks[i].Type == token.TRoot {
		i++
	}
steps:
	for i < len(toks) {
		tok := toks[i]
		switch tok.Type {
		case token.TDot:
			if i+1 >= len(toks) {
				return nil, fmt.Errorf("%w: field expected after '.'", token.ErrUnterminated)
			}
			next := toks[i+1]
			if next.Type != token.TIdent && next.Type != token.TString {
				return nil, fmt.Errorf("%w: %s after '.'", token.ErrUnexpected, next)
			}
			p.Steps = append(p.Steps, Step{Kind: FieldStep, Field: next.Text})
			i += 2
		case token.TExpr:
			prg, err := expr.Compile(tok.Text)
			if err != nil {
				return nil, fmt.Errorf("bad index expression [%s]: %w", tok.Text, err)
			}
			p.Steps = append(p.Steps, Step{Kind: IndexStep, Expr: prg, Src: tok.Text})
			i++
		default:
			break steps
		}
	}
	if len(p.Steps) == 0 {
		return nil, errNoSteps
	}
	if i < len(toks) {
		switch toks[i].Type {
		case token.TArrow:
			if i+1 >= len(toks) || toks[i+1].Type != token.TIdent {
				return nil, fmt.Errorf("%w: shape expected after '->'", token.ErrUnterminated)
			}
			shape, err := ParseShape(toks[i+1].Text)
			if err != nil {
				return nil, err
			}
			p.Finisher = Finisher{Kind: CastFinisher, Shape: shape}
			i += 2
		case token.TShift:
			p.Finisher = Finisher{Kind: DecodeFinisher, Type: toks[i].Text}
			i++
		}
	}
	if i < len(toks) && toks[i].Type == token.TCoalesce {
		if toks[i].Text == "default" {
			p.Coalesce = Coalesce{Kind: DefaultCoalesce}
		} else {
			prg, err := expr.Compile(toks[i].Text)
			if err != nil {
				return nil, fmt.Errorf("bad fallback expression %q: %w", toks[i].Text, err)
			}
			p.Coalesce = Coalesce{Kind: ExprCoalesce, Expr: prg, Src: toks[i].Text}
		}
		i++
	}
	if i != len(toks) {
		return nil, fmt.Errorf("%w: %s", errTrailing, toks[i])
	}
	if p.Mode == Mutable {
		if p.Finisher.Kind == DecodeFinisher {
			return nil, errMutDecode
		}
		if p.Coalesce.Kind != NoCoalesce {
			return nil, errMutCoalesce
		}
		if p.Finisher.Kind == CastFinisher && !p.Finisher.Shape.Mutable() {
			return nil, fmt.Errorf("%w: %s", errMutShape, p.Finisher.Shape)
		}
	}
	return p, nil
}
