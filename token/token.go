package token

import "fmt"

type Type int

const (
	TIdent Type = iota
	TString
	TDot
	TRoot
	TExpr
	TArrow
	TShift
	TCoalesce
)

func (t Type) String() string {
	s, ok := map[Type]string{
		TIdent:    "Ident",
		TString:   "String",
		TDot:      "Dot",
		TRoot:     "Root",
		TExpr:     "Expr",
		TArrow:    "Arrow",
		TShift:    "Shift",
		TCoalesce: "Coalesce",
	}[t]
	if ok {
		return s
	}
	return "<unknown token>"
}

// Token is one lexical element of a query. Text holds the ident or
// unquoted field name for TIdent/TString, the raw inner source for
// TExpr, the type name for TShift, and the trailing fallback source
// for TCoalesce.
type Token struct {
	Type Type
	Text string
	Off  int
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Text)
}
