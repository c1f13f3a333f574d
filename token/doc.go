// Package token tokenizes treeq query expressions.
//
// The grammar surface is
//
//	query    := "mut"? "$"? accessor+ finisher? coalesce?
//	accessor := "." field | "[" expr "]"
//	finisher := "->" shape | ">>" "(" typename ")"
//	coalesce := "??" ("default" | expr)
//
// Bracket and paren contents are captured as raw source text; they are
// compiled by the treeq package, not here.
package token
