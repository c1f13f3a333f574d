// Package treeq compiles and evaluates query expressions over
// tree-shaped values.
//
// A query is a chain of field and index accesses with an optional
// terminal cast or deserialization and an optional fallback:
//
//	plan := treeq.MustCompile(".package.name -> str")
//	name, ok := treeq.Get[string](plan, doc)
//
//	plan = treeq.MustCompile(`.dependencies[dep].version -> str`)
//	v, err := treeq.GetStrict[string](plan, doc, treeq.WithEnv(treeq.Env{"dep": "paste"}))
//
// Bracket contents are expressions evaluated at query time against the
// environment passed via WithEnv, so keys and indices may be computed
// dynamically. Queries are compiled once into a Plan, which is
// immutable and reusable.
//
// The evaluator is polymorphic over any value implementing the Value
// capability; the bundled ir package provides a ready-made tree node
// type with all optional capabilities (mutable lookup, shape casts,
// structured decoding).
package treeq
