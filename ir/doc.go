// Package ir provides the reference tree representation queried by
// treeq: a recursive tagged-union Node covering null, bool, number,
// string, array and object values.
//
// Nodes maintain parent backlinks, so any node can report its position
// in the tree via Path. The structural constraint on objects is that
// Fields[i] names the value at Values[i]; the two slices always have
// the same length. Objects built with FromMap or FromAny keep their
// fields sorted by name; SetField appends new fields at the end.
//
// Construct nodes from Go values:
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("svc"),
//	    "port": ir.FromInt(8080),
//	})
//
// or from arbitrary decoded data with FromAny. Node implements every
// treeq capability, so trees built here support immutable and mutable
// queries, shape casts and structured decoding:
//
//	port, ok := treeq.Get[int64](treeq.MustCompile(".port"), node)
//
// Nodes are not safe for concurrent mutation; clone per goroutine if
// needed.
package ir
