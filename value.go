package treeq

// Value is the minimum capability a tree node must offer to be
// queried: keyed lookup of a child node. The remaining capabilities
// are optional; each unlocks a query feature when implemented.
type Value interface {
	Lookup(Key) (Value, bool)
}

// MutLookuper unlocks mut queries. LookupMut returns a child aliasing
// the tree so the caller can modify it in place.
type MutLookuper interface {
	LookupMut(Key) (Value, bool)
}

// Shaper unlocks the -> cast finisher.
type Shaper interface {
	AsShape(Shape) (any, bool)
}

// MutShaper unlocks -> casts in mut queries; the returned container
// aliases the tree.
type MutShaper interface {
	AsShapeMut(Shape) (any, bool)
}

// Decoder unlocks the >> deserialization finisher: a full structured
// decode of the node into an arbitrary destination.
type Decoder interface {
	Decode(dst any) error
}
