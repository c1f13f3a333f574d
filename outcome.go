package treeq

// Outcome is the raw result of evaluating a plan: either the resolved
// node (plus the cast value when a -> finisher ran) or exactly one
// structured failure. It is immutable after construction.
type Outcome struct {
	node Value
	val  any
	cast bool
	err  error
}

func (o Outcome) Found() bool {
	return o.err == nil
}

func (o Outcome) Err() error {
	return o.err
}

// Node returns the resolved node, nil on failure.
func (o Outcome) Node() Value {
	return o.node
}

// Val returns the cast value when a cast finisher ran, otherwise the
// resolved node itself.
func (o Outcome) Val() any {
	if o.err != nil {
		return nil
	}
	if o.cast {
		return o.val
	}
	return o.node
}
