package gosave

// Discipline decides what happens when serializing a child value fails.
// The set of disciplines is closed: ShortCircuit and Persist. Conversions
// into trees of any payload type use an internal pass-through discipline.
type Discipline[E any] interface {
	// Handle receives the outcome of serializing one value and returns the
	// outcome its parent should see.
	Handle(n Node[E], err error) (Node[E], error)
	discipline()
}

// ShortCircuit propagates failures unchanged, aborting the traversal.
type ShortCircuit struct{}

// Persist never fails: a failure becomes an ErrorNode in place and the
// traversal continues.
type Persist struct{}

// propagate behaves like ShortCircuit for any payload type.
type propagate[E any] struct{}

var (
	_ Discipline[Infallible] = ShortCircuit{}
	_ Discipline[*Error]     = Persist{}
	_ Discipline[*Error]     = propagate[*Error]{}
)

func (ShortCircuit) Handle(n Node[Infallible], err error) (Node[Infallible], error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (Persist) Handle(n Node[*Error], err error) (Node[*Error], error) {
	if err != nil {
		return ErrorNode[*Error]{Err: asError(err)}, nil
	}
	return n, nil
}

func (propagate[E]) Handle(n Node[E], err error) (Node[E], error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (ShortCircuit) discipline() {}
func (Persist) discipline()      {}
func (propagate[E]) discipline() {}
