package lattice

// doubleBuffer owns the two snapshots of a simulation. Which one is current
// is a single bit, so swapping roles never moves data and never leaves the
// pair half-exchanged.
type doubleBuffer[T Float] struct {
	pair   [2]*State[T]
	cur    int
	primed bool
}

func newDoubleBuffer[T Float](rows, cols, length int) doubleBuffer[T] {
	return doubleBuffer[T]{
		pair: [2]*State[T]{
			newState[T](rows, cols, length),
			newState[T](rows, cols, length),
		},
	}
}

func (b *doubleBuffer[T]) current() *State[T] { return b.pair[b.cur] }
func (b *doubleBuffer[T]) next() *State[T]    { return b.pair[b.cur^1] }

func (b *doubleBuffer[T]) swap() { b.cur ^= 1 }

// prime makes next an exact copy of current before the first step so that
// slots a step never writes are still well defined.
func (b *doubleBuffer[T]) prime() {
	if b.primed {
		return
	}
	b.current().CopyTo(b.next())
	b.primed = true
}
