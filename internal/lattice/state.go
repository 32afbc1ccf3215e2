package lattice

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Float is the scalar type of every buffer in a simulation.
type Float interface {
	constraints.Float
}

// State is one snapshot of the lattice. The three buffers are always the same
// length and are addressed through the same Indexer.
type State[T Float] struct {
	Rows, Cols int
	Pos        []T
	Vel        []T
	Acc        []T
}

func newState[T Float](rows, cols, length int) *State[T] {
	return &State[T]{
		Rows: rows,
		Cols: cols,
		Pos:  make([]T, length),
		Vel:  make([]T, length),
		Acc:  make([]T, length),
	}
}

// CopyTo overwrites dst with the contents of s. Both must share a shape.
func (s *State[T]) CopyTo(dst *State[T]) {
	copy(dst.Pos, s.Pos)
	copy(dst.Vel, s.Vel)
	copy(dst.Acc, s.Acc)
}

// checkShape panics if the buffers no longer agree. It guards Advance against
// running on a state it could only half update.
func (s *State[T]) checkShape(length int) {
	if len(s.Pos) != length || len(s.Vel) != length || len(s.Acc) != length {
		panic(fmt.Errorf("%w: buffer lengths pos=%d vel=%d acc=%d, want %d",
			ErrInvariant, len(s.Pos), len(s.Vel), len(s.Acc), length))
	}
}
