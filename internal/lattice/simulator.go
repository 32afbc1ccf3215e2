package lattice

import (
	"fmt"

	"github.com/san-kum/latticesim/internal/compute"
)

// Simulator advances a spring lattice with a fixed update order:
//
//  1. next.Pos = cur.Pos + cur.Vel*dt
//  2. next.Acc = A(cur.Pos)           (A(next.Pos) with PostStep)
//  3. next.Vel = cur.Vel + (cur.Acc+next.Acc)*dt/2*stiffness
//  4. swap current and next
//
// Each phase is a separate ParallelFor call on the backend, so every write of
// one phase is visible before the next phase starts.
type Simulator[T Float] struct {
	rows, cols int
	stiffness  T
	idx        Indexer
	buf        doubleBuffer[T]
	backend    compute.Backend
	order      UpdateOrder
	chunk      int
	steps      int
}

// New builds a rows x cols simulator with all state zeroed.
func New[T Float](rows, cols int, stiffness T, opts ...Option) (*Simulator[T], error) {
	o := options{strategy: RowMajorStrategy, order: PreStep, chunk: defaultChunk}
	for _, opt := range opts {
		opt(&o)
	}
	if o.order != PreStep && o.order != PostStep {
		return nil, fmt.Errorf("%w: %v", ErrUnknownOrder, o.order)
	}

	idx, err := NewIndexer(o.strategy, rows, cols)
	if err != nil {
		return nil, err
	}
	if o.backend == nil {
		o.backend = compute.GetBackend()
	}

	return &Simulator[T]{
		rows:      rows,
		cols:      cols,
		stiffness: stiffness,
		idx:       idx,
		buf:       newDoubleBuffer[T](rows, cols, idx.Len()),
		backend:   o.backend,
		order:     o.order,
		chunk:     o.chunk,
	}, nil
}

func (s *Simulator[T]) Rows() int                { return s.rows }
func (s *Simulator[T]) Cols() int                { return s.cols }
func (s *Simulator[T]) Indexer() Indexer         { return s.idx }
func (s *Simulator[T]) Order() UpdateOrder       { return s.order }
func (s *Simulator[T]) Backend() compute.Backend { return s.backend }

// Steps is the number of completed Advance calls.
func (s *Simulator[T]) Steps() int { return s.steps }

func (s *Simulator[T]) Stiffness() float64 { return float64(s.stiffness) }

// Positions returns the current position buffer, addressed through Indexer.
// The slice is only valid until the next Advance, which swaps buffers.
func (s *Simulator[T]) Positions() []T { return s.buf.current().Pos }

// Velocities returns the current velocity buffer; see Positions.
func (s *Simulator[T]) Velocities() []T { return s.buf.current().Vel }

// Accelerations returns the acceleration stored with the current snapshot.
func (s *Simulator[T]) Accelerations() []T { return s.buf.current().Acc }

func (s *Simulator[T]) Position(i, j int) (x, y T) {
	k := s.idx.Index(i, j, 0)
	p := s.buf.current().Pos
	return p[k], p[k+1]
}

func (s *Simulator[T]) Velocity(i, j int) (x, y T) {
	k := s.idx.Index(i, j, 0)
	v := s.buf.current().Vel
	return v[k], v[k+1]
}

func (s *Simulator[T]) SetPosition(i, j int, x, y T) {
	k := s.idx.Index(i, j, 0)
	p := s.buf.current().Pos
	p[k], p[k+1] = x, y
}

func (s *Simulator[T]) SetVelocity(i, j int, x, y T) {
	k := s.idx.Index(i, j, 0)
	v := s.buf.current().Vel
	v[k], v[k+1] = x, y
}

// SyncAcceleration recomputes the current acceleration from the current
// positions. A fresh simulator starts with zero acceleration; callers that
// seed non-zero positions can use this so the first velocity update sees a
// consistent field.
func (s *Simulator[T]) SyncAcceleration() {
	cur := s.buf.current()
	s.computeAcceleration(cur.Acc, cur.Pos)
}

// Advance performs one integration step. dt is used as given.
func (s *Simulator[T]) Advance(dt T) {
	n := s.idx.Len()
	s.buf.prime()
	cur, next := s.buf.current(), s.buf.next()
	cur.checkShape(n)
	next.checkShape(n)

	s.backend.ParallelFor(n, s.chunk, func(start, end int) {
		np, cp, cv := next.Pos[start:end], cur.Pos[start:end], cur.Vel[start:end]
		for k := range np {
			np[k] = cp[k] + cv[k]*dt
		}
	})

	src := cur.Pos
	if s.order == PostStep {
		src = next.Pos
	}
	s.computeAcceleration(next.Acc, src)

	k := s.stiffness
	s.backend.ParallelFor(n, s.chunk, func(start, end int) {
		nv, cv := next.Vel[start:end], cur.Vel[start:end]
		ca, na := cur.Acc[start:end], next.Acc[start:end]
		for e := range nv {
			nv[e] = cv[e] + (ca[e]+na[e])*dt/2*k
		}
	})

	s.buf.swap()
	s.steps++
}

// Step is Advance for callers that work in float64.
func (s *Simulator[T]) Step(dt float64) { s.Advance(T(dt)) }

func (s *Simulator[T]) computeAcceleration(dst, pos []T) {
	rowChunk := s.chunk / (s.cols * Axes)
	if rowChunk < 1 {
		rowChunk = 1
	}
	s.backend.ParallelFor(s.rows, rowChunk, func(r0, r1 int) {
		accelerate(dst, pos, s.idx, s.rows, s.cols, r0, r1)
	})
}
