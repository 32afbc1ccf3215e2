package lattice

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/latticesim/internal/compute"
)

// refState is a reference integrator that allocates a fresh state every step
// instead of swapping two buffers.
type refState struct {
	pos, vel, acc []float64
}

func refStep(cur refState, rows, cols int, dt, k float64, order UpdateOrder) refState {
	n := len(cur.pos)
	next := refState{pos: make([]float64, n), vel: make([]float64, n), acc: make([]float64, n)}
	for e := range cur.pos {
		next.pos[e] = cur.pos[e] + cur.vel[e]*dt
	}

	src := cur.pos
	if order == PostStep {
		src = next.pos
	}
	at := func(i, j, a int) float64 { return src[2*(i*cols+j)+a] }
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			for a := 0; a < 2; a++ {
				x := at(i, j, a)
				var sum float64
				if i > 0 {
					sum += at(i-1, j, a) - x
				}
				if i < rows-1 {
					sum += at(i+1, j, a) - x
				}
				if j > 0 {
					sum += at(i, j-1, a) - x
				}
				if j < cols-1 {
					sum += at(i, j+1, a) - x
				}
				next.acc[2*(i*cols+j)+a] = sum
			}
		}
	}

	for e := range cur.vel {
		next.vel[e] = cur.vel[e] + (cur.acc[e]+next.acc[e])*dt/2*k
	}
	return next
}

func randomRef(rows, cols int, seed int64) refState {
	rng := rand.New(rand.NewSource(seed))
	n := rows * cols * 2
	r := refState{pos: make([]float64, n), vel: make([]float64, n), acc: make([]float64, n)}
	for e := 0; e < n; e++ {
		r.pos[e] = 0.1 * rng.NormFloat64()
		r.vel[e] = rng.NormFloat64()
	}
	return r
}

func load(s *Simulator[float64], r refState) {
	for i := 0; i < s.Rows(); i++ {
		for j := 0; j < s.Cols(); j++ {
			k := 2 * (i*s.Cols() + j)
			s.SetPosition(i, j, r.pos[k], r.pos[k+1])
			s.SetVelocity(i, j, r.vel[k], r.vel[k+1])
		}
	}
}

func TestBufferSwapMatchesFreshAllocation(t *testing.T) {
	rows, cols := 17, 11
	dt, k := 0.01, 1.3
	steps := 60

	cpu := compute.NewCPUBackend(4)
	defer cpu.Cleanup()

	backends := []compute.Backend{compute.NewSerialBackend(), cpu}
	strategies := []Strategy{RowMajorStrategy, MortonStrategy}
	orders := []UpdateOrder{PreStep, PostStep}

	for _, order := range orders {
		ref := randomRef(rows, cols, 42)
		init := ref
		for n := 0; n < steps; n++ {
			ref = refStep(ref, rows, cols, dt, k, order)
		}

		for _, b := range backends {
			for _, st := range strategies {
				s, err := New[float64](rows, cols, k,
					WithStrategy(st), WithBackend(b), WithUpdateOrder(order), WithChunkSize(8))
				if err != nil {
					t.Fatal(err)
				}
				load(s, init)
				for n := 0; n < steps; n++ {
					s.Advance(dt)
				}

				for i := 0; i < rows; i++ {
					for j := 0; j < cols; j++ {
						e := 2 * (i*cols + j)
						px, py := s.Position(i, j)
						vx, vy := s.Velocity(i, j)
						if px != ref.pos[e] || py != ref.pos[e+1] || vx != ref.vel[e] || vy != ref.vel[e+1] {
							t.Fatalf("%v/%s/%v cell (%d,%d): got pos (%v,%v) vel (%v,%v), want pos (%v,%v) vel (%v,%v)",
								order, b.Name(), st, i, j, px, py, vx, vy, ref.pos[e], ref.pos[e+1], ref.vel[e], ref.vel[e+1])
						}
					}
				}
			}
		}
	}
}

func TestRestStateIsFixedPoint(t *testing.T) {
	s, err := New[float64](5, 7, 2.0, WithBackend(compute.NewSerialBackend()))
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < 500; n++ {
		s.Advance(0.05)
	}
	for _, buf := range [][]float64{s.Positions(), s.Velocities(), s.Accelerations()} {
		for k, v := range buf {
			if v != 0 {
				t.Fatalf("buffer[%d] = %v after rest evolution", k, v)
			}
		}
	}
	if s.Steps() != 500 {
		t.Errorf("Steps = %d, want 500", s.Steps())
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		opts       []Option
		want       error
	}{
		{"zero rows", 0, 3, nil, ErrDimensions},
		{"negative cols", 3, -2, nil, ErrDimensions},
		{"morton overflow", MaxMortonExtent + 1, 1, []Option{WithStrategy(MortonStrategy)}, ErrTableCoverage},
		{"bad order", 2, 2, []Option{WithUpdateOrder(UpdateOrder(5))}, ErrUnknownOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[float64](tt.rows, tt.cols, 1, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFirstAdvancePrimesNext(t *testing.T) {
	s, _ := New[float64](3, 3, 1, WithStrategy(MortonStrategy), WithBackend(compute.NewSerialBackend()))
	s.SetVelocity(1, 1, 1, 0)
	s.Advance(0.1)

	// the unused Morton slots of a 3x3 grid stay zero in both buffers
	used := make(map[int]bool)
	idx := s.Indexer()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			used[idx.Index(i, j, 0)], used[idx.Index(i, j, 1)] = true, true
		}
	}
	for _, st := range s.buf.pair {
		for k := range st.Pos {
			if !used[k] && (st.Pos[k] != 0 || st.Vel[k] != 0 || st.Acc[k] != 0) {
				t.Fatalf("unused slot %d not zero", k)
			}
		}
	}

	x, _ := s.Position(1, 1)
	if math.Abs(x-0.1) > 1e-15 {
		t.Errorf("x = %v after one step, want 0.1", x)
	}
}

func TestSwapKeepsBothSnapshots(t *testing.T) {
	s, _ := New[float64](1, 2, 1, WithBackend(compute.NewSerialBackend()))
	first := s.buf.current()
	s.Advance(0.01)
	if s.buf.current() == first {
		t.Fatal("current snapshot did not change after Advance")
	}
	s.Advance(0.01)
	if s.buf.current() != first {
		t.Fatal("snapshots should alternate every step")
	}
}

func TestCheckShapePanics(t *testing.T) {
	s, _ := New[float64](2, 2, 1, WithBackend(compute.NewSerialBackend()))
	s.buf.pair[1].Vel = s.buf.pair[1].Vel[:3]

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvariant) {
			t.Fatalf("expected ErrInvariant panic, got %v", r)
		}
	}()
	s.Advance(0.1)
}

func TestSyncAcceleration(t *testing.T) {
	s, _ := New[float64](1, 2, 1, WithBackend(compute.NewSerialBackend()))
	s.SetPosition(0, 0, 1, 0)
	s.SyncAcceleration()
	idx := s.Indexer()
	acc := s.Accelerations()
	if acc[idx.Index(0, 0, 0)] != -1 || acc[idx.Index(0, 1, 0)] != 1 {
		t.Errorf("acc = %v", acc)
	}
}

func TestFloat32Simulation(t *testing.T) {
	s, err := New[float32](4, 4, 1, WithBackend(compute.NewSerialBackend()))
	if err != nil {
		t.Fatal(err)
	}
	s.SetVelocity(2, 2, 0.5, -0.5)
	for n := 0; n < 100; n++ {
		s.Step(0.01)
	}

	f := NewFrame(4, 4)
	s.Frame(f)
	var px, py float64
	for k := 0; k < len(f.Vel); k += 2 {
		px += f.Vel[k]
		py += f.Vel[k+1]
	}
	// internal forces cancel, so total momentum is conserved
	if math.Abs(px-0.5) > 1e-4 || math.Abs(py+0.5) > 1e-4 {
		t.Errorf("momentum = (%v, %v), want (0.5, -0.5)", px, py)
	}
	if f.Step != 100 || f.Stiffness != 1 {
		t.Errorf("frame metadata step=%d stiffness=%v", f.Step, f.Stiffness)
	}
}

func TestFrameIsRowMajor(t *testing.T) {
	s, _ := New[float64](3, 5, 1, WithStrategy(MortonStrategy))
	s.SetPosition(2, 3, 7, 8)
	f := NewFrame(3, 5)
	s.Frame(f)
	x, y := f.At(2, 3)
	if x != 7 || y != 8 {
		t.Errorf("At(2,3) = (%v,%v)", x, y)
	}
	if f.Pos[2*(2*5+3)] != 7 {
		t.Error("frame not row-major")
	}
}

func BenchmarkAdvance(b *testing.B) {
	for _, st := range []Strategy{RowMajorStrategy, MortonStrategy} {
		b.Run(st.String(), func(b *testing.B) {
			s, _ := New[float64](128, 128, 1, WithStrategy(st))
			s.SetVelocity(64, 64, 1, 0)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.Advance(1e-5)
			}
		})
	}
}
