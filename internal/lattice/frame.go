package lattice

// Frame is a float64 copy of a snapshot laid out row-major regardless of the
// simulator's index strategy: cell (i, j) axis a lives at 2*(i*Cols+j)+a.
type Frame struct {
	Rows, Cols int
	Stiffness  float64
	Step       int
	Pos        []float64
	Vel        []float64
}

// NewFrame allocates a frame for a rows x cols grid.
func NewFrame(rows, cols int) *Frame {
	n := rows * cols * Axes
	return &Frame{Rows: rows, Cols: cols, Pos: make([]float64, n), Vel: make([]float64, n)}
}

func (f *Frame) At(i, j int) (x, y float64) {
	k := Axes * (i*f.Cols + j)
	return f.Pos[k], f.Pos[k+1]
}

// Frame copies the current snapshot into dst, resizing it if needed.
func (s *Simulator[T]) Frame(dst *Frame) {
	n := s.rows * s.cols * Axes
	if len(dst.Pos) != n {
		dst.Pos = make([]float64, n)
		dst.Vel = make([]float64, n)
	}
	dst.Rows, dst.Cols = s.rows, s.cols
	dst.Stiffness = float64(s.stiffness)
	dst.Step = s.steps

	cur := s.buf.current()
	out := 0
	for i := 0; i < s.rows; i++ {
		for j := 0; j < s.cols; j++ {
			k := s.idx.Index(i, j, 0)
			for a := 0; a < Axes; a++ {
				dst.Pos[out] = float64(cur.Pos[k+a])
				dst.Vel[out] = float64(cur.Vel[k+a])
				out++
			}
		}
	}
}
