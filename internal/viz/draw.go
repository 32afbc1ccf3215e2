package viz

import (
	"math"

	"github.com/san-kum/latticesim/internal/lattice"
)

// DrawLattice draws the deformed grid on c: one node per cell joined by its
// right and down springs. Displacements are multiplied by gain in units of
// the rest spacing.
func DrawLattice(c *Canvas, f *lattice.Frame, gain float64) {
	if f == nil || f.Rows == 0 || f.Cols == 0 {
		return
	}
	pw, ph := c.Width*2, c.Height*4
	const margin = 2

	spanX := float64(pw - 1 - 2*margin)
	spanY := float64(ph - 1 - 2*margin)
	sx, sy := spanX, spanY
	ox, oy := float64(margin), float64(margin)
	if f.Cols > 1 {
		sx = spanX / float64(f.Cols-1)
	} else {
		ox += spanX / 2
	}
	if f.Rows > 1 {
		sy = spanY / float64(f.Rows-1)
	} else {
		oy += spanY / 2
	}

	at := func(i, j int) (int, int) {
		x, y := f.At(i, j)
		px := ox + (float64(j)+gain*x)*sx
		py := oy + (float64(i)+gain*y)*sy
		return int(math.Round(px)), int(math.Round(py))
	}

	for i := 0; i < f.Rows; i++ {
		for j := 0; j < f.Cols; j++ {
			x0, y0 := at(i, j)
			c.Set(x0, y0)
			if j+1 < f.Cols {
				x1, y1 := at(i, j+1)
				c.DrawLine(x0, y0, x1, y1)
			}
			if i+1 < f.Rows {
				x1, y1 := at(i+1, j)
				c.DrawLine(x0, y0, x1, y1)
			}
		}
	}
}
