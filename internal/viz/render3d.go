package viz

import (
	"math"
	"sort"

	"github.com/san-kum/latticesim/internal/lattice"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Position         Vec3
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera looks at the origin from +Z, tilted so a flat surface in the
// XZ plane is seen from above.
func NewCamera() *Camera {
	return &Camera{Position: Vec3{0, 0, 5}, Near: 0.1, RotX: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts 3D world coordinates to 2D screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
	Color      rune
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                 { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, c rune) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p Vec3, c rune)   { w.Edges = append(w.Edges, Edge{p, p, c}) }
func (w *Wireframe) Clear()                    { w.Edges = w.Edges[:0] }

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Color          rune
	Visible        bool
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color, true})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.Set(e.X1, e.Y1)
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		}
	}
}

// SurfaceWireframe lifts the grid into 3D with one displacement component
// as height. The grid spans [-1, 1] on its longer side.
func SurfaceWireframe(f *lattice.Frame, axis int, gain float64) *Wireframe {
	w := NewWireframe()
	if f == nil || f.Rows == 0 || f.Cols == 0 {
		return w
	}
	side := float64(max(f.Rows, f.Cols) - 1)
	if side == 0 {
		side = 1
	}
	at := func(i, j int) Vec3 {
		h := f.Pos[lattice.Axes*(i*f.Cols+j)+axis]
		return Vec3{
			X: 2*float64(j)/side - float64(f.Cols-1)/side,
			Y: gain * h,
			Z: 2*float64(i)/side - float64(f.Rows-1)/side,
		}
	}
	for i := 0; i < f.Rows; i++ {
		for j := 0; j < f.Cols; j++ {
			p := at(i, j)
			if f.Rows == 1 && f.Cols == 1 {
				w.AddPoint(p, '•')
			}
			if j+1 < f.Cols {
				w.AddEdge(p, at(i, j+1), '─')
			}
			if i+1 < f.Rows {
				w.AddEdge(p, at(i+1, j), '│')
			}
		}
	}
	return w
}
