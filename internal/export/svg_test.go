package export

import (
	"strings"
	"testing"

	"github.com/san-kum/latticesim/internal/lattice"
	"github.com/san-kum/latticesim/internal/viz"
)

func TestFrameToSVG(t *testing.T) {
	f := lattice.NewFrame(2, 3)
	f.Pos[lattice.Axes*(1*3+1)] = 0.5

	svg := FrameToSVG(f, 20, 0)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("not an svg document")
	}
	// 2*2 horizontal + 3*1 vertical springs, one dot per cell
	if n := strings.Count(svg, "<line"); n != 7 {
		t.Errorf("lines = %d, want 7", n)
	}
	if n := strings.Count(svg, "<circle"); n != 6 {
		t.Errorf("circles = %d, want 6", n)
	}
	// the displaced cell gets the hottest color, pushed 0.4 spacings right
	if !strings.Contains(svg, `cx="48.00" cy="40.00" r="4.00" fill="`+heat(1)+`"`) {
		t.Errorf("displaced cell not found in\n%s", svg)
	}
	if FrameToSVG(nil, 10, 1) != "" {
		t.Error("expected empty output for nil frame")
	}
}

func TestHeatRamp(t *testing.T) {
	if heat(0) != "#0000ff" || heat(1) != "#ff0000" {
		t.Errorf("ramp ends: %s %s", heat(0), heat(1))
	}
	if heat(2) != heat(1) || heat(-1) != heat(0) {
		t.Error("levels outside [0,1] are not clamped")
	}
	if mid := heat(0.5); len(mid) != 7 || mid == heat(0) || mid == heat(1) {
		t.Errorf("midpoint color %q", mid)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 10)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if !strings.Contains(svg, `cx="35.0" cy="35.0"`) {
		t.Errorf("missing dot at (3,3):\n%s", svg)
	}
}

func TestTraceToSVG(t *testing.T) {
	svg := TraceToSVG([]float64{0, 1, 2}, []float64{0, 1, 0}, 100, 50, "#00ff00")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected two segments:\n%s", svg)
	}
	if TraceToSVG([]float64{0}, []float64{1}, 10, 10, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
}
