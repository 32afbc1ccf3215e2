package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/latticesim/internal/lattice"
)

func TestLiveRendererDrawsPeak(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0)

	f := lattice.NewFrame(3, 5)
	f.Pos[lattice.Axes*(1*5+2)] = 0.2
	r.OnStep(f, 1.5)

	out := buf.String()
	if !strings.Contains(out, "lattice 3x5") || !strings.Contains(out, "t=1.50") {
		t.Errorf("missing header: %q", out)
	}
	lines := strings.Split(out, "\n")
	// header, rule, three rows
	if row := lines[3]; row != "    @  " {
		t.Errorf("middle row = %q", row)
	}
	if r.Frames() != 1 {
		t.Errorf("frames = %d", r.Frames())
	}
}

func TestLiveRendererThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 1)
	f := lattice.NewFrame(2, 2)
	for i := 0; i < 5; i++ {
		r.OnStep(f, float64(i))
	}
	if r.Frames() != 1 {
		t.Errorf("expected one frame within a second, got %d", r.Frames())
	}
}

func TestLiveRendererCursor(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0)
	r.Start()
	r.Stop()
	if buf.String() != hideCursor+showCursor {
		t.Errorf("got %q", buf.String())
	}
}
