package lattice

import (
	"errors"
	"testing"
)

func TestIndexBijection(t *testing.T) {
	shapes := [][2]int{{1, 1}, {1, 2}, {2, 1}, {3, 5}, {8, 8}, {7, 16}, {33, 9}}
	strategies := []Strategy{RowMajorStrategy, MortonStrategy}

	for _, st := range strategies {
		for _, sh := range shapes {
			rows, cols := sh[0], sh[1]
			idx, err := NewIndexer(st, rows, cols)
			if err != nil {
				t.Fatalf("%v %dx%d: %v", st, rows, cols, err)
			}

			seen := make(map[int]bool)
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					for a := 0; a < Axes; a++ {
						k := idx.Index(i, j, a)
						if k < 0 || k >= idx.Len() {
							t.Fatalf("%v %dx%d: offset %d out of [0,%d)", st, rows, cols, k, idx.Len())
						}
						if seen[k] {
							t.Fatalf("%v %dx%d: duplicate offset %d", st, rows, cols, k)
						}
						seen[k] = true

						gi, gj := idx.Deindex(k)
						if gi != i || gj != j {
							t.Errorf("%v: Deindex(Index(%d,%d,%d)) = (%d,%d)", st, i, j, a, gi, gj)
						}
						if k-idx.Index(i, j, 0) != a {
							t.Errorf("%v: axis not recoverable at (%d,%d,%d)", st, i, j, a)
						}
					}
				}
			}
		}
	}
}

func TestRowMajorLayout(t *testing.T) {
	idx := RowMajor{rows: 3, cols: 4}
	if got := idx.Index(2, 1, 1); got != 2*(2*4+1)+1 {
		t.Errorf("Index(2,1,1) = %d", got)
	}
	if idx.Len() != 24 {
		t.Errorf("Len = %d, want 24", idx.Len())
	}
}

func TestMortonLayout(t *testing.T) {
	table, err := NewMortonTable(4)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMorton(table, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		i, j, axis int
		want       int
	}{
		{0, 0, 0, 0},
		{0, 0, 1, 1},
		{0, 1, 0, 2},
		{1, 0, 0, 4},
		{1, 1, 1, 7},
		{2, 0, 0, 16},
		{3, 3, 1, 31},
	}
	for _, tt := range tests {
		if got := m.Index(tt.i, tt.j, tt.axis); got != tt.want {
			t.Errorf("Index(%d,%d,%d) = %d, want %d", tt.i, tt.j, tt.axis, got, tt.want)
		}
	}
	if m.Len() != 32 {
		t.Errorf("Len = %d, want 32 for a dense 4x4", m.Len())
	}
}

func TestMortonTableCodes(t *testing.T) {
	table, err := NewMortonTable(1 << 10)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		c    int
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
		{0xff, 0x5555},
		{0x100, 0x10000},
		{0x3ff, 0x55555},
	}
	for _, tt := range tests {
		if got := table.Code(tt.c); got != tt.want {
			t.Errorf("Code(%#x) = %#x, want %#x", tt.c, got, tt.want)
		}
		if sp := spread(tt.c); sp != tt.want {
			t.Errorf("spread(%#x) = %#x, want %#x", tt.c, sp, tt.want)
		}
		if back := compact(table.Code(tt.c)); back != tt.c {
			t.Errorf("compact(Code(%#x)) = %#x", tt.c, back)
		}
	}
}

func TestIndexerErrors(t *testing.T) {
	tests := []struct {
		name       string
		strategy   Strategy
		rows, cols int
		want       error
	}{
		{"zero rows", RowMajorStrategy, 0, 4, ErrDimensions},
		{"negative cols", MortonStrategy, 4, -1, ErrDimensions},
		{"morton too wide", MortonStrategy, 1, MaxMortonExtent + 1, ErrTableCoverage},
		{"morton too narrow", MortonStrategy, 1, 4096, ErrSparseLayout},
		{"unknown strategy", Strategy(9), 2, 2, ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndexer(tt.strategy, tt.rows, tt.cols)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	small, _ := NewMortonTable(4)
	if _, err := NewMorton(small, 8, 2); !errors.Is(err, ErrTableCoverage) {
		t.Errorf("undersized table: got %v", err)
	}
}

func TestMortonSparsity(t *testing.T) {
	tests := []struct {
		rows, cols int
		wantLen    int
		sparse     bool
	}{
		{4, 4, 32, false},
		{3, 3, 26, false},
		{33, 9, 4226, false},
		{17, 1, 1026, false},
		{256, 256, 131072, false},
		{257, 257, 393218, false},
		{1, 4096, 11184812, true},
		{2, 16384, 178956976, true},
		{1, 65536, 2863311532, true},
		{65536, 1, 5726623062, true},
	}
	for _, tt := range tests {
		if got := MortonLen(tt.rows, tt.cols); got != tt.wantLen {
			t.Errorf("MortonLen(%d,%d) = %d, want %d", tt.rows, tt.cols, got, tt.wantLen)
		}
		err := CheckMortonSparsity(tt.rows, tt.cols)
		if tt.sparse != errors.Is(err, ErrSparseLayout) {
			t.Errorf("%dx%d: sparse=%v, got %v", tt.rows, tt.cols, tt.sparse, err)
		}
		_, err = NewIndexer(MortonStrategy, tt.rows, tt.cols)
		if tt.sparse != errors.Is(err, ErrSparseLayout) {
			t.Errorf("NewIndexer %dx%d: sparse=%v, got %v", tt.rows, tt.cols, tt.sparse, err)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]Strategy{"rowmajor": RowMajorStrategy, "": RowMajorStrategy, "Morton": MortonStrategy} {
		got, err := ParseStrategy(name)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseStrategy("hilbert"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}
