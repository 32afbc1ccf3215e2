package lattice

import (
	"fmt"
	"strings"
)

// Axes is the number of spatial components stored per cell.
const Axes = 2

// Indexer maps a (row, col, axis) triple to a storage offset and back.
// Implementations are immutable and safe for concurrent use.
type Indexer interface {
	Index(i, j, axis int) int
	Deindex(offset int) (i, j int)
	// Len is the buffer length needed to hold every offset Index can return.
	Len() int
	Name() string
}

// Strategy selects an Indexer implementation.
type Strategy int

const (
	RowMajorStrategy Strategy = iota
	MortonStrategy
)

func (s Strategy) String() string {
	switch s {
	case RowMajorStrategy:
		return "rowmajor"
	case MortonStrategy:
		return "morton"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", "rowmajor", "row-major", "row_major":
		return RowMajorStrategy, nil
	case "morton", "zorder", "interleaved":
		return MortonStrategy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// NewIndexer builds the indexer for a rows x cols grid.
func NewIndexer(s Strategy, rows, cols int) (Indexer, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrDimensions, rows, cols)
	}
	switch s {
	case RowMajorStrategy:
		return RowMajor{rows: rows, cols: cols}, nil
	case MortonStrategy:
		table, err := NewMortonTable(max(rows, cols))
		if err != nil {
			return nil, err
		}
		return NewMorton(table, rows, cols)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}

// RowMajor stores cells row by row with the two axes interleaved.
type RowMajor struct {
	rows, cols int
}

func (r RowMajor) Index(i, j, axis int) int { return Axes*(i*r.cols+j) + axis }

func (r RowMajor) Deindex(offset int) (int, int) {
	cell := offset / Axes
	return cell / r.cols, cell % r.cols
}

func (r RowMajor) Len() int     { return r.rows * r.cols * Axes }
func (r RowMajor) Name() string { return RowMajorStrategy.String() }
