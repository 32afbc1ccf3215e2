package lattice

import "errors"

var (
	// ErrDimensions indicates a non-positive row or column count.
	ErrDimensions = errors.New("lattice: rows and cols must be positive")

	// ErrTableCoverage indicates the Morton table cannot cover the grid extent.
	ErrTableCoverage = errors.New("lattice: morton table does not cover grid extent")

	// ErrSparseLayout indicates a Morton layout would be mostly unused gaps.
	ErrSparseLayout = errors.New("lattice: morton layout too sparse for grid shape")

	// ErrInvariant indicates an internal buffer invariant was broken.
	ErrInvariant = errors.New("lattice: internal invariant violated")

	ErrUnknownStrategy = errors.New("lattice: unknown index strategy")
	ErrUnknownOrder    = errors.New("lattice: unknown update order")
)
