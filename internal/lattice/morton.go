package lattice

import "fmt"

// MaxMortonExtent is the largest coordinate count a MortonTable can cover:
// coordinates are spread from 16 bits into 32.
const MaxMortonExtent = 1 << 16

// MaxMortonSparsity bounds how many times larger than the dense
// rows*cols*Axes layout a Morton buffer may grow. Grids under
// mortonSlack elements are always accepted.
const MaxMortonSparsity = 8

const mortonSlack = 1 << 12

// spreadByte maps every byte to its bits spread onto the even positions of a
// 16-bit word: b7..b0 -> 0b7 0b6 ... 0b0.
func spreadByte() [256]uint16 {
	var lut [256]uint16
	for b := 0; b < 256; b++ {
		var code uint16
		for k := 0; k < 8; k++ {
			if b&(1<<k) != 0 {
				code |= 1 << (2 * k)
			}
		}
		lut[b] = code
	}
	return lut
}

// MortonTable holds the bit-spread code of every coordinate in [0, n).
// It is filled once by NewMortonTable and only read afterwards, so a single
// table may be shared by any number of goroutines.
type MortonTable struct {
	codes []uint64
}

func NewMortonTable(n int) (*MortonTable, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: table size %d", ErrDimensions, n)
	}
	if n > MaxMortonExtent {
		return nil, fmt.Errorf("%w: need %d entries, max %d", ErrTableCoverage, n, MaxMortonExtent)
	}

	lut := spreadByte()
	codes := make([]uint64, n)
	for c := 0; c < n; c++ {
		codes[c] = uint64(lut[c&0xff]) | uint64(lut[(c>>8)&0xff])<<16
	}
	return &MortonTable{codes: codes}, nil
}

// Size is the number of coordinates covered.
func (t *MortonTable) Size() int { return len(t.codes) }

// Code returns the spread code for coordinate c.
func (t *MortonTable) Code(c int) uint64 { return t.codes[c] }

// spread places the low 32 bits of c on the even bit positions.
func spread(c int) uint64 {
	x := uint64(c) & 0xFFFFFFFF
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}

// MortonLen is the buffer length a Morton layout of rows x cols needs.
// Codes are monotone in each coordinate, so the last cell holds the largest
// offset.
func MortonLen(rows, cols int) int {
	return int(spread(rows-1)<<2|spread(cols-1)<<1|uint64(Axes-1)) + 1
}

// CheckMortonSparsity reports ErrSparseLayout when a rows x cols Morton
// layout would waste more than MaxMortonSparsity times the dense size.
func CheckMortonSparsity(rows, cols int) error {
	dense := rows * cols * Axes
	n := MortonLen(rows, cols)
	if n > mortonSlack && n > MaxMortonSparsity*dense {
		return fmt.Errorf("%w: %dx%d needs %d elements for %d values", ErrSparseLayout, rows, cols, n, dense)
	}
	return nil
}

// compact is the inverse of the spread: it gathers the even bits of x.
func compact(x uint64) int {
	x &= 0x5555555555555555
	x = (x | x>>1) & 0x3333333333333333
	x = (x | x>>2) & 0x0F0F0F0F0F0F0F0F
	x = (x | x>>4) & 0x00FF00FF00FF00FF
	x = (x | x>>8) & 0x0000FFFF0000FFFF
	x = (x | x>>16) & 0x00000000FFFFFFFF
	return int(x)
}

// Morton interleaves row and column bits so that cells close in 2-D stay
// close in memory: offset = code(i)<<2 | code(j)<<1 | axis.
//
// For grids whose sides are not equal powers of two the offsets are sparse;
// Len covers the largest one and the gaps are never addressed. Long narrow
// grids are rejected with ErrSparseLayout.
type Morton struct {
	table      *MortonTable
	rows, cols int
	length     int
}

func NewMorton(table *MortonTable, rows, cols int) (*Morton, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrDimensions, rows, cols)
	}
	if table == nil || table.Size() < max(rows, cols) {
		size := 0
		if table != nil {
			size = table.Size()
		}
		return nil, fmt.Errorf("%w: table covers %d, grid needs %d", ErrTableCoverage, size, max(rows, cols))
	}
	if err := CheckMortonSparsity(rows, cols); err != nil {
		return nil, err
	}
	return &Morton{table: table, rows: rows, cols: cols, length: MortonLen(rows, cols)}, nil
}

func (m *Morton) Index(i, j, axis int) int {
	return int(m.table.codes[i]<<2 | m.table.codes[j]<<1 | uint64(axis))
}

func (m *Morton) Deindex(offset int) (int, int) {
	v := uint64(offset) >> 1
	return compact(v >> 1), compact(v)
}

func (m *Morton) Len() int     { return m.length }
func (m *Morton) Name() string { return MortonStrategy.String() }
