package lattice

// accelerate writes the spring acceleration of every cell in rows [r0, r1)
// into acc, reading neighbour positions from pos only:
//
//	acc[i,j,a] = sum over existing neighbours N of (pos[N,a] - pos[i,j,a])
//
// Missing neighbours at the edges contribute nothing, so corner cells have
// degree 2, edge cells 3 and interior cells 4. Neighbours are visited in the
// fixed order up, down, left, right.
func accelerate[T Float](acc, pos []T, idx Indexer, rows, cols, r0, r1 int) {
	for i := r0; i < r1; i++ {
		for j := 0; j < cols; j++ {
			self := idx.Index(i, j, 0)
			up, down, left, right := -1, -1, -1, -1
			if i > 0 {
				up = idx.Index(i-1, j, 0)
			}
			if i < rows-1 {
				down = idx.Index(i+1, j, 0)
			}
			if j > 0 {
				left = idx.Index(i, j-1, 0)
			}
			if j < cols-1 {
				right = idx.Index(i, j+1, 0)
			}

			for a := 0; a < Axes; a++ {
				x := pos[self+a]
				var sum T
				if up >= 0 {
					sum += pos[up+a] - x
				}
				if down >= 0 {
					sum += pos[down+a] - x
				}
				if left >= 0 {
					sum += pos[left+a] - x
				}
				if right >= 0 {
					sum += pos[right+a] - x
				}
				acc[self+a] = sum
			}
		}
	}
}

// degree is the number of springs attached to cell (i, j).
func degree(i, j, rows, cols int) int {
	d := 0
	if i > 0 {
		d++
	}
	if i < rows-1 {
		d++
	}
	if j > 0 {
		d++
	}
	if j < cols-1 {
		d++
	}
	return d
}
