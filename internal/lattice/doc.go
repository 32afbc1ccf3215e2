// Package lattice implements a 2-D mass-spring lattice: point masses on a
// rows x cols grid, each tied to its up/down/left/right neighbours by
// identical unit springs, with free (open) boundaries.
//
// The package is built from four pieces:
//
//   - [Indexer]: maps (row, col, axis) to a flat buffer offset, either
//     row-major or bit-interleaved ([Morton]) for locality
//   - [State]: position, velocity and acceleration buffers for all cells
//   - the acceleration kernel: per-existing-neighbour spring coupling
//   - [Simulator]: a double-buffered leapfrog-style integrator
//
// # Example
//
//	s, err := lattice.New[float64](128, 128, 1.0, lattice.WithStrategy(lattice.MortonStrategy))
//	if err != nil {
//	    return err
//	}
//	s.SetVelocity(64, 64, 0.5, 0)
//	for i := 0; i < 1000; i++ {
//	    s.Advance(1e-3)
//	}
//
// # Stability
//
// Advance does not clamp dt and does not detect divergence. Choosing dt small
// relative to 1/sqrt(8*stiffness) is the caller's job.
//
// # Thread Safety
//
// A Simulator is not safe for concurrent use. Advance itself fans each phase
// out over a [compute.Backend], reading only from the current snapshot and
// writing only to the next one.
package lattice
