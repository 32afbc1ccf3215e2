// Package compute provides the data-parallel loop backends used by the
// lattice kernel.
//
//   - CPU: a persistent goroutine pool, one worker per core by default
//   - Serial: runs every range inline, useful for reproducibility checks
//
// Every [Backend.ParallelFor] call returns only once all chunks finished, so
// successive calls form the phase barriers the integrator relies on:
//
//	backend := compute.GetBackend()
//	backend.ParallelFor(n, 1024, func(start, end int) {
//	    for k := start; k < end; k++ {
//	        next[k] = cur[k] + vel[k]*dt
//	    }
//	})
package compute
