package compute

import (
	"fmt"
	"sync"
)

// Backend runs data-parallel loops. ParallelFor must not return until every
// chunk of the range has been processed, so each call acts as a barrier.
type Backend interface {
	Name() string
	Workers() int
	ParallelFor(n, minChunk int, fn func(start, end int))
	Cleanup()
}

var (
	mu            sync.Mutex
	activeBackend Backend
)

// SetBackend replaces the process default and returns the previous one.
// The previous backend is left running: simulators built on it keep using
// it, so the caller cleans it up once they are done.
func SetBackend(b Backend) Backend {
	mu.Lock()
	defer mu.Unlock()
	prev := activeBackend
	activeBackend = b
	return prev
}

// GetBackend returns the process default backend, creating it on first use.
func GetBackend() Backend {
	mu.Lock()
	defer mu.Unlock()
	if activeBackend == nil {
		activeBackend = AutoSelectBackend()
	}
	return activeBackend
}

func AutoSelectBackend() Backend {
	cpu := NewCPUBackend(0)
	if cpu.Workers() > 1 {
		return cpu
	}
	cpu.Cleanup()
	return NewSerialBackend()
}

// ParseBackend builds a backend by name. workers <= 0 means one per CPU.
func ParseBackend(name string, workers int) (Backend, error) {
	switch name {
	case "", "auto":
		if workers > 0 {
			return NewCPUBackend(workers), nil
		}
		return AutoSelectBackend(), nil
	case "cpu":
		return NewCPUBackend(workers), nil
	case "serial":
		return NewSerialBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}

// chunks splits [0,n) into at most parts ranges of at least minChunk elements.
func chunks(n, minChunk, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if minChunk < 1 {
		minChunk = 1
	}
	workers := parts
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}
