package compute

import (
	"runtime"
	"strconv"
	"sync"
)

type task struct {
	start, end int
	fn         func(start, end int)
	wg         *sync.WaitGroup
}

// CPUBackend keeps a fixed pool of goroutines alive for the lifetime of the
// backend so that per-phase dispatch does not spawn goroutines.
type CPUBackend struct {
	workers int
	tasks   chan task
	once    sync.Once
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	c := &CPUBackend{
		workers: workers,
		tasks:   make(chan task, workers),
	}
	for w := 0; w < workers; w++ {
		go c.loop()
	}
	return c
}

func (c *CPUBackend) loop() {
	for t := range c.tasks {
		t.fn(t.start, t.end)
		t.wg.Done()
	}
}

func (c *CPUBackend) Name() string { return "cpu/" + strconv.Itoa(c.workers) }
func (c *CPUBackend) Workers() int { return c.workers }

func (c *CPUBackend) Cleanup() {
	c.once.Do(func() { close(c.tasks) })
}

func (c *CPUBackend) ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if c.workers <= 1 || n <= minChunk {
		fn(0, n)
		return
	}

	parts := chunks(n, minChunk, c.workers)
	if len(parts) == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(parts))
	// the caller takes the last chunk itself
	for _, p := range parts[:len(parts)-1] {
		c.tasks <- task{start: p[0], end: p[1], fn: fn, wg: &wg}
	}
	last := parts[len(parts)-1]
	fn(last[0], last[1])
	wg.Done()

	wg.Wait()
}
