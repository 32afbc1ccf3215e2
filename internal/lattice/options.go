package lattice

import (
	"fmt"
	"strings"

	"github.com/san-kum/latticesim/internal/compute"
)

// UpdateOrder selects which positions feed the acceleration recompute.
type UpdateOrder int

const (
	// PreStep recomputes acceleration from the positions at the start of the
	// step. This is the default order.
	PreStep UpdateOrder = iota
	// PostStep recomputes acceleration from the freshly advanced positions,
	// the textbook velocity-Verlet choice. Results differ from PreStep.
	PostStep
)

func (o UpdateOrder) String() string {
	switch o {
	case PreStep:
		return "pre"
	case PostStep:
		return "post"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

func ParseUpdateOrder(name string) (UpdateOrder, error) {
	switch strings.ToLower(name) {
	case "", "pre", "prestep", "pre-step":
		return PreStep, nil
	case "post", "poststep", "post-step":
		return PostStep, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, name)
	}
}

const defaultChunk = 4096

type options struct {
	strategy Strategy
	backend  compute.Backend
	order    UpdateOrder
	chunk    int
}

type Option func(*options)

func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithBackend sets the parallel-for backend. The simulator does not take
// ownership; the caller cleans the backend up.
func WithBackend(b compute.Backend) Option {
	return func(o *options) { o.backend = b }
}

func WithUpdateOrder(u UpdateOrder) Option {
	return func(o *options) { o.order = u }
}

// WithChunkSize sets the minimum number of buffer elements per parallel chunk.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunk = n
		}
	}
}
