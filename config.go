package orthtree

import "fmt"

const (
	// DefaultCapacity is the default number of leaves a childless node may
	// hold before it is split.
	DefaultCapacity = 1
	// DefaultMaxDepth is the default depth limit, the bit width of the
	// coordinate scalar.
	DefaultMaxDepth = 64
	// MaxDim bounds the spatial dimension; 2^D children per node makes
	// higher dimensions useless in practice.
	MaxDim = 16
)

// Config configures an orthtree.
//
// The zero value is valid and normalizes to the defaults: capacity 1,
// maximum depth 64, eager adjustment on.
type Config struct {
	// Capacity is the number of leaves a childless node may hold before it
	// must be split. Ignored for nodes at MaxDepth.
	Capacity int
	// MaxDepth is the maximum node depth; nodes at this depth never split,
	// regardless of how many leaves they accumulate.
	MaxDepth int
	// ZeroMaxDepth selects a maximum depth of 0, pinning all leaves to the
	// root. The zero value of MaxDepth alone means "use the default".
	ZeroMaxDepth bool
	// Deferred starts the tree with automatic adjustment off; the caller
	// has to invoke Adjust manually after mutations.
	Deferred bool
}

func (cfg Config) normalized() Config {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.MaxDepth == 0 && !cfg.ZeroMaxDepth {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.Capacity < 1 {
		return fmt.Errorf("%w: capacity %d < 1", ErrInvalidConfig, cfg.Capacity)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max depth %d", ErrInvalidConfig, cfg.MaxDepth)
	}
	return nil
}
