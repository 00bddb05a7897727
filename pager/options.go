package pager

// DefaultSnapshotLimit caps how many positions a snapshot indexes.
// Bounds memory for large datasets at the cost of resilience beyond the
// limit.
const DefaultSnapshotLimit = 1000

// config holds internal configuration
type config struct {
	SnapshotLimit int
}

// Option configures a Pager
type Option interface {
	apply(*config)
}

// funcOpt wraps a function as an Option
type funcOpt func(*config)

func (f funcOpt) apply(c *config) {
	f(c)
}

// WithSnapshotLimit sets the maximum number of positions the snapshot
// indexes (must be positive; default DefaultSnapshotLimit).
func WithSnapshotLimit(n int) Option {
	return funcOpt(func(c *config) {
		c.SnapshotLimit = n
	})
}

// defaultConfig returns sensible defaults
func defaultConfig() config {
	return config{
		SnapshotLimit: DefaultSnapshotLimit,
	}
}
