package rowcache

import "errors"

// Unbounded disables the capacity limit: the cache grows without
// eviction. This is the default.
const Unbounded = 0

// config holds internal configuration
type config[K comparable] struct {
	MaxItems         int
	Strategy         EvictionStrategy
	OnEvict          func(key K) // Invoked with the victim key on every eviction
	maxItemsExplicit bool
}

// Option configures a Cache
type Option[K comparable] interface {
	apply(*config[K])
}

// funcOpt wraps a function as an Option
type funcOpt[K comparable] func(*config[K])

func (f funcOpt[K]) apply(c *config[K]) {
	f(c)
}

// WithMaxItems sets the maximum number of entries (must be positive).
// When the limit would be exceeded by an insert, exactly one victim is
// evicted first, chosen by the configured EvictionStrategy.
func WithMaxItems[K comparable](n int) Option[K] {
	return funcOpt[K](func(c *config[K]) {
		c.MaxItems = n
		c.maxItemsExplicit = true
	})
}

// WithEvictionStrategy sets how entries are selected for eviction
func WithEvictionStrategy[K comparable](strategy EvictionStrategy) Option[K] {
	return funcOpt[K](func(c *config[K]) {
		c.Strategy = strategy
	})
}

// WithEvictionCallback registers a side channel invoked with the victim
// key whenever a Put evicts an entry. The callback runs synchronously
// under the cache lock; keep it cheap.
func WithEvictionCallback[K comparable](fn func(key K)) Option[K] {
	return funcOpt[K](func(c *config[K]) {
		c.OnEvict = fn
	})
}

// EvictionStrategy determines how entries are selected for eviction
type EvictionStrategy int

const (
	EvictFIFO EvictionStrategy = iota // Oldest inserted; overwrites keep their position
	EvictLRU                          // Least recently touched (reads and overwrites promote)
)

func (e EvictionStrategy) String() string {
	switch e {
	case EvictFIFO:
		return "fifo"
	case EvictLRU:
		return "lru"
	default:
		return "fifo"
	}
}

// Common errors
var (
	ErrInvalidCapacity = errors.New("max items must be positive")
)

// defaultConfig returns sensible defaults
func defaultConfig[K comparable]() config[K] {
	return config[K]{
		MaxItems: Unbounded,
		Strategy: EvictFIFO,
	}
}
