// Package rowcache provides a bounded in-memory key/value cache with a
// pluggable eviction strategy. Capacity pressure is never an error: when
// an insert would exceed the configured limit, exactly one victim is
// selected by the strategy and dropped, observably, before the insert.
package rowcache

import (
	"fmt"
	"reflect"
	"sync"
)

// Cache is a capacity-bounded key/value store. The zero limit (Unbounded)
// disables eviction entirely.
//
// Concurrency: Put and Delete are serialized by an internal lock;
// concurrent Gets are safe. The eviction queue has its own lock owned by
// the policy.
type Cache[K comparable, V any] struct {
	config[K]
	mu      sync.RWMutex
	entries map[K]*node[K, V]
	policy  evictionPolicy[K, V]
}

// New creates a Cache with optional configuration.
// The only construction-time failure is a non-positive capacity passed
// via WithMaxItems; omit the option for an unbounded cache.
func New[K comparable, V any](opts ...Option[K]) (*Cache[K, V], error) {
	cfg := defaultConfig[K]()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.maxItemsExplicit && cfg.MaxItems <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.MaxItems)
	}

	return &Cache[K, V]{
		config:  cfg,
		entries: make(map[K]*node[K, V]),
		policy:  newPolicy[K, V](cfg.Strategy),
	}, nil
}

// Put stores a key/value pair. A nil key or nil value is a defined
// no-op, not an error. Overwriting an existing key updates the value in
// place; whether that affects the key's eviction order is up to the
// strategy (FIFO: never, LRU: promotes). If the insert would exceed the
// capacity limit, one victim is evicted first and reported through the
// eviction callback.
func (c *Cache[K, V]) Put(key K, value V) {
	if isNil(key) || isNil(value) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = value
		c.policy.touch(n)
		return
	}

	if c.MaxItems != Unbounded && len(c.entries) >= c.MaxItems {
		c.evictOneLocked()
	}

	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.policy.add(n)
}

// evictOneLocked removes the strategy's victim. Caller must hold c.mu.
func (c *Cache[K, V]) evictOneLocked() {
	victim, err := c.policy.evictNext()
	if err != nil {
		// Empty queue with a full map cannot happen unless the map and
		// queue desync; surface loudly instead of overfilling.
		log.Error("eviction failed", "error", err)
		return
	}

	delete(c.entries, victim.key)
	log.Debug("evicted entry", "key", victim.key, "strategy", c.Strategy)
	if c.OnEvict != nil {
		c.OnEvict(victim.key)
	}
}

// Get returns the value stored for key. A nil or absent key is a miss.
// Under EvictFIFO a Get never mutates cache state; under EvictLRU it
// promotes the entry.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if isNil(key) {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.entries[key]
	if !ok {
		return zero, false
	}

	// Still under the read lock: no Put can be overwriting n.value, and
	// concurrent touches are serialized by the policy's own lock.
	c.policy.touch(n)
	return n.value, true
}

// Delete removes an entry explicitly, bypassing the eviction callback.
// Returns false if the key was not present.
func (c *Cache[K, V]) Delete(key K) bool {
	if isNil(key) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return false
	}
	delete(c.entries, key)
	c.policy.remove(n)
	return true
}

// Len returns the current entry count.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// isNil reports whether v is a nil-able nil (pointer, slice, map, chan,
// func, interface). Zero values of non-nilable types are legal.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
