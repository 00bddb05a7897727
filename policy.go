package rowcache

import (
	"errors"
	"sync"
)

// node is internal to the eviction policy. It owns the entry's place in
// the order queue; the cache map points at it for O(1) unlinking.
type node[K comparable, V any] struct {
	key   K
	value V
	next  *node[K, V]
	prev  *node[K, V]
}

// evictionPolicy orders entries and selects victims. Implementations own
// their own lock; the cache never touches list pointers directly.
//
// Semantics:
//   - add links a freshly inserted node at the newest position.
//   - touch is the access hook (Get hit or value overwrite). FIFO ignores
//     it, which is what keeps insertion order stable across overwrites.
//   - remove unlinks a node that is leaving for a reason other than
//     eviction (explicit Delete).
//   - evictNext unlinks and returns the victim.
type evictionPolicy[K comparable, V any] interface {
	add(*node[K, V])
	touch(*node[K, V])
	remove(*node[K, V])
	evictNext() (*node[K, V], error)
}

var errPolicyEmpty = errors.New("eviction: empty")

// newPolicy is the strategy factory invoked once at construction.
func newPolicy[K comparable, V any](strategy EvictionStrategy) evictionPolicy[K, V] {
	switch strategy {
	case EvictLRU:
		return &lruPolicy[K, V]{}
	default:
		return &fifoPolicy[K, V]{}
	}
}

// fifoPolicy maintains a doubly linked queue in strict insertion order.
// head = newest, tail = oldest. Victim is always the tail.
type fifoPolicy[K comparable, V any] struct {
	sync.Mutex
	head, tail *node[K, V]
	count      int
}

// add links the node at the head (newest position).
func (p *fifoPolicy[K, V]) add(n *node[K, V]) {
	p.Lock()
	defer p.Unlock()

	n.next = nil
	n.prev = p.head
	if p.head != nil {
		p.head.next = n
	}
	p.head = n
	if p.tail == nil {
		p.tail = n
	}
	p.count++
}

// touch is a no-op: reads and overwrites never reorder a FIFO queue.
func (p *fifoPolicy[K, V]) touch(*node[K, V]) {}

func (p *fifoPolicy[K, V]) remove(n *node[K, V]) {
	p.Lock()
	defer p.Unlock()
	p.unlinkLocked(n)
}

// unlinkLocked performs pointer surgery. Caller must hold p.Mutex.
func (p *fifoPolicy[K, V]) unlinkLocked(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		// n was the tail
		p.tail = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	} else {
		// n was the head
		p.head = n.prev
	}

	p.count--
	n.next, n.prev = nil, nil
}

// evictNext unlinks and returns the oldest node.
func (p *fifoPolicy[K, V]) evictNext() (*node[K, V], error) {
	p.Lock()
	defer p.Unlock()

	victim := p.tail
	if victim == nil {
		return nil, errPolicyEmpty
	}
	p.unlinkLocked(victim)
	return victim, nil
}

// lruPolicy reuses the FIFO queue but promotes touched nodes to the head,
// so the tail decays to least-recently-used.
type lruPolicy[K comparable, V any] struct {
	fifoPolicy[K, V]
}

func (p *lruPolicy[K, V]) touch(n *node[K, V]) {
	p.Lock()
	defer p.Unlock()

	if p.head == n {
		return
	}
	p.unlinkLocked(n)

	n.prev = p.head
	if p.head != nil {
		p.head.next = n
	}
	p.head = n
	if p.tail == nil {
		p.tail = n
	}
	p.count++
}
