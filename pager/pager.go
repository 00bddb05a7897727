// Package pager exposes an ordered dataset through page-based and
// index-based cursors. The index-based cursor pages over a point-in-time
// snapshot and stays contiguous when records are deleted between
// requests: gaps are skipped and never count toward the page size.
package pager

import (
	"fmt"
	"sync"

	"github.com/rowcache/rowcache/dataset"
)

// Pager paginates a dataset.Source. The source is read once: the dataset
// is materialized lazily on the first page request and the snapshot used
// by GetIndexPage is built lazily from that copy. Neither is ever
// refreshed, so mutations of the backing source after first use are not
// observed.
type Pager[T any] struct {
	config
	src dataset.Source[T]

	mu     sync.Mutex
	loaded bool
	data   []T
	snap   *Snapshot[T]
}

// New creates a Pager over src with optional configuration.
func New[T any](src dataset.Source[T], opts ...Option) (*Pager[T], error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.SnapshotLimit <= 0 {
		return nil, fmt.Errorf("%w: snapshot limit must be positive, got %d",
			ErrInvalidArgument, cfg.SnapshotLimit)
	}

	return &Pager[T]{config: cfg, src: src}, nil
}

// dataset returns the materialized rows, reading the source on first use.
func (p *Pager[T]) dataset() ([]T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.datasetLocked()
}

// datasetLocked implements the initialize-once rule. Caller must hold p.mu.
func (p *Pager[T]) datasetLocked() ([]T, error) {
	if p.loaded {
		return p.data, nil
	}

	n := p.src.Len()
	rows := make([]T, 0, n)
	for pos := 0; pos < n; pos++ {
		rec, err := p.src.Record(pos)
		if err != nil {
			return nil, fmt.Errorf("materialize dataset: %w", err)
		}
		rows = append(rows, rec)
	}

	p.data = rows
	p.loaded = true
	return p.data, nil
}

// GetPage returns the 1-based page of pageSize records, sliced directly
// out of the dataset with no gap skipping. A start index beyond the
// dataset yields an empty page, not an error.
func (p *Pager[T]) GetPage(page, pageSize int) ([]T, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be a positive integer, got %d", ErrInvalidArgument, page)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be a positive integer, got %d", ErrInvalidArgument, pageSize)
	}

	rows, err := p.dataset()
	if err != nil {
		return nil, err
	}

	start, end := IndexRange(page, pageSize)
	if start >= len(rows) {
		return []T{}, nil
	}
	end = min(end, len(rows))
	return rows[start:end], nil
}

// GetHyper wraps GetPage with hypermedia cursor metadata.
func (p *Pager[T]) GetHyper(page, pageSize int) (*HyperPage[T], error) {
	data, err := p.GetPage(page, pageSize)
	if err != nil {
		return nil, err
	}

	rows, err := p.dataset()
	if err != nil {
		return nil, err
	}
	total := len(rows)

	hp := &HyperPage[T]{
		Page:       page,
		PageSize:   len(data),
		Data:       data,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	if page*pageSize < total {
		next := page + 1
		hp.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		hp.PrevPage = &prev
	}
	return hp, nil
}

// Snapshot returns the position index, building it on first use.
//
// The snapshot is never rebuilt: records removed from the backing source
// after this point are not observed. Gaps only ever appear through
// Snapshot.Delete, which is the supported way to model deletions.
func (p *Pager[T]) Snapshot() (*Snapshot[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snap == nil {
		rows, err := p.datasetLocked()
		if err != nil {
			return nil, err
		}
		p.snap = buildSnapshot(rows, p.SnapshotLimit)
		log.Debug("snapshot built", "bound", p.snap.Bound(), "limit", p.SnapshotLimit)
	}
	return p.snap, nil
}

// GetIndexPage returns up to pageSize live records starting at start
// (pass 0 to begin at the start, or a previous response's NextIndex to
// resume). Deleted positions are skipped and never count toward the page
// size, so a page is short only at end of data. A start beyond the
// snapshot bound yields an empty page with a nil NextIndex, not an error.
func (p *Pager[T]) GetIndexPage(start, pageSize int) (*IndexPage[T], error) {
	if start < 0 {
		return nil, fmt.Errorf("%w: start index must not be negative, got %d", ErrInvalidArgument, start)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be a positive integer, got %d", ErrInvalidArgument, pageSize)
	}

	snap, err := p.Snapshot()
	if err != nil {
		return nil, err
	}

	data := make([]T, 0, pageSize)
	cur := start
	for len(data) < pageSize && cur < snap.Bound() {
		if rec, ok := snap.Get(cur); ok {
			data = append(data, rec)
		}
		cur++
	}

	page := &IndexPage[T]{
		Index:    start,
		PageSize: len(data),
		Data:     data,
	}
	if cur < snap.Bound() {
		page.NextIndex = &cur
	}
	return page, nil
}
