package pager

import (
	"github.com/zhangyunhao116/skipmap"
)

// Snapshot is a point-in-time position index over a dataset. Positions
// are assigned 0..Bound()-1 at construction and never renumbered;
// deleting a position leaves a gap that the resilient walk skips.
type Snapshot[T any] struct {
	index *skipmap.IntMap[T]
	bound int
}

// buildSnapshot indexes the first min(len(rows), limit) rows.
func buildSnapshot[T any](rows []T, limit int) *Snapshot[T] {
	bound := min(len(rows), limit)
	idx := skipmap.NewInt[T]()
	for pos := 0; pos < bound; pos++ {
		idx.Store(pos, rows[pos])
	}
	return &Snapshot[T]{index: idx, bound: bound}
}

// Get returns the payload at pos, or false if pos was deleted or never
// indexed.
func (s *Snapshot[T]) Get(pos int) (T, bool) {
	return s.index.Load(pos)
}

// Delete marks pos as a gap. The position is never reused; subsequent
// pages simply skip it. Returns false if pos held no live record.
func (s *Snapshot[T]) Delete(pos int) bool {
	_, ok := s.index.LoadAndDelete(pos)
	return ok
}

// Len returns the number of live (non-deleted) records.
func (s *Snapshot[T]) Len() int {
	return s.index.Len()
}

// Bound returns the number of positions assigned at snapshot time. The
// resilient walk terminates at Bound, not at Len: the numbering never
// shrinks as gaps appear.
func (s *Snapshot[T]) Bound() int {
	return s.bound
}
