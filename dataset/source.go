// Package dataset supplies ordered, indexable data to the pagination
// layer. A Source is any finite ordered sequence of records; the
// pagination code never cares whether it came from a CSV file, a
// database, or a test fixture.
package dataset

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by Record for positions outside [0, Len()).
var ErrOutOfRange = errors.New("position out of range")

// Source is an ordered sequence of records with indexed lookup.
type Source[T any] interface {
	// Len returns the number of records.
	Len() int
	// Record returns the record at pos, or ErrOutOfRange.
	Record(pos int) (T, error)
}

// SliceSource adapts an in-memory slice to the Source interface.
type SliceSource[T any] struct {
	rows []T
}

// FromSlice wraps rows without copying; the caller must not mutate them
// afterwards.
func FromSlice[T any](rows []T) *SliceSource[T] {
	return &SliceSource[T]{rows: rows}
}

func (s *SliceSource[T]) Len() int {
	return len(s.rows)
}

func (s *SliceSource[T]) Record(pos int) (T, error) {
	if pos < 0 || pos >= len(s.rows) {
		var zero T
		return zero, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, pos, len(s.rows))
	}
	return s.rows[pos], nil
}
