package pager

import "errors"

// ErrInvalidArgument reports a caller contract violation: a non-positive
// page or page size, a negative start index, or a nil source. It is
// raised at the public boundary before any state mutation.
var ErrInvalidArgument = errors.New("invalid argument")
