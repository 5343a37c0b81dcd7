package bitvec

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an index or size argument falls outside
	// its valid range. It is a caller error; indices are never clamped.
	ErrOutOfRange = errors.New("index out of range")
)

// IndexError describes a rejected index or size.
//
// It matches ErrOutOfRange via errors.Is.
type IndexError struct {
	// Op is the rejected operation: "new", "get", "set", "rank0" or "rank1".
	Op string
	// Index is the offending argument.
	Index int
	// Limit is the exclusive upper bound that applied; the valid range is [0, Limit).
	Limit int
}

func (e *IndexError) Error() string {
	if e.Op == "new" {
		if e.Index < 0 {
			return fmt.Sprintf("bitvec: new: negative size %d", e.Index)
		}
		return fmt.Sprintf("bitvec: new: size %d exceeds maximum %d", e.Index, e.Limit-1)
	}
	return fmt.Sprintf("bitvec: %s: index %d out of range [0, %d)", e.Op, e.Index, e.Limit)
}

func (e *IndexError) Unwrap() error { return ErrOutOfRange }
