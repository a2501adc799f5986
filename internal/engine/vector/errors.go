package vector

import (
	"errors"
	"fmt"
)

// Errors returned by vector operations.
var (
	// ErrOutOfBounds indicates an index or range outside the vector.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrEmpty indicates a removal from a vector with no elements.
	ErrEmpty = errors.New("vector is empty")
)

// IndexError describes a bounds failure for a single index or a range.
type IndexError struct {
	// Op is the operation that failed (e.g. "get", "slice").
	Op string
	// Index is the offending index for single-index operations.
	Index int
	// Start and End are the requested range for range operations.
	Start, End int
	// Size is the vector length at the time of the call.
	Size int
	// Range reports whether Start/End are set instead of Index.
	Range bool
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Range {
		return fmt.Sprintf("vector: %s: range [%d, %d) out of bounds for size %d", e.Op, e.Start, e.End, e.Size)
	}
	return fmt.Sprintf("vector: %s: index %d out of range [0, %d)", e.Op, e.Index, e.Size)
}

// Is implements error matching for IndexError.
func (e *IndexError) Is(target error) bool {
	return target == ErrOutOfBounds
}

func indexError(op string, i, size int) error {
	return &IndexError{Op: op, Index: i, Size: size}
}

func rangeError(op string, start, end, size int) error {
	return &IndexError{Op: op, Start: start, End: end, Size: size, Range: true}
}

func emptyError(op string) error {
	return fmt.Errorf("vector: %s: %w", op, ErrEmpty)
}
