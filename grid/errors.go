package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid is returned for inconsistent constructor arguments.
	ErrInvalid = errors.New("grid: invalid argument")

	// ErrOutOfRange is returned for order, bin or channel indices outside
	// the grid.
	ErrOutOfRange = errors.New("grid: index out of range")
)

// MismatchError is returned when two grids cannot be merged.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type MismatchError struct {
	Reason string
	cause  error
}

func (e *MismatchError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("grid: %s: %v", e.Reason, e.cause)
	}
	return "grid: " + e.Reason
}

func (e *MismatchError) Unwrap() error { return e.cause }
