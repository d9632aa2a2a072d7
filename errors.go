package sparsegrid

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sparsegrid/blobstore"
	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/internal/resource"
	"github.com/hupe1980/sparsegrid/persistence"
)

var (
	// ErrNotFound is returned when a named grid does not exist.
	ErrNotFound = errors.New("grid not found")

	// ErrInvalidGrid is returned when stored bytes do not decode to a grid.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrNoMembers is returned by ConvolveEnsemble without members.
	ErrNoMembers = errors.New("ensemble has no members")

	// ErrResourceExhausted is returned when the memory limit refuses a load.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// MismatchError indicates grids or distributions that cannot be combined.
//
// The original underlying error can be accessed via errors.Unwrap.
type MismatchError struct {
	Reason string
	cause  error
}

func (e *MismatchError) Error() string {
	return "mismatch: " + e.Reason
}

func (e *MismatchError) Unwrap() error { return e.cause }

// MemberError reports the failure of one ensemble member.
type MemberError struct {
	Index int
	Name  string
	cause error
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("member %d (%s): %v", e.Index, e.Name, e.cause)
}

func (e *MemberError) Unwrap() error { return e.cause }

// translateError maps lower layer errors onto the errors of this package.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrResourceExhausted, err)
	}

	var cs *persistence.ChecksumMismatchError
	if errors.As(err, &cs) ||
		errors.Is(err, persistence.ErrInvalidMagic) ||
		errors.Is(err, persistence.ErrInvalidVersion) ||
		errors.Is(err, persistence.ErrUnknownCodec) ||
		errors.Is(err, persistence.ErrCorrupt) {
		return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}

	var gm *grid.MismatchError
	if errors.As(err, &gm) {
		return &MismatchError{Reason: gm.Reason, cause: err}
	}
	var cm *convolution.ConvolutionMismatchError
	if errors.As(err, &cm) {
		return &MismatchError{Reason: "no distribution for " + cm.Conv.String(), cause: err}
	}

	return err
}
