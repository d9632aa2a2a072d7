// Package boc describes the three dimensions of a grid: bins, orders and
// channels.
//
// An Order identifies a perturbative contribution by the exponents of the
// couplings and of the scale logarithms. A Channel is a linear combination
// of parton-id tuples. Bins holds the fill limits of the observable and the
// normalization of each bin.
package boc

import "errors"

// ErrParse is wrapped by every error returned from parsing an Order or a
// Channel.
var ErrParse = errors.New("boc: parse error")

// ErrInvalid is wrapped by errors returned from constructors given
// inconsistent arguments.
var ErrInvalid = errors.New("boc: invalid argument")
