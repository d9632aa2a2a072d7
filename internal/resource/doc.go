// Package resource bounds the resources spent on convolutions and grid I/O.
//
// A Controller combines three limits:
//
//   - Workers: concurrent convolutions, acquired per ensemble member
//   - Memory: bytes held by decoded grids and convolution caches (fail-fast)
//   - IO: a token bucket throttling blob store reads and writes
//
// All methods accept a nil *Controller and then impose no limit.
package resource
