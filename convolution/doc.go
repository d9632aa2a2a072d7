// Package convolution evaluates external parton distributions and the strong
// coupling for grid convolutions.
//
// A Cache wraps one XFX callback per distribution and an AlphaS callback. A
// convolution starts a Pass with Cache.Begin, which collects every scale and
// momentum-fraction node the grid can ask for. Within a pass every distinct
// (particle id, node, scale) triple reaches the callback at most once.
//
// Caches and passes are not safe for concurrent use. Callbacks that wrap a
// non-reentrant library can be guarded with Serialized.
package convolution
