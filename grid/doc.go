// Package grid organises subgrids by perturbative order, observable bin and
// partonic channel.
//
// A Grid is filled with weighted events, convolved with parton distributions
// through a convolution.Cache and can be merged with grids of independent
// runs, rescaled and compacted. Grids are not safe for concurrent
// modification; concurrent Convolve calls on an unmodified grid are fine as
// long as every call uses its own cache.
package grid
