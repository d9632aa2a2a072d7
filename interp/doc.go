// Package interp implements the per-axis Lagrange interpolation used to fill
// subgrids from point samples.
//
// Each axis is described by an Interp: a physical range, a number of nodes
// equidistant in a transformed space y = f(x), an interpolation order and a
// reweighting function. A sample at x contributes to the order+1 nodes
// around it with Lagrange weights; the stored weight is divided by the
// reweighting factor, which is multiplied back when values are read.
//
// Samples outside the range of any axis are dropped without error.
package interp
