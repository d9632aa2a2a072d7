// Package subgrid provides the per-cell storage of a grid.
//
// A Subgrid is one of three variants, distinguished by Kind:
//
//   - InterpSubgrid is filled from point samples through Lagrange
//     interpolation. Its node axes are derived from its interpolations and
//     its raw values are reweighted when read.
//   - ImportSubgrid holds precomputed values on explicit node axes. It cannot
//     be filled, but it can absorb any other subgrid on merge, growing its
//     axes to the union of both node sets.
//   - EmptySubgrid is the structurally empty singleton Empty.
//
// Node values produced by different pipelines are compared with NodeValueEq,
// which accepts a distance of up to 64 units in the last place.
package subgrid
