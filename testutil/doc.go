// Package testutil provides testing utilities for sparsegrid.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic random number generator, a toy event
// generator and smooth toy distributions in place of a PDF library.
//
// # Events
//
//	rng := testutil.NewRNG(seed)
//	for _, ev := range rng.Events(1000, 1e2, 1e4) {
//		g.Fill(0, ev.Observable, 0, ev.Ntuple(), ev.Weight)
//	}
//
// # Distributions
//
//	xfx := testutil.ToyXFX
//	alphas := testutil.ToyAlphaS
package testutil
