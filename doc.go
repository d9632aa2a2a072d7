// Package sparsegrid stores and evaluates interpolation grids of
// perturbative cross sections.
//
// The core lives in subpackages: packed holds sparse arrays, interp the
// Lagrange interpolation, subgrid the per-cell storage, grid the
// orchestration over orders, bins and channels, and convolution the
// evaluation cache for distribution callbacks. This package ties them to
// storage and concurrency.
//
// # Storing Grids
//
// A Store saves and loads grids through any blobstore.BlobStore:
//
//	store := sparsegrid.NewStore(blobstore.NewLocalStore("./grids"),
//	    sparsegrid.WithCompression(persistence.CompressionZSTD),
//	)
//	if err := store.Save(ctx, "atlas-z0.spg", g); err != nil { ... }
//	g, err := store.Load(ctx, "atlas-z0.spg")
//
// # Ensembles
//
// ConvolveEnsemble convolves one grid with many distribution sets, such as
// the replicas of a PDF fit, in parallel and reduces the predictions to a
// per-bin mean and standard deviation:
//
//	res, err := sparsegrid.ConvolveEnsemble(ctx, g, members, sparsegrid.Selection{},
//	    sparsegrid.WithMaxWorkers(8),
//	)
//
// Each member gets its own convolution.Cache. Callbacks that are not safe
// for concurrent use must be wrapped with convolution.Serialized.
package sparsegrid
