// Package s3 stores grids in Amazon S3 or an S3-compatible service.
//
//	store, err := s3.New(ctx, "grids",
//	    s3.WithPrefix("nnpdf/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// Small grids are written with a single PutObject carrying a CRC32C
// checksum. Grids above the multipart threshold go through the transfer
// manager in parallel parts.
package s3
