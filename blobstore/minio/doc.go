// Package minio stores grids in MinIO or another S3-compatible service
// through the MinIO client.
//
//	store, err := minio.Dial("localhost:9000", "minioadmin", "minioadmin", false, "grids", "nnpdf/")
//
// NewStore accepts an already configured *minio.Client.
package minio
