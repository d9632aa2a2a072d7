// Package blobstore stores encoded grids as named, immutable blobs.
//
// Grids are always written whole and read whole, so the interface is a
// small subset of an object store: Put replaces a blob atomically, Open
// returns a handle supporting positional reads.
//
// # Implementations
//
//   - MemoryStore: process-local, for tests and short-lived pipelines
//   - LocalStore: a directory on the local file system, read via mmap
//   - CachingStore: an LRU of blob contents in front of another store
//   - s3.Store and minio.Store: object storage backends
package blobstore
