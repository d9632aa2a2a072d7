// Package hash computes the CRC32-Castagnoli checksums that guard grid
// files and object uploads.
package hash
