// Package mmap maps grid files read-only into memory.
//
// Grid files are decoded front to back, so a Mapping is usually advised
// with AccessSequential right after Open. On Windows Advise is a no-op.
package mmap
