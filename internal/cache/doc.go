// Package cache holds encoded grids in a byte-bounded LRU.
//
// Reservations are mirrored into a resource.Controller when one is given,
// so cached grids count against the process memory limit.
package cache
