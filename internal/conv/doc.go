// Package conv provides checked integer conversions for lengths and counts
// read from encoded grids or handed to fixed-width containers such as
// roaring bitmaps.
package conv
