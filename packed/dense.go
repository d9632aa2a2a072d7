package packed

import "fmt"

// FromDense converts the row-major block dense of extents blockShape into an
// Array of the given shape, placing the block at offset. Zeros are not stored.
func FromDense(dense []float64, blockShape, offset, shape []int) *Array {
	if len(blockShape) != len(shape) || len(offset) != len(shape) {
		panic(fmt.Sprintf("packed: block shape %v, offset %v and shape %v differ in rank", blockShape, offset, shape))
	}

	size := 1
	for _, d := range blockShape {
		size *= d
	}
	if size != len(dense) {
		panic(fmt.Sprintf("packed: block of shape %v needs %d values, got %d", blockShape, size, len(dense)))
	}

	a := New(shape)
	target := make([]int, len(shape))
	for flat, v := range dense {
		if v == 0 {
			continue
		}
		for i, idx := range unravel(flat, blockShape) {
			target[i] = idx + offset[i]
		}
		a.Set(target, v)
	}

	return a
}
