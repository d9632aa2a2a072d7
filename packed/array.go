package packed

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// thresholdDistance is the maximum raveled distance at which a new element is
// merged into a neighbouring run. At distance 2 exactly one zero is padded,
// which costs less than the start index and length of a separate run.
const thresholdDistance = 2

// sizeofInt and sizeofFloat are the storage sizes used for overhead accounting.
const (
	sizeofInt   = 8
	sizeofFloat = 8
)

// Array is an N-dimensional float64 array that stores only non-default
// (non-zero) cells. Adjacent cells are grouped into runs over the raveled
// (row-major) index; for each run the raveled index of its first element and
// its length are kept.
//
// Array is not safe for concurrent use.
type Array struct {
	// entries holds the stored values; len(entries) == sum(lengths).
	entries []float64
	// startIndices holds the raveled index of the first element of each run.
	startIndices []int
	// lengths holds the length of each run.
	lengths []int
	shape   []int
}

// New creates an empty array of the given shape.
func New(shape []int) *Array {
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("packed: negative extent in shape %v", shape))
		}
	}
	return &Array{shape: slices.Clone(shape)}
}

// Shape returns the extents of the array. The returned slice must not be modified.
func (a *Array) Shape() []int {
	return a.shape
}

// Size returns the total number of cells, stored or not.
func (a *Array) Size() int {
	size := 1
	for _, d := range a.shape {
		size *= d
	}
	return size
}

// IsEmpty reports whether the array stores no element.
func (a *Array) IsEmpty() bool {
	return len(a.entries) == 0
}

// Clear removes every stored element. The shape is kept.
func (a *Array) Clear() {
	a.entries = a.entries[:0]
	a.startIndices = a.startIndices[:0]
	a.lengths = a.lengths[:0]
}

// Overhead returns the bookkeeping cost of the runs in units of float64.
func (a *Array) Overhead() int {
	return (len(a.startIndices) + len(a.lengths)) * sizeofInt / sizeofFloat
}

// ExplicitZeros returns the number of zeros stored to pad merged runs.
func (a *Array) ExplicitZeros() int {
	n := 0
	for _, v := range a.entries {
		if v == 0 {
			n++
		}
	}
	return n
}

// NonZeros returns the number of stored non-zero elements.
func (a *Array) NonZeros() int {
	return len(a.entries) - a.ExplicitZeros()
}

// At returns the value at index. Cells that are not stored read as zero.
// At panics if index lies outside the shape.
func (a *Array) At(index []int) float64 {
	a.checkBounds(index)

	raveled := ravel(index, a.shape)
	point := a.partitionPoint(raveled)
	if point == 0 {
		return 0
	}

	start := a.startIndices[point-1]
	length := a.lengths[point-1]
	if raveled >= start+length {
		return 0
	}

	offset := 0
	for _, l := range a.lengths[:point-1] {
		offset += l
	}
	return a.entries[offset+raveled-start]
}

// Set stores v at index, allocating storage if necessary.
func (a *Array) Set(index []int, v float64) {
	a.entries[a.slot(index)] = v
}

// Add adds v to the value at index, allocating storage if necessary.
func (a *Array) Add(index []int, v float64) {
	a.entries[a.slot(index)] += v
}

// Scale multiplies every stored element, including stored zeros, by f.
func (a *Array) Scale(f float64) {
	for i := range a.entries {
		a.entries[i] *= f
	}
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	return &Array{
		entries:      slices.Clone(a.entries),
		startIndices: slices.Clone(a.startIndices),
		lengths:      slices.Clone(a.lengths),
		shape:        slices.Clone(a.shape),
	}
}

// All returns the stored non-zero elements in ascending index order. Every
// yielded index slice is freshly allocated and may be retained by the caller.
func (a *Array) All() iter.Seq2[[]int, float64] {
	return func(yield func([]int, float64) bool) {
		pos := 0
		for r, start := range a.startIndices {
			for i := start; i < start+a.lengths[r]; i++ {
				v := a.entries[pos]
				pos++
				if v == 0 {
					continue
				}
				if !yield(unravel(i, a.shape), v) {
					return
				}
			}
		}
	}
}

// slot returns the position in entries that backs index, inserting a new
// zero-valued slot when the cell is not yet stored.
func (a *Array) slot(index []int) int {
	a.checkBounds(index)

	raveled := ravel(index, a.shape)

	// point is the number of runs starting at or before raveled.
	point := a.partitionPoint(raveled)

	// pointEntries is the position in entries of the first element of run point.
	pointEntries := 0
	for _, l := range a.lengths[:point] {
		pointEntries += l
	}

	if point > 0 {
		start := a.startIndices[point-1]
		length := a.lengths[point-1]

		// stored already
		if raveled < start+length {
			return pointEntries - length + raveled - start
		}

		// extend the preceding run
		if raveled < start+length+thresholdDistance {
			distance := raveled - (start + length) + 1
			a.lengths[point-1] += distance
			a.entries = slices.Insert(a.entries, pointEntries, make([]float64, distance)...)

			// fuse with the following run when it is close enough
			if point < len(a.startIndices) {
				nextStart := a.startIndices[point]
				if raveled+thresholdDistance >= nextStart {
					distanceNext := nextStart - raveled
					a.lengths[point-1] += distanceNext - 1 + a.lengths[point]
					a.lengths = slices.Delete(a.lengths, point, point+1)
					a.startIndices = slices.Delete(a.startIndices, point, point+1)
					a.entries = slices.Insert(a.entries, pointEntries+distance, make([]float64, distanceNext-1)...)
				}
			}

			return pointEntries - 1 + distance
		}
	}

	// extend the following run downwards
	if point < len(a.startIndices) {
		nextStart := a.startIndices[point]
		if raveled+thresholdDistance >= nextStart {
			distance := nextStart - raveled
			a.startIndices[point] = raveled
			a.lengths[point] += distance
			a.entries = slices.Insert(a.entries, pointEntries, make([]float64, distance)...)
			return pointEntries
		}
	}

	// new run of length one
	a.startIndices = slices.Insert(a.startIndices, point, raveled)
	a.lengths = slices.Insert(a.lengths, point, 1)
	a.entries = slices.Insert(a.entries, pointEntries, 0)

	return pointEntries
}

func (a *Array) partitionPoint(raveled int) int {
	return sort.Search(len(a.startIndices), func(i int) bool {
		return a.startIndices[i] > raveled
	})
}

func (a *Array) checkBounds(index []int) {
	if len(index) != len(a.shape) {
		panic(fmt.Sprintf("index %v has %d dimensions, array of shape %v has %d", index, len(index), a.shape, len(a.shape)))
	}
	for i, v := range index {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("index %v is out of bounds for array of shape %v", index, a.shape))
		}
	}
}

// ravel converts a multi-index into a row-major flat index.
func ravel(index, shape []int) int {
	flat := 0
	for i, v := range index {
		flat = flat*shape[i] + v
	}
	return flat
}

// unravel converts a row-major flat index into a multi-index.
func unravel(flat int, shape []int) []int {
	index := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		index[i] = flat % shape[i]
		flat /= shape[i]
	}
	return index
}
