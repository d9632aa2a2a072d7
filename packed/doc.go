// Package packed provides Array, a sparse N-dimensional float64 array.
//
// Only non-zero cells are stored. Neighbouring cells are grouped into runs
// over the row-major raveled index, so memory grows with the number of
// populated cells and the number of runs, not with the extent of the array.
// Isolated zeros between two runs are stored explicitly when that is cheaper
// than keeping two runs apart.
//
//	a := packed.New([]int{40, 50, 50})
//	a.Add([]int{5, 10, 10}, 1.0)
//	for index, v := range a.All() {
//	    fmt.Println(index, v)
//	}
//
// Indexing outside the shape is a programming error and panics.
package packed
