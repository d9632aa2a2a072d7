package interp

import "fmt"

// Accumulator receives interpolation weights. packed.Array implements it.
type Accumulator interface {
	Add(index []int, v float64)
}

// Interpolate distributes weight at the point ntuple over the nodes of the
// (order+1)^D hypercube surrounding it and adds the result to dst. The weight
// is divided by the product of the reweighting factors of every axis.
//
// Interpolate returns false, leaving dst untouched, if weight is zero or if
// any coordinate lies outside its interpolation range.
func Interpolate(interps []Interp, ntuple []float64, weight float64, dst Accumulator) bool {
	if len(interps) != len(ntuple) {
		panic(fmt.Sprintf("interp: %d interpolations for a %d-tuple", len(interps), len(ntuple)))
	}

	if weight == 0 {
		return false
	}

	dims := len(interps)
	starts := make([]int, dims)
	fractions := make([]float64, dims)
	for d, in := range interps {
		index, fraction, ok := in.Interpolate(ntuple[d])
		if !ok {
			return false
		}
		starts[d] = index
		fractions[d] = fraction
	}

	for d, in := range interps {
		weight /= in.Reweight(ntuple[d])
	}

	weights := make([][]float64, dims)
	cells := 1
	for d, in := range interps {
		weights[d] = in.NodeWeights(fractions[d])
		cells *= len(weights[d])
	}

	index := make([]int, dims)
	offsets := make([]int, dims)
	for c := range cells {
		// unravel c over the hypercube, last axis fastest
		rest := c
		for d := dims - 1; d >= 0; d-- {
			n := len(weights[d])
			offsets[d] = rest % n
			rest /= n
		}

		product := 1.0
		for d, offset := range offsets {
			index[d] = starts[d] + offset
			product *= weights[d][offset]
		}
		dst.Add(index, weight*product)
	}

	return true
}
