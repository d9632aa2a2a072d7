package subgrid

import (
	"fmt"

	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/packed"
)

// MergeInto merges src into dst and returns the result, which replaces dst.
//
// An empty src leaves dst unchanged. An empty dst is replaced by a copy of
// src, transposed if requested. An InterpSubgrid that cannot absorb src
// directly is converted into an ImportSubgrid first.
func MergeInto(dst, src Subgrid, transpose *Transpose) Subgrid {
	if src.IsEmpty() {
		return dst
	}
	if dst.IsEmpty() {
		return copyOf(src, transpose)
	}

	switch d := dst.(type) {
	case *InterpSubgrid:
		if d.Compatible(src, transpose) {
			d.Merge(src, transpose)
			return d
		}
		imp := toImport(d)
		imp.Merge(src, transpose)
		return imp
	case *ImportSubgrid:
		d.Merge(src, transpose)
		return d
	default:
		panic(fmt.Sprintf("subgrid: unexpected %s subgrid", dst.Kind()))
	}
}

// FromSubgrid converts sg into an ImportSubgrid with the same content and
// the smallest possible node axes. sg is not modified.
func FromSubgrid(sg Subgrid) *ImportSubgrid {
	if s, ok := sg.(*InterpSubgrid); ok {
		c := s.Clone()
		c.OptimizeNodes()
		sg = c
	}

	if sg.IsEmpty() {
		nodes := sg.NodeValues()
		return NewImport(packed.New(make([]int, len(nodes))), make([][]float64, len(nodes)))
	}

	array, nodes := trim(sg.All(), sg.NodeValues())
	return &ImportSubgrid{array: array, nodes: nodes}
}

// toImport converts sg without changing its node axes.
func toImport(sg Subgrid) *ImportSubgrid {
	nodes := sg.NodeValues()
	shape := make([]int, len(nodes))
	for d, axis := range nodes {
		shape[d] = len(axis)
	}

	array := packed.New(shape)
	for index, v := range sg.All() {
		array.Set(index, v)
	}
	return &ImportSubgrid{array: array, nodes: nodes}
}

func copyOf(src Subgrid, transpose *Transpose) Subgrid {
	if transpose == nil {
		return src.Clone()
	}

	switch s := src.(type) {
	case *InterpSubgrid:
		interps := make([]interp.Interp, len(s.interps))
		copy(interps, s.interps)
		interps[transpose.A], interps[transpose.B] = interps[transpose.B], interps[transpose.A]

		c := NewInterp(interps)
		c.Merge(s, transpose)
		return c
	default:
		nodes := transpose.applyNodes(src.NodeValues())
		shape := make([]int, len(nodes))
		for d, axis := range nodes {
			shape[d] = len(axis)
		}

		c := NewImport(packed.New(shape), nodes)
		c.Merge(src, transpose)
		return c
	}
}
