package persistence

import (
	"github.com/hupe1980/sparsegrid/codec"
	"github.com/hupe1980/sparsegrid/packed"
	"github.com/hupe1980/sparsegrid/subgrid"
)

// decodeLegacySubgrid reads a version 1 cell: its node axes, the offset and
// shape of a dense block and the block values in row-major order. The cell
// becomes an ImportSubgrid.
func decodeLegacySubgrid(d *decoder, _ codec.Codec) subgrid.Subgrid {
	rank := d.int(1)
	nodes := make([][]float64, rank)
	shape := make([]int, rank)
	for i := range nodes {
		nodes[i] = d.floats()
		shape[i] = len(nodes[i])
	}

	offset := make([]int, rank)
	for i := range offset {
		offset[i] = d.int(0)
	}
	block := make([]int, rank)
	for i := range block {
		block[i] = d.int(0)
	}
	dense := d.floats()
	if d.err != nil {
		return nil
	}

	size := 1
	for i := range block {
		if offset[i] > shape[i] || block[i] > shape[i]-offset[i] {
			d.fail("block exceeds axis %d", i)
			return nil
		}
		size *= block[i]
	}
	if size != len(dense) {
		d.fail("block of %d values, got %d", size, len(dense))
		return nil
	}

	return subgrid.NewImport(packed.FromDense(dense, block, offset, shape), nodes)
}
