package grid

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/subgrid"
)

// Scale multiplies every subgrid by factor.
func (g *Grid) Scale(factor float64) {
	for _, sg := range g.subgrids {
		sg.Scale(factor)
	}
}

// ScaleByOrder multiplies every subgrid by global times the given factors
// raised to the exponents of its order.
func (g *Grid) ScaleByOrder(alphas, alpha, logxir, logxif, logxia, global float64) {
	for cell, sg := range g.Cells() {
		o := g.orders[cell.Order]
		sg.Scale(global *
			powi(alphas, o.Alphas) *
			powi(alpha, o.Alpha) *
			powi(logxir, o.LogXiR) *
			powi(logxif, o.LogXiF) *
			powi(logxia, o.LogXiA))
	}
}

// ScaleByBin multiplies the subgrids of bin i by factors[i]. Bins without a
// factor are left unchanged.
func (g *Grid) ScaleByBin(factors []float64) {
	for cell, sg := range g.Cells() {
		if cell.Bin < len(factors) {
			sg.Scale(factors[cell.Bin])
		}
	}
}

func powi(x float64, n uint8) float64 {
	if n == 0 {
		return 1
	}
	return math.Pow(x, float64(n))
}

// Optimize converts every populated subgrid into its most compact lossless
// form and drops orders and channels without any populated subgrid.
func (g *Grid) Optimize() {
	for i, sg := range g.subgrids {
		if sg.IsEmpty() {
			g.subgrids[i] = subgrid.Empty
		} else {
			g.subgrids[i] = subgrid.FromSubgrid(sg)
		}
	}

	usedOrders := make([]bool, len(g.orders))
	usedChannels := make([]bool, len(g.channels))
	for cell, sg := range g.Cells() {
		if !sg.IsEmpty() {
			usedOrders[cell.Order] = true
			usedChannels[cell.Channel] = true
		}
	}

	g.retain(indicesOf(usedOrders), allIndices(g.bins.Len()), indicesOf(usedChannels), g.bins)
}

// SymmetrizeChannels exploits identical convolutions: the subgrids of a
// channel and its transposed partner are merged into the first of both with
// the momentum fractions swapped, and subgrids of symmetric channels are
// folded onto one triangle. It does nothing unless the grid has two
// identical convolutions.
func (g *Grid) SymmetrizeChannels() {
	if len(g.convs) != 2 || g.convs[0] != g.convs[1] {
		return
	}

	transpose := &subgrid.Transpose{A: 1, B: 2}
	removed := make([]bool, len(g.channels))

	for c, ch := range g.channels {
		if removed[c] {
			continue
		}

		t := ch.Transpose(0, 1)
		if t.Equal(ch) {
			for o := range g.orders {
				for b := range g.bins.Len() {
					g.subgrids[g.index(o, b, c)].Symmetrize(1, 2)
				}
			}
			continue
		}

		partner := -1
		for d := c + 1; d < len(g.channels); d++ {
			if !removed[d] && g.channels[d].Equal(t) {
				partner = d
				break
			}
		}
		if partner < 0 {
			continue
		}

		for o := range g.orders {
			for b := range g.bins.Len() {
				i := g.index(o, b, c)
				g.subgrids[i] = subgrid.MergeInto(g.subgrids[i], g.subgrids[g.index(o, b, partner)], transpose)
			}
		}
		removed[partner] = true
	}

	keep := make([]bool, len(removed))
	for c, r := range removed {
		keep[c] = !r
	}
	g.retain(allIndices(len(g.orders)), allIndices(g.bins.Len()), indicesOf(keep), g.bins)
}

// DeleteBins removes the bins with the given indices.
func (g *Grid) DeleteBins(indices []int) error {
	keep, err := complement(indices, g.bins.Len())
	if err != nil {
		return err
	}

	bins, err := g.bins.Delete(indices)
	if err != nil {
		return err
	}

	g.retain(allIndices(len(g.orders)), keep, allIndices(len(g.channels)), bins)
	return nil
}

// DeleteChannels removes the channels with the given indices.
func (g *Grid) DeleteChannels(indices []int) error {
	keep, err := complement(indices, len(g.channels))
	if err != nil {
		return err
	}

	g.retain(allIndices(len(g.orders)), allIndices(g.bins.Len()), keep, g.bins)
	return nil
}

// DeleteOrders removes the orders with the given indices.
func (g *Grid) DeleteOrders(indices []int) error {
	keep, err := complement(indices, len(g.orders))
	if err != nil {
		return err
	}

	g.retain(keep, allIndices(g.bins.Len()), allIndices(len(g.channels)), g.bins)
	return nil
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		subgrids: make([]subgrid.Subgrid, len(g.subgrids)),
		orders:   slices.Clone(g.orders),
		channels: slices.Clone(g.channels),
		bins:     g.bins,
		interps:  slices.Clone(g.interps),
		convs:    slices.Clone(g.convs),
		metadata: maps.Clone(g.metadata),
	}
	for i, sg := range g.subgrids {
		c.subgrids[i] = sg.Clone()
	}
	return c
}

// retain keeps the subgrids of the given order, bin and channel indices, in
// that sequence, and installs bins, which must have len(binIdx) bins.
func (g *Grid) retain(orderIdx, binIdx, channelIdx []int, bins boc.Bins) {
	subgrids := make([]subgrid.Subgrid, 0, len(orderIdx)*len(binIdx)*len(channelIdx))
	for _, o := range orderIdx {
		for _, b := range binIdx {
			for _, c := range channelIdx {
				subgrids = append(subgrids, g.subgrids[g.index(o, b, c)])
			}
		}
	}

	orders := make([]boc.Order, len(orderIdx))
	for i, o := range orderIdx {
		orders[i] = g.orders[o]
	}
	channels := make([]boc.Channel, len(channelIdx))
	for i, c := range channelIdx {
		channels[i] = g.channels[c]
	}

	g.subgrids = subgrids
	g.orders = orders
	g.bins = bins
	g.channels = channels
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func indicesOf(mask []bool) []int {
	var idx []int
	for i, ok := range mask {
		if ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// complement returns the indices below n not listed in remove.
func complement(remove []int, n int) ([]int, error) {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	for _, i := range remove {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: index %d of %d", ErrOutOfRange, i, n)
		}
		mask[i] = false
	}
	return indicesOf(mask), nil
}
