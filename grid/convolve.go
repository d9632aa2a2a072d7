package grid

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/packed"
)

// Convolve convolves the grid with the distributions of cache for every
// scale variation in xis. Empty orderMask or channelMask enable every order
// or channel, empty bins selects all bins. The result holds the value of
// selected bin i and variation l at position l+len(xis)*i.
func (g *Grid) Convolve(cache *convolution.Cache, orderMask []bool, bins []int, channelMask []bool, xis []convolution.Xi) ([]float64, error) {
	if len(orderMask) != 0 && len(orderMask) != len(g.orders) {
		return nil, fmt.Errorf("%w: order mask of length %d for %d orders", ErrInvalid, len(orderMask), len(g.orders))
	}
	if len(channelMask) != 0 && len(channelMask) != len(g.channels) {
		return nil, fmt.Errorf("%w: channel mask of length %d for %d channels", ErrInvalid, len(channelMask), len(g.channels))
	}

	if len(bins) == 0 {
		bins = make([]int, g.bins.Len())
		for i := range bins {
			bins[i] = i
		}
	}
	for _, b := range bins {
		if b < 0 || b >= g.bins.Len() {
			return nil, fmt.Errorf("%w: bin %d of %d", ErrOutOfRange, b, g.bins.Len())
		}
	}

	enabled := func(o, c int) bool {
		return (len(orderMask) == 0 || orderMask[o]) && (len(channelMask) == 0 || channelMask[c])
	}

	var nodes [][][]float64
	for cell, sg := range g.Cells() {
		if !sg.IsEmpty() && enabled(cell.Order, cell.Channel) && slices.Contains(bins, cell.Bin) {
			nodes = append(nodes, sg.NodeValues())
		}
	}

	pass, err := cache.Begin(g.convs, nodes, xis)
	if err != nil {
		return nil, err
	}

	norms := g.bins.Normalizations()
	result := make([]float64, len(bins)*len(xis))

	for cell, sg := range g.Cells() {
		if sg.IsEmpty() || !enabled(cell.Order, cell.Channel) {
			continue
		}
		pos := slices.Index(bins, cell.Bin)
		if pos < 0 {
			continue
		}

		order := g.orders[cell.Order]
		entries := g.channels[cell.Channel].Entries()
		sgNodes := sg.NodeValues()

		for l, xi := range xis {
			if skipLogs(order, xi) {
				continue
			}
			if err := pass.SetSubgrid(sgNodes, xi); err != nil {
				return nil, err
			}

			value := 0.0
			for index, v := range sg.All() {
				value += v * luminosity(pass, entries, order.Alphas, index)
			}

			result[l+len(xis)*pos] += value * logFactor(order, xi) / norms[cell.Bin]
		}
	}

	return result, nil
}

// ConvolveSubgrid returns the convolution of a single subgrid resolved per
// node, in the shape of the subgrid. Bin normalizations are not applied.
func (g *Grid) ConvolveSubgrid(cache *convolution.Cache, o, b, c int, xi convolution.Xi) (*packed.Array, error) {
	if err := g.checkCell(o, b, c); err != nil {
		return nil, err
	}

	sg := g.subgrids[g.index(o, b, c)]
	if sg.IsEmpty() {
		return packed.New(make([]int, len(g.interps))), nil
	}

	nodes := sg.NodeValues()
	pass, err := cache.Begin(g.convs, [][][]float64{nodes}, []convolution.Xi{xi})
	if err != nil {
		return nil, err
	}
	if err := pass.SetSubgrid(nodes, xi); err != nil {
		return nil, err
	}

	order := g.orders[o]
	entries := g.channels[c].Entries()
	factor := logFactor(order, xi)

	result := packed.New(sg.Shape())
	for index, v := range sg.All() {
		result.Set(index, v*luminosity(pass, entries, order.Alphas, index)*factor)
	}

	return result, nil
}

func luminosity(pass *convolution.Pass, entries []boc.Entry, alphas uint8, index []int) float64 {
	lumi := 0.0
	for _, e := range entries {
		lumi += e.Factor * pass.FxProd(e.PIDs, alphas, index)
	}
	return lumi
}

// skipLogs reports whether a scale-log order vanishes for xi.
func skipLogs(order boc.Order, xi convolution.Xi) bool {
	return (order.LogXiR > 0 && xi.R == 1) ||
		(order.LogXiF > 0 && xi.F == 1) ||
		(order.LogXiA > 0 && xi.A == 1)
}

func logFactor(order boc.Order, xi convolution.Xi) float64 {
	f := 1.0
	if order.LogXiR > 0 {
		f *= math.Pow(math.Log(xi.R*xi.R), float64(order.LogXiR))
	}
	if order.LogXiF > 0 {
		f *= math.Pow(math.Log(xi.F*xi.F), float64(order.LogXiF))
	}
	if order.LogXiA > 0 {
		f *= math.Pow(math.Log(xi.A*xi.A), float64(order.LogXiA))
	}
	return f
}
