package grid

import (
	"slices"

	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/subgrid"
)

// Merge adds the populated subgrids of other to g; other is not modified.
//
// If both grids have the same bins, orders and channels only present in
// other are appended to g. Otherwise the bins of other must continue the
// bins of g and both grids must have the same orders and channels, in any
// sequence; the bins of other are appended. On error g is unchanged.
func (g *Grid) Merge(other *Grid) error {
	if !slices.EqualFunc(g.interps, other.interps, interp.Interp.Equal) {
		return &MismatchError{Reason: "different interpolation grids detected"}
	}
	if !slices.Equal(g.convs, other.convs) {
		return &MismatchError{Reason: "different convolutions"}
	}

	binOffset := 0

	if g.bins.Equal(other.bins) {
		var (
			newOrders   []boc.Order
			newChannels []boc.Channel
		)

		for cell, sg := range other.Cells() {
			if sg.IsEmpty() {
				continue
			}
			o := other.orders[cell.Order]
			if !slices.Contains(g.orders, o) && !slices.Contains(newOrders, o) {
				newOrders = append(newOrders, o)
			}
			c := other.channels[cell.Channel]
			if !containsChannel(g.channels, c) && !containsChannel(newChannels, c) {
				newChannels = append(newChannels, c)
			}
		}

		if len(newOrders) > 0 || len(newChannels) > 0 {
			g.reshape(
				append(slices.Clone(g.orders), newOrders...),
				g.bins,
				append(slices.Clone(g.channels), newChannels...),
			)
		}
	} else {
		if !sameElements(g.orders, other.orders, func(a, b boc.Order) bool { return a == b }) {
			return &MismatchError{Reason: "different orders"}
		}
		if !sameElements(g.channels, other.channels, boc.Channel.Equal) {
			return &MismatchError{Reason: "different channels"}
		}

		bins, err := g.bins.Concat(other.bins)
		if err != nil {
			return &MismatchError{Reason: "different bins", cause: err}
		}

		binOffset = g.bins.Len()
		g.reshape(g.orders, bins, g.channels)
	}

	for cell, sg := range other.Cells() {
		if sg.IsEmpty() {
			continue
		}

		o := slices.Index(g.orders, other.orders[cell.Order])
		c := slices.IndexFunc(g.channels, other.channels[cell.Channel].Equal)
		i := g.index(o, binOffset+cell.Bin, c)

		g.subgrids[i] = subgrid.MergeInto(g.subgrids[i], sg, nil)
	}

	return nil
}

// reshape moves every subgrid whose order, bin and channel are still present
// into a grid with the given axes. Bins are matched by position.
func (g *Grid) reshape(orders []boc.Order, bins boc.Bins, channels []boc.Channel) {
	subgrids := make([]subgrid.Subgrid, len(orders)*bins.Len()*len(channels))
	for i := range subgrids {
		subgrids[i] = subgrid.Empty
	}

	for cell, sg := range g.Cells() {
		o := slices.Index(orders, g.orders[cell.Order])
		c := slices.IndexFunc(channels, g.channels[cell.Channel].Equal)
		if o < 0 || c < 0 || cell.Bin >= bins.Len() {
			continue
		}
		subgrids[(o*bins.Len()+cell.Bin)*len(channels)+c] = sg
	}

	g.subgrids = subgrids
	g.orders = orders
	g.bins = bins
	g.channels = channels
}

func containsChannel(channels []boc.Channel, c boc.Channel) bool {
	return slices.ContainsFunc(channels, c.Equal)
}

// sameElements reports whether a and b hold the same elements regardless of
// their sequence.
func sameElements[T any](a, b []T, eq func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && eq(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
