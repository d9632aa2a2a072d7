package grid

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/internal/conv"
	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/subgrid"
)

// Grid holds one subgrid per (order, bin, channel).
type Grid struct {
	subgrids []subgrid.Subgrid
	orders   []boc.Order
	channels []boc.Channel
	bins     boc.Bins
	interps  []interp.Interp
	convs    []convolution.Conv
	metadata map[string]string
}

// Cell addresses one subgrid of a grid.
type Cell struct {
	Order, Bin, Channel int
}

// New creates a grid with empty subgrids. Every channel must name one parton
// per convolution, and there must be one interpolation for the scale and one
// per convolution.
func New(orders []boc.Order, channels []boc.Channel, bins boc.Bins, interps []interp.Interp, convs []convolution.Conv) (*Grid, error) {
	if bins.Len() == 0 {
		return nil, fmt.Errorf("%w: no bins", ErrInvalid)
	}
	if len(convs) == 0 {
		return nil, fmt.Errorf("%w: no convolutions", ErrInvalid)
	}
	if len(interps) != 1+len(convs) {
		return nil, fmt.Errorf("%w: %d interpolations for %d convolutions", ErrInvalid, len(interps), len(convs))
	}
	for i, ch := range channels {
		if ch.Arity() != len(convs) {
			return nil, fmt.Errorf("%w: channel %d has %d partons, expected %d", ErrInvalid, i, ch.Arity(), len(convs))
		}
	}

	cells := len(orders) * bins.Len() * len(channels)
	if _, err := conv.IntToUint32(cells); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	g := &Grid{
		orders:   slices.Clone(orders),
		channels: slices.Clone(channels),
		bins:     bins,
		interps:  slices.Clone(interps),
		convs:    slices.Clone(convs),
		metadata: make(map[string]string),
	}
	g.subgrids = make([]subgrid.Subgrid, cells)
	for i := range g.subgrids {
		g.subgrids[i] = subgrid.Empty
	}

	return g, nil
}

func (g *Grid) Orders() []boc.Order { return slices.Clone(g.orders) }

func (g *Grid) Channels() []boc.Channel { return slices.Clone(g.channels) }

func (g *Grid) Bins() boc.Bins { return g.bins }

func (g *Grid) Interps() []interp.Interp { return slices.Clone(g.interps) }

func (g *Grid) Convolutions() []convolution.Conv { return slices.Clone(g.convs) }

// Metadata returns a copy of the key-value metadata.
func (g *Grid) Metadata() map[string]string { return maps.Clone(g.metadata) }

// SetMetadata sets a metadata entry. An empty value removes the key.
func (g *Grid) SetMetadata(key, value string) {
	if value == "" {
		delete(g.metadata, key)
		return
	}
	g.metadata[key] = value
}

func (g *Grid) index(o, b, c int) int {
	return (o*g.bins.Len()+b)*len(g.channels) + c
}

func (g *Grid) cell(i int) Cell {
	nc := len(g.channels)
	nb := g.bins.Len()
	return Cell{Order: i / (nb * nc), Bin: i / nc % nb, Channel: i % nc}
}

// CellAt returns the cell with flattened index i as used by NonEmpty.
func (g *Grid) CellAt(i int) (Cell, bool) {
	if i < 0 || i >= len(g.subgrids) {
		return Cell{}, false
	}
	return g.cell(i), true
}

func (g *Grid) checkCell(o, b, c int) error {
	if o < 0 || o >= len(g.orders) || b < 0 || b >= g.bins.Len() || c < 0 || c >= len(g.channels) {
		return fmt.Errorf("%w: (%d, %d, %d) in grid of shape (%d, %d, %d)",
			ErrOutOfRange, o, b, c, len(g.orders), g.bins.Len(), len(g.channels))
	}
	return nil
}

// Subgrid returns the subgrid of order o, bin b and channel c. It panics if
// the cell is out of range.
func (g *Grid) Subgrid(o, b, c int) subgrid.Subgrid {
	if err := g.checkCell(o, b, c); err != nil {
		panic(err)
	}
	return g.subgrids[g.index(o, b, c)]
}

// SetSubgrid replaces the subgrid of order o, bin b and channel c. A nil
// subgrid is stored as subgrid.Empty.
func (g *Grid) SetSubgrid(o, b, c int, sg subgrid.Subgrid) error {
	if err := g.checkCell(o, b, c); err != nil {
		return err
	}
	if sg == nil {
		sg = subgrid.Empty
	}
	if n := len(sg.NodeValues()); !sg.IsEmpty() && n != len(g.interps) {
		return fmt.Errorf("%w: subgrid of rank %d in grid of rank %d", ErrInvalid, n, len(g.interps))
	}
	g.subgrids[g.index(o, b, c)] = sg
	return nil
}

// Cells yields every cell with its subgrid, orders outermost.
func (g *Grid) Cells() iter.Seq2[Cell, subgrid.Subgrid] {
	return func(yield func(Cell, subgrid.Subgrid) bool) {
		for i, sg := range g.subgrids {
			if !yield(g.cell(i), sg) {
				return
			}
		}
	}
}

// NonEmpty returns the flattened indices, order-major, of every populated
// cell.
func (g *Grid) NonEmpty() *roaring.Bitmap {
	bm := roaring.New()
	for i, sg := range g.subgrids {
		if !sg.IsEmpty() {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Fill adds an event with the given weight. ntuple holds the squared scale
// followed by one momentum fraction per convolution. Events whose observable
// lies outside the bins are dropped. It panics if order or channel is out
// of range.
func (g *Grid) Fill(order int, observable float64, channel int, ntuple []float64, weight float64) {
	if err := g.checkCell(order, 0, channel); err != nil {
		panic(err)
	}
	b, ok := g.bins.FillIndex(observable)
	if !ok {
		return
	}

	i := g.index(order, b, channel)
	if g.subgrids[i].Kind() == subgrid.KindEmpty {
		g.subgrids[i] = subgrid.NewInterp(g.interps)
	}
	g.subgrids[i].Fill(g.interps, ntuple, weight)
}

// FillAll fills one event into every channel, weights[c] being the weight
// of channel c. It panics if weights has more entries than the grid has
// channels.
func (g *Grid) FillAll(order int, observable float64, ntuple []float64, weights []float64) {
	if err := g.checkCell(order, 0, len(weights)-1); len(weights) > 0 && err != nil {
		panic(err)
	}
	for c, w := range weights {
		g.Fill(order, observable, c, ntuple, w)
	}
}
