package sparsegrid

import (
	"testing"

	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/testutil"
	"github.com/stretchr/testify/require"
)

var proton = convolution.NewConv(convolution.UnpolPDF, 2212)

func newGrid(t *testing.T, seed int64) *grid.Grid {
	t.Helper()

	bins, err := boc.NewBins([]float64{0, 0.5, 1, 2})
	require.NoError(t, err)

	var channels []boc.Channel
	for _, s := range []string{"1 * (2, -2) + 0.5 * (4, -4)", "1 * (21, 21)"} {
		c, err := boc.ParseChannel(s)
		require.NoError(t, err)
		channels = append(channels, c)
	}

	g, err := grid.New(
		[]boc.Order{boc.NewOrder(0, 2, 0, 0, 0), boc.NewOrder(1, 2, 0, 0, 0)},
		channels, bins, interp.DefaultInterps(2), []convolution.Conv{proton, proton},
	)
	require.NoError(t, err)

	rng := testutil.NewRNG(seed)
	for _, ev := range rng.Events(100, 1e2, 1e4) {
		g.Fill(0, ev.Observable, 0, ev.Ntuple(), ev.Weight)
		g.Fill(1, ev.Observable, 1, ev.Ntuple(), 0.1*ev.Weight)
	}
	return g
}

func toyMember(name string, scale float64) Member {
	xfx := func(pid int32, x, q2 float64) float64 { return scale * testutil.ToyXFX(pid, x, q2) }
	return Member{
		Name:   name,
		Convs:  []convolution.Conv{proton},
		XFX:    []convolution.XFX{xfx},
		AlphaS: testutil.ToyAlphaS,
	}
}
