package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/testutil"
)

func newToyCmd(a *app) *cobra.Command {
	var (
		events int
		seed   int64
		limits []float64
	)

	cmd := &cobra.Command{
		Use:   "toy name",
		Short: "Fill a Drell-Yan-like toy grid from random events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := toyGrid(events, seed, limits)
			if err != nil {
				return err
			}
			return a.store.Save(cmd.Context(), args[0], g)
		},
	}

	f := cmd.Flags()
	f.IntVar(&events, "events", 1000, "number of events")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.Float64SliceVar(&limits, "bins", []float64{0, 0.25, 0.5, 0.75, 1, 1.5, 2, 2.5}, "bin limits of the rapidity")
	return cmd
}

// toyGrid fills a LO and an NLO order with the quark-antiquark and gluon
// channels of proton-proton collisions.
func toyGrid(events int, seed int64, limits []float64) (*grid.Grid, error) {
	bins, err := boc.NewBins(limits)
	if err != nil {
		return nil, err
	}

	var channels []boc.Channel
	for _, s := range []string{
		"1 * (2, -2) + 1 * (4, -4) + 1 * (1, -1) + 1 * (3, -3)",
		"1 * (21, 2) + 1 * (21, 1) + 1 * (2, 21) + 1 * (1, 21)",
	} {
		c, err := boc.ParseChannel(s)
		if err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}

	proton := convolution.NewConv(convolution.UnpolPDF, 2212)
	g, err := grid.New(
		[]boc.Order{boc.NewOrder(0, 2, 0, 0, 0), boc.NewOrder(1, 2, 0, 0, 0), boc.NewOrder(1, 2, 0, 1, 0)},
		channels, bins, interp.DefaultInterps(2), []convolution.Conv{proton, proton},
	)
	if err != nil {
		return nil, err
	}

	rng := testutil.NewRNG(seed)
	for _, ev := range rng.Events(events, 1e2, 1e4) {
		g.Fill(0, ev.Observable, 0, ev.Ntuple(), ev.Weight)
		g.Fill(1, ev.Observable, 0, ev.Ntuple(), 0.1*ev.Weight)
		g.Fill(1, ev.Observable, 1, ev.Ntuple(), 0.05*ev.Weight)
		g.Fill(2, ev.Observable, 0, ev.Ntuple(), -0.02*ev.Weight)
	}

	g.SetMetadata("description", "toy Drell-Yan rapidity distribution")
	g.SetMetadata("events", strconv.Itoa(events))
	return g, nil
}
