package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/sparsegrid"
	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/testutil"
)

type convolveFlags struct {
	members  int
	seed     int64
	spread   float64
	maxAs    int
	maxAl    int
	logs     bool
	bins     []int
	channels []int
	xis      []string
}

func newConvolveCmd(a *app) *cobra.Command {
	var flags convolveFlags

	cmd := &cobra.Command{
		Use:   "convolve name",
		Short: "Convolve a grid with toy distributions",
		Long: `Convolve evaluates a grid with a built-in toy parton distribution and
coupling. With --members greater than one, every member rescales the toy
distribution by a random factor and the per-bin mean and standard deviation
of the ensemble are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := a.store.Load(ctx, args[0])
			if err != nil {
				return err
			}

			sel, err := flags.selection(g)
			if err != nil {
				return err
			}

			res, err := sparsegrid.ConvolveEnsemble(ctx, g, flags.ensemble(g), sel, a.opts...)
			if err != nil {
				return err
			}
			return printResult(cmd, g, sel, res)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.members, "members", "n", 1, "number of ensemble members")
	f.Int64Var(&flags.seed, "seed", 42, "seed of the member factors")
	f.Float64Var(&flags.spread, "spread", 0.05, "relative spread of the member factors")
	f.IntVar(&flags.maxAs, "max-as", -1, "highest power of alpha_s beyond leading order (-1: all orders)")
	f.IntVar(&flags.maxAl, "max-al", 0, "highest power of alpha beyond leading order")
	f.BoolVar(&flags.logs, "logs", true, "include orders with scale logarithms")
	f.IntSliceVar(&flags.bins, "bins", nil, "bins to convolve (default: all)")
	f.IntSliceVar(&flags.channels, "channels", nil, "channels to include (default: all)")
	f.StringArrayVar(&flags.xis, "xi", nil, "scale variation as xir:xif[:xia], repeatable")
	return cmd
}

func (f convolveFlags) selection(g *grid.Grid) (sparsegrid.Selection, error) {
	sel := sparsegrid.Selection{Bins: f.bins}

	if f.maxAs >= 0 {
		sel.Orders = boc.CreateMask(g.Orders(), uint8(f.maxAs), uint8(max(f.maxAl, 0)), f.logs)
	}

	if len(f.channels) > 0 {
		sel.Channels = make([]bool, len(g.Channels()))
		for _, c := range f.channels {
			if c < 0 || c >= len(sel.Channels) {
				return sel, fmt.Errorf("channel %d out of range [0, %d)", c, len(sel.Channels))
			}
			sel.Channels[c] = true
		}
	}

	for _, s := range f.xis {
		xi, err := parseXi(s)
		if err != nil {
			return sel, err
		}
		sel.Xis = append(sel.Xis, xi)
	}
	return sel, nil
}

func (f convolveFlags) ensemble(g *grid.Grid) []sparsegrid.Member {
	rng := testutil.NewRNG(f.seed)
	convs := g.Convolutions()

	members := make([]sparsegrid.Member, max(f.members, 1))
	for i := range members {
		scale := 1.0
		if len(members) > 1 {
			scale = rng.Uniform(1-f.spread, 1+f.spread)
		}

		xfx := func(pid int32, x, q2 float64) float64 { return scale * testutil.ToyXFX(pid, x, q2) }
		dists := make([]convolution.XFX, len(convs))
		for j := range dists {
			dists[j] = xfx
		}

		members[i] = sparsegrid.Member{
			Name:   "toy-" + strconv.Itoa(i),
			Convs:  convs,
			XFX:    dists,
			AlphaS: testutil.ToyAlphaS,
		}
	}
	return members
}

func parseXi(s string) (convolution.Xi, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return convolution.Xi{}, fmt.Errorf("scale variation %q: want xir:xif[:xia]", s)
	}

	values := []float64{1, 1, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v <= 0 {
			return convolution.Xi{}, fmt.Errorf("scale variation %q: invalid factor %q", s, p)
		}
		values[i] = v
	}
	return convolution.Xi{R: values[0], F: values[1], A: values[2]}, nil
}

func printResult(cmd *cobra.Command, g *grid.Grid, sel sparsegrid.Selection, res *sparsegrid.EnsembleResult) error {
	bins := sel.Bins
	if len(bins) == 0 {
		bins = make([]int, g.Bins().Len())
		for i := range bins {
			bins[i] = i
		}
	}
	xis := sel.Xis
	if len(xis) == 0 {
		xis = []convolution.Xi{convolution.CentralXi}
	}

	t := newTable(cmd.OutOrStdout())
	header := "bin\tlo\thi\txir\txif\txia\tvalue"
	if len(res.Members) > 1 {
		header = "bin\tlo\thi\txir\txif\txia\tmean\tstddev"
	}
	fmt.Fprintln(t, header)

	for i, b := range bins {
		bin := g.Bins().Bin(b)
		for l, xi := range xis {
			k := l + len(xis)*i
			fmt.Fprintf(t, "%d\t%g\t%g\t%g\t%g\t%g\t%.7e", b, bin.Lo, bin.Hi, xi.R, xi.F, xi.A, res.Mean[k])
			if len(res.Members) > 1 {
				fmt.Fprintf(t, "\t%.3e", res.StdDev[k])
			}
			fmt.Fprintln(t)
		}
	}
	return t.Flush()
}
