package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/sparsegrid/grid"
	"github.com/hupe1980/sparsegrid/pids"
	"github.com/hupe1980/sparsegrid/subgrid"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List stored grids",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			names, err := a.store.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm name...",
		Short: "Remove stored grids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := a.store.Delete(cmd.Context(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info name",
		Short: "Show orders, channels, bins and metadata of a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

func printInfo(w io.Writer, g *grid.Grid) {
	t := newTable(w)

	fmt.Fprintln(t, "convolutions:")
	for i, c := range g.Convolutions() {
		fmt.Fprintf(t, "  %d\t%s\n", i, c)
	}

	fmt.Fprintln(t, "orders:")
	for i, o := range g.Orders() {
		fmt.Fprintf(t, "  %d\t%s\n", i, o)
	}

	fmt.Fprintln(t, "channels:")
	for i, c := range g.Channels() {
		fmt.Fprintf(t, "  %d\t%s\n", i, c)
	}

	bins := g.Bins()
	fmt.Fprintln(t, "bins:")
	for i := range bins.Len() {
		b := bins.Bin(i)
		fmt.Fprintf(t, "  %d\t[%g, %g)\tnorm %g\n", i, b.Lo, b.Hi, b.Normalization)
	}

	fmt.Fprintln(t, "interpolation:")
	for i, ip := range g.Interps() {
		fmt.Fprintf(t, "  %d\t[%g, %g]\t%d nodes\torder %d\n", i, ip.Min(), ip.Max(), ip.Nodes(), ip.Order())
	}

	md := g.Metadata()
	if len(md) > 0 {
		fmt.Fprintln(t, "metadata:")
		for _, k := range slices.Sorted(maps.Keys(md)) {
			fmt.Fprintf(t, "  %s\t%s\n", k, md[k])
		}
	}

	total := len(g.Orders()) * bins.Len() * len(g.Channels())
	fmt.Fprintf(t, "populated cells:\t%d of %d\n", g.NonEmpty().GetCardinality(), total)
	t.Flush()
}

func newSubgridsCmd(a *app) *cobra.Command {
	var showEmpty bool

	cmd := &cobra.Command{
		Use:   "subgrids name",
		Short: "List the subgrids of a grid with their storage statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			fmt.Fprintln(t, "order\tbin\tchannel\tkind\tshape\tallocated\tzeros\tsum")
			for cell, sg := range g.Cells() {
				if sg.IsEmpty() && !showEmpty {
					continue
				}
				st := sg.Stats()
				fmt.Fprintf(t, "%d\t%d\t%d\t%s\t%v\t%d\t%d\t%.6e\n",
					cell.Order, cell.Bin, cell.Channel, sg.Kind(), sg.Shape(),
					st.Allocated, st.Zeros, subgrid.Sum(sg))
			}
			return t.Flush()
		},
	}
	cmd.Flags().BoolVar(&showEmpty, "empty", false, "include empty subgrids")
	return cmd
}

func newMergeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge target source...",
		Short: "Merge grids into a new grid",
		Long: `Merge adds the sources in order. Grids must share convolutions and
interpolation; bins, orders and channels are combined.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.store.Merge(cmd.Context(), args[0], args[1:]...)
		},
	}
}

func newScaleCmd(a *app) *cobra.Command {
	var (
		factor                               float64
		alphas, alpha, logxir, logxif, logxa float64
		binFactors                           []float64
		output                               string
	)

	cmd := &cobra.Command{
		Use:   "scale name",
		Short: "Multiply a grid by constant, per-order or per-bin factors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := a.store.Load(ctx, args[0])
			if err != nil {
				return err
			}

			f := cmd.Flags()
			byOrder := f.Changed("alphas") || f.Changed("alpha") || f.Changed("logxir") || f.Changed("logxif") || f.Changed("logxia")
			if byOrder {
				g.ScaleByOrder(alphas, alpha, logxir, logxif, logxa, factor)
			} else {
				g.Scale(factor)
			}
			if len(binFactors) > 0 {
				g.ScaleByBin(binFactors)
			}

			if output == "" {
				output = args[0]
			}
			return a.store.Save(ctx, output, g)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&factor, "factor", 1, "global factor")
	f.Float64Var(&alphas, "alphas", 1, "factor per power of alpha_s")
	f.Float64Var(&alpha, "alpha", 1, "factor per power of alpha")
	f.Float64Var(&logxir, "logxir", 1, "factor per power of the renormalization log")
	f.Float64Var(&logxif, "logxif", 1, "factor per power of the factorization log")
	f.Float64Var(&logxa, "logxia", 1, "factor per power of the fragmentation log")
	f.Float64SliceVar(&binFactors, "bins", nil, "factor per bin")
	f.StringVarP(&output, "output", "o", "", "name of the scaled grid (default: overwrite)")
	return cmd
}

func newOptimizeCmd(a *app) *cobra.Command {
	var symmetrize bool

	cmd := &cobra.Command{
		Use:   "optimize name",
		Short: "Convert subgrids to their most compact form and drop empty orders and channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !symmetrize {
				return a.store.Optimize(ctx, args[0])
			}

			g, err := a.store.Load(ctx, args[0])
			if err != nil {
				return err
			}
			g.SymmetrizeChannels()
			if err := a.store.Save(ctx, args[0], g); err != nil {
				return err
			}
			return a.store.Optimize(ctx, args[0])
		},
	}
	cmd.Flags().BoolVar(&symmetrize, "symmetrize", false, "fold channels that are transposes of each other first")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var bins, channels, orders []int

	cmd := &cobra.Command{
		Use:   "delete name",
		Short: "Remove bins, channels or orders from a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := a.store.Load(ctx, args[0])
			if err != nil {
				return err
			}

			if len(bins) > 0 {
				if err := g.DeleteBins(bins); err != nil {
					return err
				}
			}
			if len(channels) > 0 {
				if err := g.DeleteChannels(channels); err != nil {
					return err
				}
			}
			if len(orders) > 0 {
				if err := g.DeleteOrders(orders); err != nil {
					return err
				}
			}
			return a.store.Save(ctx, args[0], g)
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&bins, "bins", nil, "bin indices to remove")
	f.IntSliceVar(&channels, "channels", nil, "channel indices to remove")
	f.IntSliceVar(&orders, "orders", nil, "order indices to remove")
	return cmd
}

func newBasisCmd(a *app) *cobra.Command {
	var rotate string

	cmd := &cobra.Command{
		Use:   "basis name",
		Short: "Report or rotate the parton id basis the channels of a grid are written in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := a.store.Load(ctx, args[0])
			if err != nil {
				return err
			}

			if rotate != "" {
				to, err := pids.ParseBasis(rotate)
				if err != nil {
					return err
				}
				if err := g.RotatePIDBasis(to); err != nil {
					return err
				}
				if err := a.store.Save(ctx, args[0], g); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", g.PIDBasis(), g.ChannelPIDs())
			return nil
		},
	}
	cmd.Flags().StringVar(&rotate, "rotate", "", "rewrite the channels in this basis (pdg)")
	return cmd
}

func newCCCmd(a *app) *cobra.Command {
	var convs []int

	cmd := &cobra.Command{
		Use:   "cc name",
		Short: "Charge conjugate convolutions of a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := a.store.Load(ctx, args[0])
			if err != nil {
				return err
			}
			for _, d := range convs {
				if err := g.ChargeConjugate(d); err != nil {
					return err
				}
			}
			return a.store.Save(ctx, args[0], g)
		},
	}
	cmd.Flags().IntSliceVar(&convs, "convs", []int{0}, "indices of the convolutions to conjugate")
	return cmd
}
