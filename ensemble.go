package sparsegrid

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/sparsegrid/convolution"
	"github.com/hupe1980/sparsegrid/grid"
)

// Member is one set of distributions of an ensemble, such as one replica
// of a PDF fit. XFX holds one callback per entry of Convs.
type Member struct {
	Name   string
	Convs  []convolution.Conv
	XFX    []convolution.XFX
	AlphaS convolution.AlphaS
}

// Selection restricts a convolution. The zero value selects every order,
// bin and channel at the central scale.
type Selection struct {
	Orders   []bool
	Bins     []int
	Channels []bool
	Xis      []convolution.Xi
}

func (s Selection) xis() []convolution.Xi {
	if len(s.Xis) == 0 {
		return []convolution.Xi{convolution.CentralXi}
	}
	return s.Xis
}

// EnsembleResult holds the predictions of every member and their per-entry
// mean and standard deviation. Entries are laid out as returned by
// grid.Grid.Convolve.
type EnsembleResult struct {
	Members [][]float64
	Mean    []float64
	StdDev  []float64
}

// Convolve convolves g with the distributions of a single member.
func Convolve(ctx context.Context, g *grid.Grid, m Member, sel Selection, optFns ...Option) ([]float64, error) {
	o := applyOptions(optFns)
	return convolveMember(ctx, g, 0, m, sel, o)
}

// ConvolveEnsemble convolves g with every member concurrently, running at
// most WithMaxWorkers members at once. The grid is only read. The first
// failing member cancels the others and is returned as a *MemberError.
func ConvolveEnsemble(ctx context.Context, g *grid.Grid, members []Member, sel Selection, optFns ...Option) (res *EnsembleResult, err error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	o := applyOptions(optFns)
	start := time.Now()
	var failed atomic.Int32
	defer func() {
		o.logger.LogEnsemble(ctx, len(members), int(failed.Load()), time.Since(start), err)
		o.metricsCollector.RecordEnsemble(len(members), time.Since(start), err)
	}()

	results := make([][]float64, len(members))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, m := range members {
		eg.Go(func() error {
			if err := o.controller.AcquireWorker(egCtx); err != nil {
				return err
			}
			defer o.controller.ReleaseWorker()

			values, err := convolveMember(egCtx, g, i, m, sel, o)
			if err != nil {
				failed.Add(1)
				return &MemberError{Index: i, Name: m.Name, cause: err}
			}
			results[i] = values
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return reduceEnsemble(results), nil
}

func convolveMember(ctx context.Context, g *grid.Grid, index int, m Member, sel Selection, o options) (values []float64, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.XFX) != len(m.Convs) {
		return nil, &MismatchError{Reason: fmt.Sprintf("%d distributions for %d convolutions", len(m.XFX), len(m.Convs))}
	}

	logger := o.logger.WithMember(index, m.Name)

	start := time.Now()
	cache := convolution.NewCache(m.Convs, m.XFX, m.AlphaS)
	defer func() {
		if r := recover(); r != nil {
			values, err = nil, fmt.Errorf("distribution callback panicked: %v", r)
		}
		st := cache.Stats()
		logger.LogConvolve(ctx, len(values), st.XFXCalls, st.Hits, time.Since(start), err)
		o.metricsCollector.RecordConvolution(st.XFXCalls, st.Hits, time.Since(start), err)
	}()

	values, err = g.Convolve(cache, sel.Orders, sel.Bins, sel.Channels, sel.xis())
	return values, translateError(err)
}

func reduceEnsemble(results [][]float64) *EnsembleResult {
	n := len(results[0])
	res := &EnsembleResult{
		Members: results,
		Mean:    make([]float64, n),
		StdDev:  make([]float64, n),
	}

	column := make([]float64, len(results))
	for j := range n {
		for i, r := range results {
			column[i] = r[j]
		}
		if len(results) == 1 {
			res.Mean[j] = column[0]
			continue
		}
		mean, std := stat.MeanStdDev(column, nil)
		if math.IsNaN(std) {
			std = 0
		}
		res.Mean[j], res.StdDev[j] = mean, std
	}
	return res
}
