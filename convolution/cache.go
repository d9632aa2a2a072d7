package convolution

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/sparsegrid/pids"
	"github.com/hupe1980/sparsegrid/subgrid"
)

// ErrUnpreparedNode is returned by Pass.SetSubgrid for a node that was not
// part of the nodes given to Cache.Begin.
var ErrUnpreparedNode = errors.New("convolution: node not prepared by Begin")

// XFX returns x times the distribution of parton pid at momentum fraction x
// and squared scale q2.
type XFX func(pid int32, x, q2 float64) float64

// AlphaS returns the strong coupling at squared scale q2.
type AlphaS func(q2 float64) float64

// Xi holds the factors by which the renormalization (R), factorization (F)
// and fragmentation (A) scales are varied.
type Xi struct {
	R, F, A float64
}

// CentralXi is the scale choice without variation.
var CentralXi = Xi{R: 1, F: 1, A: 1}

func (xi Xi) kinds() [scaleKinds]float64 { return [scaleKinds]float64{xi.R, xi.F, xi.A} }

const (
	renIdx = iota
	facIdx
	frgIdx
	scaleKinds
)

// Stats counts callback invocations and memo hits.
type Stats struct {
	XFXCalls    int
	AlphaSCalls int
	Hits        int
}

type memoKey struct {
	pid  int32
	ix   int
	imu2 int
}

type slot struct {
	conv Conv
	xfx  XFX
	memo map[memoKey]float64
}

// Cache memoizes distribution and coupling evaluations.
type Cache struct {
	slots  []slot
	alphas AlphaS

	alphasMemo []float64
	alphasSeen []bool

	mu2   [scaleKinds][]float64
	xGrid []float64

	stats Stats
}

// NewCache creates a cache with one distribution per convolution. It panics
// if convs and xfx differ in length.
func NewCache(convs []Conv, xfx []XFX, alphas AlphaS) *Cache {
	if len(convs) != len(xfx) {
		panic(fmt.Sprintf("convolution: %d convolutions but %d distributions", len(convs), len(xfx)))
	}

	slots := make([]slot, len(convs))
	for i := range convs {
		slots[i] = slot{conv: convs[i], xfx: xfx[i], memo: make(map[memoKey]float64)}
	}

	return &Cache{slots: slots, alphas: alphas}
}

// Clear drops every memoized value and the prepared nodes.
func (c *Cache) Clear() {
	for i := range c.slots {
		clear(c.slots[i].memo)
	}
	c.alphasMemo = c.alphasMemo[:0]
	c.alphasSeen = c.alphasSeen[:0]
	for k := range c.mu2 {
		c.mu2[k] = c.mu2[k][:0]
	}
	c.xGrid = c.xGrid[:0]
}

// Stats returns the callback counts accumulated since the cache was created.
func (c *Cache) Stats() Stats { return c.stats }

// Begin clears the cache and prepares a pass over subgrids with the given
// node axes. Every entry of nodes holds the axes of one subgrid: the squared
// scale first, then one momentum-fraction axis per convolution of the grid.
func (c *Cache) Begin(gridConvs []Conv, nodes [][][]float64, xis []Xi) (*Pass, error) {
	perm, err := c.permutation(gridConvs)
	if err != nil {
		return nil, err
	}

	c.Clear()

	for k := range scaleKinds {
		factors := make([]float64, 0, len(xis))
		for _, xi := range xis {
			factors = append(factors, xi.kinds()[k])
		}
		slices.Sort(factors)
		factors = slices.Compact(factors)

		for _, axes := range nodes {
			if len(axes) == 0 {
				continue
			}
			for _, q2 := range axes[0] {
				for _, f := range factors {
					c.mu2[k] = append(c.mu2[k], f*f*q2)
				}
			}
		}
		slices.Sort(c.mu2[k])
		c.mu2[k] = slices.Compact(c.mu2[k])
	}

	for _, axes := range nodes {
		for _, axis := range axes[min(1, len(axes)):] {
			c.xGrid = append(c.xGrid, axis...)
		}
	}
	slices.Sort(c.xGrid)
	c.xGrid = slices.Compact(c.xGrid)

	n := len(c.mu2[renIdx])
	c.alphasMemo = slices.Grow(c.alphasMemo[:0], n)[:n]
	c.alphasSeen = slices.Grow(c.alphasSeen[:0], n)[:n]
	clear(c.alphasSeen)

	return &Pass{cache: c, perm: perm}, nil
}

// permutation maps every grid convolution to a cache slot. Convolution i is
// matched against the first i+1 slots, preferring later ones.
func (c *Cache) permutation(gridConvs []Conv) ([]permEntry, error) {
	perm := make([]permEntry, len(gridConvs))

	for i, gc := range gridConvs {
		found := false
		for idx := min(i, len(c.slots)-1); idx >= 0; idx-- {
			conv := c.slots[idx].conv
			if gc == conv {
				perm[i] = permEntry{slot: idx}
			} else if gc == conv.CC() {
				perm[i] = permEntry{slot: idx, cc: true}
			} else {
				continue
			}
			found = true
			break
		}
		if !found {
			return nil, &ConvolutionMismatchError{Index: i, Conv: gc}
		}
	}

	return perm, nil
}

func (c *Cache) alphasAt(imu2 int) float64 {
	if !c.alphasSeen[imu2] {
		c.alphasMemo[imu2] = c.alphas(c.mu2[renIdx][imu2])
		c.alphasSeen[imu2] = true
		c.stats.AlphaSCalls++
	}
	return c.alphasMemo[imu2]
}

type permEntry struct {
	slot int
	cc   bool
}

// Pass evaluates the products of distributions for the subgrids of one grid.
// It is valid until the next call to Begin or Clear of its cache.
type Pass struct {
	cache *Cache
	perm  []permEntry

	imu2 [scaleKinds][]int
	ix   [][]int
}

// SetSubgrid selects the node axes subsequent FxProd indices refer to.
func (p *Pass) SetSubgrid(nodes [][]float64, xi Xi) error {
	if len(nodes) != 1+len(p.perm) {
		return fmt.Errorf("convolution: subgrid has %d axes, want %d", len(nodes), 1+len(p.perm))
	}

	c := p.cache
	for k, f := range xi.kinds() {
		p.imu2[k] = p.imu2[k][:0]
		for _, q2 := range nodes[0] {
			pos, err := position(c.mu2[k], f*f*q2)
			if err != nil {
				return err
			}
			p.imu2[k] = append(p.imu2[k], pos)
		}
	}

	p.ix = slices.Grow(p.ix[:0], len(p.perm))[:len(p.perm)]
	for d := range p.perm {
		p.ix[d] = p.ix[d][:0]
		for _, x := range nodes[1+d] {
			pos, err := position(c.xGrid, x)
			if err != nil {
				return err
			}
			p.ix[d] = append(p.ix[d], pos)
		}
	}

	return nil
}

// FxProd returns the product of xfx(pid, x, μ²)/x over all convolutions,
// times α_s to the power alphasOrder. index addresses a node of the current
// subgrid: the scale node first, then one momentum-fraction node per
// convolution.
func (p *Pass) FxProd(partons []int32, alphasOrder uint8, index []int) float64 {
	c := p.cache
	iq := index[0]
	prod := 1.0

	for d, pid := range partons {
		pe := p.perm[d]
		if pe.cc {
			pid = pids.ChargeConjugatePDG(pid)
		}

		s := &c.slots[pe.slot]
		kind := frgIdx
		if s.conv.Type.IsPDF() {
			kind = facIdx
		}

		key := memoKey{pid: pid, ix: p.ix[d][index[1+d]], imu2: p.imu2[kind][iq]}
		v, ok := s.memo[key]
		if ok {
			c.stats.Hits++
		} else {
			x := c.xGrid[key.ix]
			v = s.xfx(pid, x, c.mu2[kind][key.imu2]) / x
			s.memo[key] = v
			c.stats.XFXCalls++
		}
		prod *= v
	}

	if alphasOrder != 0 {
		prod *= math.Pow(c.alphasAt(p.imu2[renIdx][iq]), float64(alphasOrder))
	}

	return prod
}

func position(values []float64, v float64) (int, error) {
	pos := slices.IndexFunc(values, func(w float64) bool { return subgrid.NodeValueEq(w, v) })
	if pos < 0 {
		return 0, fmt.Errorf("%w: %g", ErrUnpreparedNode, v)
	}
	return pos, nil
}
