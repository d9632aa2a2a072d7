package subgrid

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/packed"
	"gonum.org/v1/gonum/floats/scalar"
)

// InterpSubgrid is a subgrid filled through Lagrange interpolation. Values
// are stored divided by the reweighting factors and multiplied back by All.
type InterpSubgrid struct {
	array   *packed.Array
	interps []interp.Interp
	// static holds per axis the single value every sample had so far. A
	// negative entry means no sample was seen, NaN that samples differed.
	static []float64
}

// NewInterp creates an empty subgrid with one axis per interpolation.
func NewInterp(interps []interp.Interp) *InterpSubgrid {
	shape := make([]int, len(interps))
	static := make([]float64, len(interps))
	for d, in := range interps {
		shape[d] = in.Nodes()
		static[d] = -1
	}

	return &InterpSubgrid{
		array:   packed.New(shape),
		interps: slices.Clone(interps),
		static:  static,
	}
}

// RestoreInterp recreates a subgrid from its parts as returned by Array,
// Interps and StaticNodes. A nil static marks every axis as non-static.
func RestoreInterp(interps []interp.Interp, array *packed.Array, static []float64) (*InterpSubgrid, error) {
	shape := array.Shape()
	if len(shape) != len(interps) {
		return nil, fmt.Errorf("subgrid: %d interpolations for a rank-%d array", len(interps), len(shape))
	}
	for d, in := range interps {
		if in.Nodes() != shape[d] {
			return nil, fmt.Errorf("subgrid: axis %d has %d nodes but extent %d", d, in.Nodes(), shape[d])
		}
	}

	if static == nil {
		static = make([]float64, len(interps))
		for d := range static {
			static[d] = math.NaN()
		}
	} else if len(static) != len(interps) {
		return nil, fmt.Errorf("subgrid: %d static nodes for %d axes", len(static), len(interps))
	}

	return &InterpSubgrid{
		array:   array,
		interps: slices.Clone(interps),
		static:  slices.Clone(static),
	}, nil
}

func (*InterpSubgrid) sealed() {}

// Kind returns KindInterp.
func (*InterpSubgrid) Kind() Kind { return KindInterp }

// Interps returns the interpolations of the axes.
func (s *InterpSubgrid) Interps() []interp.Interp { return s.interps }

// Array returns the raw, not reweighted, values. It must not be modified.
func (s *InterpSubgrid) Array() *packed.Array { return s.array }

// StaticNodes returns per axis the value shared by all samples, a negative
// number if there was no sample and NaN if the samples differed.
func (s *InterpSubgrid) StaticNodes() []float64 { return slices.Clone(s.static) }

// Fill interpolates weight at ntuple into the subgrid.
func (s *InterpSubgrid) Fill(interps []interp.Interp, ntuple []float64, weight float64) {
	if !interp.Interpolate(interps, ntuple, weight, s.array) {
		return
	}

	for d, v := range ntuple {
		prev := s.static[d]
		switch {
		case math.IsNaN(prev):
		case prev < 0:
			s.static[d] = v
		case !scalar.EqualWithinULP(prev, v, staticULPs):
			s.static[d] = math.NaN()
		}
	}
}

// NodeValues returns the node values of every interpolation.
func (s *InterpSubgrid) NodeValues() [][]float64 {
	nodes := make([][]float64, len(s.interps))
	for d, in := range s.interps {
		nodes[d] = in.NodeValues()
	}
	return nodes
}

func (s *InterpSubgrid) IsEmpty() bool { return s.array.IsEmpty() }

// Compatible reports whether other can be merged into s without a change of
// representation.
func (s *InterpSubgrid) Compatible(other Subgrid, transpose *Transpose) bool {
	o, ok := other.(*InterpSubgrid)
	if !ok || len(o.interps) != len(s.interps) {
		return false
	}

	interps := slices.Clone(o.interps)
	if transpose != nil {
		interps[transpose.A], interps[transpose.B] = interps[transpose.B], interps[transpose.A]
	}
	for d, in := range interps {
		if !in.Equal(s.interps[d]) {
			return false
		}
	}
	return true
}

// Merge adds the raw values of other, which must be an InterpSubgrid with
// the same interpolations after transposition.
func (s *InterpSubgrid) Merge(other Subgrid, transpose *Transpose) {
	if !s.Compatible(other, transpose) {
		panic(fmt.Sprintf("InterpSubgrid can't merge a %s subgrid with different interpolations", other.Kind()))
	}
	o := other.(*InterpSubgrid)

	for index, v := range o.array.All() {
		transpose.apply(index)
		s.array.Add(index, v)
	}

	static := slices.Clone(o.static)
	if transpose != nil {
		static[transpose.A], static[transpose.B] = static[transpose.B], static[transpose.A]
	}
	for d, v := range static {
		prev := s.static[d]
		switch {
		case math.IsNaN(prev) || v < 0:
		case math.IsNaN(v) || prev < 0:
			s.static[d] = v
		case !scalar.EqualWithinULP(prev, v, staticULPs):
			s.static[d] = math.NaN()
		}
	}
}

func (s *InterpSubgrid) Scale(factor float64) { s.array.Scale(factor) }

// Symmetrize folds values with index[b] < index[a] onto the mirrored
// coordinate. The diagonal is left untouched.
func (s *InterpSubgrid) Symmetrize(a, b int) {
	s.array = symmetrizeArray(s.array, a, b)
}

// OptimizeNodes collapses every axis on which all samples had the same value
// into a single node at that value.
func (s *InterpSubgrid) OptimizeNodes() {
	collapse := make([]bool, len(s.static))
	collapsed := false
	for d, v := range s.static {
		collapse[d] = v >= 0 && s.interps[d].Nodes() > 1
		collapsed = collapsed || collapse[d]
	}
	if !collapsed {
		return
	}

	shape := slices.Clone(s.array.Shape())
	for d := range shape {
		if collapse[d] {
			shape[d] = 1
		}
	}

	array := packed.New(shape)
	for index, v := range s.array.All() {
		for d := range index {
			if collapse[d] {
				index[d] = 0
			}
		}
		array.Add(index, v)
	}
	s.array = array

	for d, in := range s.interps {
		if collapse[d] {
			s.interps[d] = interp.MustNew(s.static[d], s.static[d], 1, 0, in.ReweightMeth(), in.Map(), in.Meth())
		}
	}
}

// All yields the values multiplied by the reweighting factor of every axis at
// the node value.
func (s *InterpSubgrid) All() iter.Seq2[[]int, float64] {
	return func(yield func([]int, float64) bool) {
		reweights := make([][]float64, len(s.interps))
		for d, in := range s.interps {
			nodes := in.NodeValues()
			reweights[d] = make([]float64, len(nodes))
			for k, x := range nodes {
				reweights[d][k] = in.Reweight(x)
			}
		}

		for index, v := range s.array.All() {
			for d, k := range index {
				v *= reweights[d][k]
			}
			if !yield(index, v) {
				return
			}
		}
	}
}

func (s *InterpSubgrid) Stats() Stats { return arrayStats(s.array) }

func (s *InterpSubgrid) Shape() []int { return s.array.Shape() }

func (s *InterpSubgrid) Clone() Subgrid {
	return &InterpSubgrid{
		array:   s.array.Clone(),
		interps: slices.Clone(s.interps),
		static:  slices.Clone(s.static),
	}
}

func symmetrizeArray(array *packed.Array, a, b int) *packed.Array {
	folded := packed.New(array.Shape())
	for index, v := range array.All() {
		if index[b] < index[a] {
			index[a], index[b] = index[b], index[a]
		}
		folded.Add(index, v)
	}
	return folded
}
