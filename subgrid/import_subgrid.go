package subgrid

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/packed"
)

// ImportSubgrid holds precomputed values on explicit node axes. Its values
// are returned as stored.
type ImportSubgrid struct {
	array *packed.Array
	nodes [][]float64
}

// NewImport creates a subgrid from array and one node axis per dimension of
// array. It panics if the extents of array and nodes differ.
func NewImport(array *packed.Array, nodes [][]float64) *ImportSubgrid {
	shape := array.Shape()
	if len(shape) != len(nodes) {
		panic(fmt.Sprintf("subgrid: %d node axes for a rank-%d array", len(nodes), len(shape)))
	}
	for d, axis := range nodes {
		if len(axis) != shape[d] {
			panic(fmt.Sprintf("subgrid: axis %d has %d nodes but extent %d", d, len(axis), shape[d]))
		}
	}

	return &ImportSubgrid{array: array, nodes: cloneNodes(nodes)}
}

func (*ImportSubgrid) sealed() {}

// Kind returns KindImport.
func (*ImportSubgrid) Kind() Kind { return KindImport }

// Array returns the stored values. It must not be modified.
func (s *ImportSubgrid) Array() *packed.Array { return s.array }

// Fill panics.
func (*ImportSubgrid) Fill([]interp.Interp, []float64, float64) {
	panic("ImportSubgrid doesn't support the fill operation")
}

func (s *ImportSubgrid) NodeValues() [][]float64 { return cloneNodes(s.nodes) }

func (s *ImportSubgrid) IsEmpty() bool { return s.array.IsEmpty() }

// Merge adds the values of other. If the node axes of both subgrids differ,
// the axes of s grow to the sorted union of both.
func (s *ImportSubgrid) Merge(other Subgrid, transpose *Transpose) {
	if other.IsEmpty() {
		return
	}

	rhs := transpose.applyNodes(other.NodeValues())
	if len(rhs) != len(s.nodes) {
		panic(fmt.Sprintf("subgrid: can't merge a rank-%d subgrid into a rank-%d subgrid", len(rhs), len(s.nodes)))
	}

	var rhsMap [][]int
	if NodeAxesEq(s.nodes, rhs) {
		rhsMap = identityMaps(s.nodes)
	} else {
		union := make([][]float64, len(s.nodes))
		for d := range union {
			union[d] = unionAxis(s.nodes[d], rhs[d])
		}

		s.remap(union, mapAxes(union, s.nodes))
		rhsMap = mapAxes(union, rhs)
	}

	target := make([]int, len(s.nodes))
	for index, v := range other.All() {
		transpose.apply(index)
		for d, k := range index {
			target[d] = rhsMap[d][k]
		}
		s.array.Add(target, v)
	}
}

func (s *ImportSubgrid) Scale(factor float64) { s.array.Scale(factor) }

// Symmetrize folds values with index[b] < index[a] onto the mirrored
// coordinate. If the axes a and b differ they are first extended to their
// union.
func (s *ImportSubgrid) Symmetrize(a, b int) {
	if !nodeAxisEq(s.nodes[a], s.nodes[b]) {
		union := unionAxis(s.nodes[a], s.nodes[b])
		nodes := cloneNodes(s.nodes)
		nodes[a] = union
		nodes[b] = slices.Clone(union)

		s.remap(nodes, mapAxes(nodes, s.nodes))
	}

	s.array = symmetrizeArray(s.array, a, b)
}

// OptimizeNodes trims every axis to the smallest range holding a value.
func (s *ImportSubgrid) OptimizeNodes() {
	if s.array.IsEmpty() {
		return
	}
	s.array, s.nodes = trim(s.All(), s.nodes)
}

// All yields the stored values.
func (s *ImportSubgrid) All() iter.Seq2[[]int, float64] { return s.array.All() }

func (s *ImportSubgrid) Stats() Stats { return arrayStats(s.array) }

func (s *ImportSubgrid) Shape() []int { return s.array.Shape() }

func (s *ImportSubgrid) Clone() Subgrid {
	return &ImportSubgrid{array: s.array.Clone(), nodes: cloneNodes(s.nodes)}
}

// remap moves every value to the node axes nodes. maps[d][k] is the position
// in nodes[d] of the k-th current node of axis d. Values whose nodes map to
// the same target are summed.
func (s *ImportSubgrid) remap(nodes [][]float64, maps [][]int) {
	shape := make([]int, len(nodes))
	for d, axis := range nodes {
		shape[d] = len(axis)
	}

	array := packed.New(shape)
	target := make([]int, len(nodes))
	for index, v := range s.array.All() {
		for d, k := range index {
			target[d] = maps[d][k]
		}
		array.Add(target, v)
	}

	s.array = array
	s.nodes = nodes
}

// trim copies the values of all into an array spanning only the populated
// range of every axis.
func trim(all iter.Seq2[[]int, float64], nodes [][]float64) (*packed.Array, [][]float64) {
	lo := make([]int, len(nodes))
	hi := make([]int, len(nodes))
	for d, axis := range nodes {
		lo[d] = len(axis)
	}
	for index := range all {
		for d, k := range index {
			lo[d] = min(lo[d], k)
			hi[d] = max(hi[d], k+1)
		}
	}

	trimmed := make([][]float64, len(nodes))
	shape := make([]int, len(nodes))
	for d, axis := range nodes {
		if lo[d] >= hi[d] {
			lo[d], hi[d] = 0, 0
		}
		trimmed[d] = slices.Clone(axis[lo[d]:hi[d]])
		shape[d] = hi[d] - lo[d]
	}

	array := packed.New(shape)
	for index, v := range all {
		for d := range index {
			index[d] -= lo[d]
		}
		array.Add(index, v)
	}

	return array, trimmed
}

// unionAxis returns the sorted union of a and b with values equal within
// NodeULPs kept once.
func unionAxis(a, b []float64) []float64 {
	union := make([]float64, 0, len(a)+len(b))
	union = append(union, a...)
	union = append(union, b...)
	slices.Sort(union)

	// compare against the last kept value, not the previous element
	out := union[:0]
	for _, x := range union {
		if len(out) == 0 || !NodeValueEq(out[len(out)-1], x) {
			out = append(out, x)
		}
	}
	return out
}

// mapAxes returns for every axis of from the position of each node in to.
func mapAxes(to, from [][]float64) [][]int {
	maps := make([][]int, len(from))
	for d, axis := range from {
		maps[d] = make([]int, len(axis))
		for k, x := range axis {
			pos := slices.IndexFunc(to[d], func(y float64) bool { return NodeValueEq(x, y) })
			if pos < 0 {
				panic(fmt.Sprintf("subgrid: node %g missing from axis %d", x, d))
			}
			maps[d][k] = pos
		}
	}
	return maps
}

func identityMaps(nodes [][]float64) [][]int {
	maps := make([][]int, len(nodes))
	for d, axis := range nodes {
		maps[d] = make([]int, len(axis))
		for k := range axis {
			maps[d][k] = k
		}
	}
	return maps
}

func cloneNodes(nodes [][]float64) [][]float64 {
	out := make([][]float64, len(nodes))
	for d, axis := range nodes {
		out[d] = slices.Clone(axis)
	}
	return out
}
