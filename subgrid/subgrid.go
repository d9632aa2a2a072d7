package subgrid

import (
	"fmt"
	"iter"

	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/packed"
	"gonum.org/v1/gonum/floats/scalar"
)

// NodeULPs is the tolerance, in units of the last place, within which two
// node values are considered equal.
const NodeULPs = 64

// staticULPs is the tolerance used to decide whether repeated samples of an
// axis hit the same value.
const staticULPs = 4

// Kind identifies the concrete variant of a Subgrid.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindInterp
	KindImport
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInterp:
		return "interp"
	case KindImport:
		return "import"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses the string form of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "empty":
		return KindEmpty, nil
	case "interp":
		return KindInterp, nil
	case "import":
		return KindImport, nil
	default:
		return 0, fmt.Errorf("subgrid: unknown kind %q", s)
	}
}

// Transpose swaps two axes of the indices and node values of a subgrid while
// it is merged. A nil *Transpose leaves them unchanged.
type Transpose struct {
	A, B int
}

func (t *Transpose) apply(index []int) {
	if t != nil {
		index[t.A], index[t.B] = index[t.B], index[t.A]
	}
}

func (t *Transpose) applyNodes(nodes [][]float64) [][]float64 {
	out := make([][]float64, len(nodes))
	copy(out, nodes)
	if t != nil {
		out[t.A], out[t.B] = out[t.B], out[t.A]
	}
	return out
}

// Subgrid is the storage of one (order, bin, channel) cell. The set of
// implementations is closed: *InterpSubgrid, *ImportSubgrid and
// *EmptySubgrid.
//
// Subgrids are not safe for concurrent use.
type Subgrid interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Fill deposits a weighted sample at ntuple. Only InterpSubgrid supports
	// filling; the other variants panic.
	Fill(interps []interp.Interp, ntuple []float64, weight float64)
	// NodeValues returns, per axis, the node values the subgrid is defined on.
	NodeValues() [][]float64
	// IsEmpty reports whether the subgrid holds no value.
	IsEmpty() bool
	// Merge adds the content of other to the subgrid, optionally swapping two
	// axes of other. It panics if other cannot be represented.
	Merge(other Subgrid, transpose *Transpose)
	// Scale multiplies every value by factor.
	Scale(factor float64)
	// Symmetrize folds values with index[b] < index[a] onto the mirrored
	// coordinate.
	Symmetrize(a, b int)
	// OptimizeNodes shrinks the node axes without changing the content.
	OptimizeNodes()
	// All iterates over the non-zero values in ascending index order. Values
	// are reweighted.
	All() iter.Seq2[[]int, float64]
	// Stats returns storage statistics.
	Stats() Stats
	// Shape returns the number of nodes per axis.
	Shape() []int
	// Clone returns a deep copy.
	Clone() Subgrid

	sealed()
}

// Stats describes the storage used by a subgrid.
type Stats struct {
	// Total is the number of cells, stored or not.
	Total int
	// Allocated is the number of stored values, zeros included.
	Allocated int
	// Zeros is the number of stored zeros.
	Zeros int
	// Overhead is the bookkeeping storage in units of values.
	Overhead int
	// BytesPerValue converts the other fields into bytes.
	BytesPerValue int
}

func arrayStats(a *packed.Array) Stats {
	return Stats{
		Total:         a.Size(),
		Allocated:     a.NonZeros() + a.ExplicitZeros(),
		Zeros:         a.ExplicitZeros(),
		Overhead:      a.Overhead(),
		BytesPerValue: 8,
	}
}

// NodeValueEq reports whether two node values are equal within NodeULPs.
func NodeValueEq(a, b float64) bool {
	return scalar.EqualWithinULP(a, b, NodeULPs)
}

// NodeAxesEq reports whether two sets of node axes are equal element-wise
// within NodeULPs.
func NodeAxesEq(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if !nodeAxisEq(a[d], b[d]) {
			return false
		}
	}
	return true
}

func nodeAxisEq(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !NodeValueEq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Sum returns the sum of all values of sg.
func Sum(sg Subgrid) float64 {
	sum := 0.0
	for _, v := range sg.All() {
		sum += v
	}
	return sum
}
