package subgrid

import (
	"iter"

	"github.com/hupe1980/sparsegrid/interp"
)

// EmptySubgrid is a subgrid that never holds a value. Use the singleton
// Empty.
type EmptySubgrid struct{}

// Empty is the shared structurally empty subgrid.
var Empty = &EmptySubgrid{}

func (*EmptySubgrid) sealed() {}

// Kind returns KindEmpty.
func (*EmptySubgrid) Kind() Kind { return KindEmpty }

// Fill panics.
func (*EmptySubgrid) Fill([]interp.Interp, []float64, float64) {
	panic("EmptySubgrid doesn't support the fill operation")
}

// NodeValues returns no axes.
func (*EmptySubgrid) NodeValues() [][]float64 { return nil }

// IsEmpty always returns true.
func (*EmptySubgrid) IsEmpty() bool { return true }

// Merge accepts only empty subgrids and panics otherwise.
func (*EmptySubgrid) Merge(other Subgrid, _ *Transpose) {
	if !other.IsEmpty() {
		panic("EmptySubgrid doesn't support the merge operation for non-empty subgrids")
	}
}

func (*EmptySubgrid) Scale(float64) {}

func (*EmptySubgrid) Symmetrize(int, int) {}

func (*EmptySubgrid) OptimizeNodes() {}

// All yields nothing.
func (*EmptySubgrid) All() iter.Seq2[[]int, float64] {
	return func(func([]int, float64) bool) {}
}

// Stats returns zero statistics.
func (*EmptySubgrid) Stats() Stats { return Stats{} }

func (*EmptySubgrid) Shape() []int { return nil }

// Clone returns Empty.
func (*EmptySubgrid) Clone() Subgrid { return Empty }
