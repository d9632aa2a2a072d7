package subgrid

import (
	"math"
	"testing"

	"github.com/hupe1980/sparsegrid/interp"
	"github.com/hupe1980/sparsegrid/packed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	index []int
	value float64
}

func collect(sg Subgrid) []entry {
	var out []entry
	for index, v := range sg.All() {
		out = append(out, entry{index, v})
	}
	return out
}

func count(sg Subgrid) int {
	return len(collect(sg))
}

func TestNodeValueEq(t *testing.T) {
	x := 0.123456789
	bits := math.Float64bits(x)

	assert.True(t, NodeValueEq(x, x))
	assert.True(t, NodeValueEq(x, math.Float64frombits(bits+NodeULPs)))
	assert.False(t, NodeValueEq(x, math.Float64frombits(bits+NodeULPs+1)))
	assert.False(t, NodeValueEq(0.0, 1.0))

	assert.True(t, NodeAxesEq([][]float64{{1, 2}, {3}}, [][]float64{{1, 2}, {3}}))
	assert.False(t, NodeAxesEq([][]float64{{1, 2}, {3}}, [][]float64{{1, 2}, {3, 4}}))
	assert.False(t, NodeAxesEq([][]float64{{1, 2}}, [][]float64{{1, 2}, {3}}))
}

func TestInterpSubgrid_Fill(t *testing.T) {
	interps := interp.DefaultInterps(2)

	t.Run("zero weight", func(t *testing.T) {
		sg := NewInterp(interps)
		sg.Fill(interps, []float64{1000, 0.5, 0.5}, 0)

		assert.True(t, sg.IsEmpty())
		assert.Equal(t, 0, count(sg))
		assert.Equal(t, Stats{Total: 100000, BytesPerValue: 8}, sg.Stats())
	})

	t.Run("outside range", func(t *testing.T) {
		sg := NewInterp(interps)
		sg.Fill(interps, []float64{1000, 1e-10, 0.5}, 1)

		assert.True(t, sg.IsEmpty())
		assert.Equal(t, Stats{Total: 100000, BytesPerValue: 8}, sg.Stats())
	})

	t.Run("single sample", func(t *testing.T) {
		sg := NewInterp(interps)
		sg.Fill(interps, []float64{1000, 0.5, 0.5}, 1)

		assert.False(t, sg.IsEmpty())
		assert.Equal(t, 64, count(sg))
		assert.Equal(t, Stats{Total: 100000, Allocated: 64, Zeros: 0, Overhead: 32, BytesPerValue: 8}, sg.Stats())
		assert.Equal(t, []int{40, 50, 50}, sg.Shape())
		assert.Equal(t, KindInterp, sg.Kind())
	})

	t.Run("node values follow the interpolations", func(t *testing.T) {
		sg := NewInterp(interps)
		nodes := sg.NodeValues()
		require.Len(t, nodes, 3)
		assert.Equal(t, interps[0].NodeValues(), nodes[0])
		assert.Equal(t, interps[1].NodeValues(), nodes[1])
	})
}

func TestInterpSubgrid_OptimizeNodes(t *testing.T) {
	interps := interp.DefaultInterps(2)

	sg := NewInterp(interps)
	sg.Fill(interps, []float64{1000, 0.5, 0.5}, 1)
	sg.Fill(interps, []float64{1000, 0.25, 0.5}, 2)
	sg.Fill(interps, []float64{1000, 0.125, 0.25}, 3)
	before := Sum(sg)

	static := sg.StaticNodes()
	assert.Equal(t, 1000.0, static[0])
	assert.True(t, math.IsNaN(static[1]))
	assert.True(t, math.IsNaN(static[2]))

	sg.OptimizeNodes()

	assert.Equal(t, []int{1, 50, 50}, sg.Shape())
	assert.InEpsilon(t, 1000.0, sg.NodeValues()[0][0], 1e-12)
	assert.InEpsilon(t, before, Sum(sg), 1e-12)

	// a second pass changes nothing
	sg.OptimizeNodes()
	assert.Equal(t, []int{1, 50, 50}, sg.Shape())
}

func TestInterpSubgrid_Merge(t *testing.T) {
	interps := interp.DefaultInterps(2)

	t.Run("transpose", func(t *testing.T) {
		a := NewInterp(interps)
		a.Fill(interps, []float64{1000, 0.25, 0.5}, 1)

		b := NewInterp(interps)
		b.Fill(interps, []float64{1000, 0.5, 0.25}, 1)

		want := NewInterp(interps)
		want.Fill(interps, []float64{1000, 0.25, 0.5}, 2)

		a.Merge(b, &Transpose{A: 1, B: 2})

		got := collect(a)
		expected := collect(want)
		require.Len(t, got, len(expected))
		for i := range got {
			assert.Equal(t, expected[i].index, got[i].index)
			assert.InEpsilon(t, expected[i].value, got[i].value, 1e-12)
		}
	})

	t.Run("different interpolations", func(t *testing.T) {
		a := NewInterp(interps)
		other := interp.DefaultInterps(2)
		other[0] = interp.MustNew(1e2, 1e6, 30, 3, interp.NoReweight, interp.ApplGridH0, interp.Lagrange)
		b := NewInterp(other)
		b.Fill(other, []float64{1000, 0.5, 0.5}, 1)

		assert.False(t, a.Compatible(b, nil))
		assert.Panics(t, func() { a.Merge(b, nil) })
	})

	t.Run("import subgrid", func(t *testing.T) {
		a := NewInterp(interps)
		b := NewImport(packed.New([]int{1, 1, 1}), [][]float64{{1000}, {0.5}, {0.5}})

		assert.Panics(t, func() { a.Merge(b, nil) })
	})
}

func TestImportSubgrid_Fill(t *testing.T) {
	sg := NewImport(packed.New([]int{0, 0, 0}), [][]float64{{}, {}, {}})
	assert.PanicsWithValue(t, "ImportSubgrid doesn't support the fill operation", func() {
		sg.Fill(interp.DefaultInterps(2), []float64{0, 0, 0}, 0)
	})
}

func TestImportSubgrid_MergeSymmetrizeScale(t *testing.T) {
	x := []float64{0.015625, 0.03125, 0.0625, 0.125, 0.1875, 0.25, 0.375, 0.5, 0.75, 1.0}

	array1 := packed.New([]int{1, 10, 10})
	array1.Set([]int{0, 1, 2}, 1)
	array1.Set([]int{0, 1, 3}, 2)
	array1.Set([]int{0, 4, 3}, 4)
	array1.Set([]int{0, 7, 1}, 8)
	grid1 := NewImport(array1, [][]float64{{0.0}, x, x})

	assert.Equal(t, [][]float64{{0.0}, x, x}, grid1.NodeValues())
	assert.Equal(t, []entry{
		{[]int{0, 1, 2}, 1},
		{[]int{0, 1, 3}, 2},
		{[]int{0, 4, 3}, 4},
		{[]int{0, 7, 1}, 8},
	}, collect(grid1))

	// transposed entries at a different scale
	array2 := packed.New([]int{1, 10, 10})
	array2.Set([]int{0, 2, 1}, 1)
	array2.Set([]int{0, 3, 1}, 2)
	array2.Set([]int{0, 3, 4}, 4)
	array2.Set([]int{0, 1, 7}, 8)
	grid2 := NewImport(array2, [][]float64{{1.0}, x, x})

	assert.Equal(t, []entry{
		{[]int{0, 1, 7}, 8},
		{[]int{0, 2, 1}, 1},
		{[]int{0, 3, 1}, 2},
		{[]int{0, 3, 4}, 4},
	}, collect(grid2))

	grid1.Merge(grid2, nil)
	assert.Equal(t, [][]float64{{0.0, 1.0}, x, x}, grid1.NodeValues())

	grid1.Symmetrize(1, 2)
	grid1.Scale(2)

	assert.Equal(t, Stats{Total: 200, Allocated: 8, Zeros: 0, Overhead: 12, BytesPerValue: 8}, grid1.Stats())
	assert.Equal(t, []entry{
		{[]int{0, 1, 2}, 2},
		{[]int{0, 1, 3}, 4},
		{[]int{0, 1, 7}, 16},
		{[]int{0, 3, 4}, 8},
		{[]int{1, 1, 2}, 2},
		{[]int{1, 1, 3}, 4},
		{[]int{1, 1, 7}, 16},
		{[]int{1, 3, 4}, 8},
	}, collect(grid1))
}

func TestImportSubgrid_MergeDisjointNodes(t *testing.T) {
	arrayA := packed.New([]int{2, 1})
	arrayA.Set([]int{0, 0}, 1)
	arrayA.Set([]int{1, 0}, 2)
	a := NewImport(arrayA, [][]float64{{1, 2}, {10}})

	arrayB := packed.New([]int{2, 1})
	arrayB.Set([]int{0, 0}, 3)
	arrayB.Set([]int{1, 0}, 4)
	b := NewImport(arrayB, [][]float64{{3, 4}, {10}})

	a.Merge(b, nil)

	assert.Equal(t, [][]float64{{1, 2, 3, 4}, {10}}, a.NodeValues())
	assert.Equal(t, []entry{
		{[]int{0, 0}, 1},
		{[]int{1, 0}, 2},
		{[]int{2, 0}, 3},
		{[]int{3, 0}, 4},
	}, collect(a))

	// b is left untouched
	assert.Equal(t, [][]float64{{3, 4}, {10}}, b.NodeValues())
}

func TestImportSubgrid_MergeWithinTolerance(t *testing.T) {
	nearby := math.Float64frombits(math.Float64bits(0.5) + 3)

	arrayA := packed.New([]int{1})
	arrayA.Set([]int{0}, 1)
	a := NewImport(arrayA, [][]float64{{0.5}})

	arrayB := packed.New([]int{1})
	arrayB.Set([]int{0}, 2)
	b := NewImport(arrayB, [][]float64{{nearby}})

	a.Merge(b, nil)
	assert.Equal(t, []int{1}, a.Shape())
	assert.Equal(t, []entry{{[]int{0}, 3}}, collect(a))
}

func TestImportSubgrid_MergeDuplicateOwnNodes(t *testing.T) {
	nearby := math.Float64frombits(math.Float64bits(0.5) + 3)

	arrayA := packed.New([]int{2})
	arrayA.Set([]int{0}, 1)
	arrayA.Set([]int{1}, 2)
	a := NewImport(arrayA, [][]float64{{0.5, nearby}})

	arrayB := packed.New([]int{1})
	arrayB.Set([]int{0}, 4)
	b := NewImport(arrayB, [][]float64{{0.25}})

	a.Merge(b, nil)
	assert.Equal(t, [][]float64{{0.25, 0.5}}, a.NodeValues())
	assert.Equal(t, []entry{{[]int{0}, 4}, {[]int{1}, 3}}, collect(a))
}

func TestImportSubgrid_Symmetrize(t *testing.T) {
	t.Run("symmetric content keeps its sum", func(t *testing.T) {
		x := []float64{0.1, 0.2, 0.3, 0.4}
		array := packed.New([]int{1, 4, 4})
		array.Set([]int{0, 1, 2}, 1)
		array.Set([]int{0, 2, 1}, 1)
		array.Set([]int{0, 3, 3}, 5)
		sg := NewImport(array, [][]float64{{100}, x, x})

		before := Sum(sg)
		sg.Symmetrize(1, 2)

		assert.Equal(t, before, Sum(sg))
		assert.Equal(t, []entry{
			{[]int{0, 1, 2}, 2},
			{[]int{0, 3, 3}, 5},
		}, collect(sg))
	})

	t.Run("different axes are unified", func(t *testing.T) {
		array := packed.New([]int{2, 2})
		array.Set([]int{1, 0}, 4)
		sg := NewImport(array, [][]float64{{2, 3}, {1, 2}})

		sg.Symmetrize(0, 1)

		assert.Equal(t, [][]float64{{1, 2, 3}, {1, 2, 3}}, sg.NodeValues())
		assert.Equal(t, []entry{{[]int{0, 2}, 4}}, collect(sg))
	})
}

func TestScale(t *testing.T) {
	array := packed.New([]int{1, 3})
	array.Set([]int{0, 0}, 1)
	array.Set([]int{0, 2}, 2)
	sg := NewImport(array, [][]float64{{1}, {1, 2, 3}})
	require.Equal(t, 1, sg.Stats().Zeros)

	sg.Scale(3)

	assert.Equal(t, []entry{{[]int{0, 0}, 3}, {[]int{0, 2}, 6}}, collect(sg))
	assert.Equal(t, 1, sg.Stats().Zeros)
	assert.Equal(t, 0.0, sg.Array().At([]int{0, 1}))
}

func TestImportSubgrid_OptimizeNodes(t *testing.T) {
	array := packed.New([]int{3, 4})
	array.Set([]int{1, 1}, 1)
	array.Set([]int{1, 2}, 2)
	sg := NewImport(array, [][]float64{{1, 2, 3}, {10, 20, 30, 40}})

	sg.OptimizeNodes()

	assert.Equal(t, [][]float64{{2}, {20, 30}}, sg.NodeValues())
	assert.Equal(t, []entry{{[]int{0, 0}, 1}, {[]int{0, 1}, 2}}, collect(sg))
}

func TestEmptySubgrid(t *testing.T) {
	interps := interp.DefaultInterps(2)

	assert.True(t, Empty.IsEmpty())
	assert.Equal(t, KindEmpty, Empty.Kind())
	assert.Equal(t, Stats{}, Empty.Stats())
	assert.Equal(t, 0, count(Empty))
	assert.Same(t, Empty, Empty.Clone())

	assert.PanicsWithValue(t, "EmptySubgrid doesn't support the fill operation", func() {
		Empty.Fill(interps, []float64{1000, 0.5, 0.5}, 1)
	})

	assert.NotPanics(t, func() { Empty.Merge(NewInterp(interps), nil) })

	filled := NewInterp(interps)
	filled.Fill(interps, []float64{1000, 0.5, 0.5}, 1)
	assert.PanicsWithValue(t, "EmptySubgrid doesn't support the merge operation for non-empty subgrids", func() {
		Empty.Merge(filled, nil)
	})

	Empty.Scale(2)
	Empty.Symmetrize(1, 2)
	assert.True(t, Empty.IsEmpty())
}

func TestMergeInto(t *testing.T) {
	interps := interp.DefaultInterps(2)

	filled := func(ntuple ...float64) *InterpSubgrid {
		sg := NewInterp(interps)
		sg.Fill(interps, ntuple, 1)
		return sg
	}

	t.Run("empty source", func(t *testing.T) {
		dst := filled(1000, 0.5, 0.5)
		assert.Same(t, dst, MergeInto(dst, Empty, nil))
	})

	t.Run("empty destination", func(t *testing.T) {
		src := filled(1000, 0.5, 0.5)
		got := MergeInto(Empty, src, nil)

		require.IsType(t, &InterpSubgrid{}, got)
		assert.NotSame(t, src, got)
		assert.Equal(t, collect(src), collect(got))
	})

	t.Run("empty destination with transpose", func(t *testing.T) {
		src := filled(1000, 0.25, 0.5)
		got := MergeInto(Empty, src, &Transpose{A: 1, B: 2})

		want := filled(1000, 0.5, 0.25)
		assert.InEpsilon(t, Sum(want), Sum(got), 1e-12)
		assert.Equal(t, count(want), count(got))
	})

	t.Run("compatible interpolations", func(t *testing.T) {
		dst := filled(1000, 0.5, 0.5)
		got := MergeInto(dst, filled(1000, 0.5, 0.5), nil)

		assert.Same(t, dst, got)
		assert.InEpsilon(t, 2*Sum(filled(1000, 0.5, 0.5)), Sum(got), 1e-12)
	})

	t.Run("incompatible source converts to import", func(t *testing.T) {
		dst := filled(1000, 0.5, 0.5)
		before := Sum(dst)

		array := packed.New([]int{1, 1, 1})
		array.Set([]int{0, 0, 0}, 3)
		src := NewImport(array, [][]float64{{5000}, {0.3}, {0.7}})

		got := MergeInto(dst, src, nil)

		assert.Equal(t, KindImport, got.Kind())
		assert.InEpsilon(t, before+3, Sum(got), 1e-12)
	})
}

func TestFromSubgrid(t *testing.T) {
	interps := interp.DefaultInterps(2)

	t.Run("single sample collapses every axis", func(t *testing.T) {
		sg := NewInterp(interps)
		sg.Fill(interps, []float64{1000, 0.5, 0.5}, 1)

		imp := FromSubgrid(sg)

		// the reweighted value of a collapsed axis is the sample weight
		assert.Equal(t, []int{1, 1, 1}, imp.Shape())
		assert.InEpsilon(t, 1.0, Sum(imp), 1e-9)
		nodes := imp.NodeValues()
		assert.InEpsilon(t, 1000.0, nodes[0][0], 1e-12)
		assert.InEpsilon(t, 0.5, nodes[1][0], 1e-12)

		// the source is not modified
		assert.Equal(t, []int{40, 50, 50}, sg.Shape())
	})

	t.Run("ranges are trimmed", func(t *testing.T) {
		sg := NewInterp(interps)
		sg.Fill(interps, []float64{1000, 0.5, 0.5}, 1)
		sg.Fill(interps, []float64{2000, 0.25, 0.4}, 1)

		imp := FromSubgrid(sg)

		shape := imp.Shape()
		assert.Less(t, shape[0], 40)
		assert.Less(t, shape[1], 50)
		assert.Less(t, shape[2], 50)
		assert.InEpsilon(t, Sum(sg), Sum(imp), 1e-12)
		assert.Equal(t, count(sg), count(imp))
	})

	t.Run("empty", func(t *testing.T) {
		imp := FromSubgrid(NewInterp(interps))
		assert.True(t, imp.IsEmpty())
		assert.Equal(t, []int{0, 0, 0}, imp.Shape())
	})
}

func TestKind(t *testing.T) {
	for _, k := range []Kind{KindEmpty, KindInterp, KindImport} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("lagrange")
	assert.Error(t, err)
}
