package boc

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	cases := []struct {
		in   string
		want Order
	}{
		{"as1", NewOrder(1, 0, 0, 0, 0)},
		{"a1", NewOrder(0, 1, 0, 0, 0)},
		{"as1lr1", NewOrder(1, 0, 1, 0, 0)},
		{"as1lf1", NewOrder(1, 0, 0, 1, 0)},
		{"as1la1", NewOrder(1, 0, 0, 0, 1)},
		{"as2a1lr1lf1la1", NewOrder(2, 1, 1, 1, 1)},
		{"", Order{}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOrder(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("errors", func(t *testing.T) {
		_, err := ParseOrder("ab12")
		assert.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), "unknown coupling: 'ab'")

		_, err = ParseOrder("ab123456789000000")
		assert.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), "error while parsing exponent of 'ab'")

		_, err = ParseOrder("as")
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestOrder_String(t *testing.T) {
	for _, o := range []Order{
		NewOrder(0, 0, 0, 0, 0),
		NewOrder(0, 2, 0, 0, 0),
		NewOrder(2, 1, 1, 1, 1),
		NewOrder(1, 0, 0, 2, 0),
	} {
		parsed, err := ParseOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}
	assert.Equal(t, "as1a2lr1", NewOrder(1, 2, 1, 0, 0).String())
}

func TestCompareOrders(t *testing.T) {
	orders := []Order{
		NewOrder(1, 2, 1, 0, 0),
		NewOrder(1, 2, 0, 1, 0),
		NewOrder(1, 2, 0, 0, 0),
		NewOrder(0, 3, 1, 0, 0),
		NewOrder(0, 3, 0, 1, 0),
		NewOrder(0, 3, 0, 0, 0),
		NewOrder(0, 2, 0, 0, 0),
	}

	slices.SortFunc(orders, CompareOrders)

	assert.Equal(t, []Order{
		NewOrder(0, 2, 0, 0, 0),
		NewOrder(1, 2, 0, 0, 0),
		NewOrder(1, 2, 0, 1, 0),
		NewOrder(1, 2, 1, 0, 0),
		NewOrder(0, 3, 0, 0, 0),
		NewOrder(0, 3, 0, 1, 0),
		NewOrder(0, 3, 1, 0, 0),
	}, orders)
}

func TestCreateMask(t *testing.T) {
	t.Run("drell-yan", func(t *testing.T) {
		orders := []Order{
			NewOrder(0, 2, 0, 0, 0), // LO
			NewOrder(1, 2, 0, 0, 0), // NLO QCD
			NewOrder(0, 3, 0, 0, 0), // NLO EW
			NewOrder(2, 2, 0, 0, 0), // NNLO QCD
			NewOrder(1, 3, 0, 0, 0), // NNLO QCD-EW
			NewOrder(0, 4, 0, 0, 0), // NNLO EW
		}

		cases := []struct {
			maxAs, maxAl uint8
			want         []bool
		}{
			{0, 0, []bool{false, false, false, false, false, false}},
			{0, 1, []bool{true, false, false, false, false, false}},
			{0, 2, []bool{true, false, true, false, false, false}},
			{0, 3, []bool{true, false, true, false, false, true}},
			{1, 0, []bool{true, false, false, false, false, false}},
			{1, 1, []bool{true, false, false, false, false, false}},
			{2, 0, []bool{true, true, false, false, false, false}},
			{3, 0, []bool{true, true, false, true, false, false}},
			{1, 2, []bool{true, false, true, false, false, false}},
			{1, 3, []bool{true, false, true, false, false, true}},
			{3, 3, []bool{true, true, true, true, true, true}},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.want, CreateMask(orders, tc.maxAs, tc.maxAl, false), "maxAs=%d maxAl=%d", tc.maxAs, tc.maxAl)
		}
	})

	t.Run("logs", func(t *testing.T) {
		orders := []Order{
			NewOrder(0, 2, 0, 0, 0),
			NewOrder(1, 2, 0, 0, 0),
			NewOrder(1, 2, 1, 0, 0),
			NewOrder(0, 3, 0, 0, 0),
			NewOrder(0, 3, 1, 0, 0),
		}
		assert.Equal(t, []bool{true, false, false, true, true}, CreateMask(orders, 0, 2, true))
		assert.Equal(t, []bool{true, false, false, true, false}, CreateMask(orders, 0, 2, false))
	})

	t.Run("top-pair", func(t *testing.T) {
		orders := []Order{
			NewOrder(2, 0, 0, 0, 0),
			NewOrder(1, 1, 0, 0, 0),
			NewOrder(0, 2, 0, 0, 0),
			NewOrder(3, 0, 0, 0, 0),
			NewOrder(2, 1, 0, 0, 0),
			NewOrder(1, 2, 0, 0, 0),
			NewOrder(0, 3, 0, 0, 0),
		}
		assert.Equal(t, []bool{false, false, true, false, false, false, false}, CreateMask(orders, 0, 1, false))
		assert.Equal(t, []bool{true, false, false, false, false, false, false}, CreateMask(orders, 1, 0, false))
		assert.Equal(t, []bool{true, true, true, false, false, false, false}, CreateMask(orders, 1, 1, false))
	})

	assert.Empty(t, CreateMask(nil, 1, 1, false))
}

func TestNewChannel(t *testing.T) {
	t.Run("ordering does not matter", func(t *testing.T) {
		a := MustChannel(Entry{[]int32{2, 2}, 1}, Entry{[]int32{4, 4}, 1})
		b := MustChannel(Entry{[]int32{4, 4}, 1}, Entry{[]int32{2, 2}, 1})
		assert.True(t, a.Equal(b))
	})

	t.Run("repeated tuples are summed", func(t *testing.T) {
		a := MustChannel(
			Entry{[]int32{1, 1}, 1}, Entry{[]int32{1, 1}, 3}, Entry{[]int32{3, 3}, 1}, Entry{[]int32{1, 1}, 6},
		)
		b := MustChannel(Entry{[]int32{1, 1}, 10}, Entry{[]int32{3, 3}, 1})
		assert.True(t, a.Equal(b))
	})

	t.Run("zeros are dropped", func(t *testing.T) {
		c := MustChannel(Entry{[]int32{1, 1}, 1}, Entry{[]int32{1, 1}, -1}, Entry{[]int32{2, 2}, 1})
		assert.Equal(t, []Entry{{[]int32{2, 2}, 1}}, c.Entries())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewChannel()
		assert.ErrorIs(t, err, ErrInvalid)

		_, err = NewChannel(Entry{[]int32{1, 1, 1}, 1}, Entry{[]int32{1, 1}, 1})
		assert.ErrorIs(t, err, ErrInvalid)

		assert.Panics(t, func() { MustChannel() })
	})

	t.Run("input is not aliased", func(t *testing.T) {
		pids := []int32{2, -2}
		c := MustChannel(Entry{pids, 1})
		pids[0] = 5
		assert.Equal(t, []int32{2, -2}, c.Entries()[0].PIDs)
	})
}

func TestChannel_TransposeAndCommonFactor(t *testing.T) {
	c := MustChannel(Entry{[]int32{2, -2}, 1}, Entry{[]int32{4, -4}, 2})

	transposed := c.Transpose(0, 1)
	assert.True(t, transposed.Equal(MustChannel(Entry{[]int32{-2, 2}, 1}, Entry{[]int32{-4, 4}, 2})))
	assert.True(t, transposed.Transpose(0, 1).Equal(c))

	ch1 := MustChannel(Entry{[]int32{2, 2}, 2}, Entry{[]int32{4, 4}, 2})
	ch2 := MustChannel(Entry{[]int32{4, 4}, 1}, Entry{[]int32{2, 2}, 1})
	ch3 := MustChannel(Entry{[]int32{3, 4}, 1}, Entry{[]int32{2, 2}, 1})
	ch4 := MustChannel(Entry{[]int32{4, 3}, 1}, Entry{[]int32{2, 3}, 2})
	ch5 := MustChannel(Entry{[]int32{2, 2}, 1}, Entry{[]int32{4, 4}, 2})

	f, ok := ch1.CommonFactor(ch2)
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)

	_, ok = ch1.CommonFactor(ch3)
	assert.False(t, ok)
	_, ok = ch1.CommonFactor(ch4)
	assert.False(t, ok)
	_, ok = ch1.CommonFactor(ch5)
	assert.False(t, ok)
}

func TestParseChannel(t *testing.T) {
	c, err := ParseChannel(" 1   * (  2 , -2) + 2* (4,-4)")
	require.NoError(t, err)
	assert.True(t, c.Equal(MustChannel(Entry{[]int32{2, -2}, 1}, Entry{[]int32{4, -4}, 2})))
	assert.Equal(t, 2, c.Arity())

	errors := map[string]string{
		"* (  2, -2) + 2* (4,-4)":     "invalid syntax",
		" 1    (  2 -2) + 2* (4,-4)":  "missing '*' in ' 1    (  2 -2) '",
		" 1   * (  2 -2) + 2* (4,-4)": "could not parse PID: '  2 -2'",
		" 1   *   2, -2) + 2* (4,-4)": "missing '(' in '   2, -2) '",
		" 1   * (  2, -2 + 2* (4,-4)": "missing ')' in ' (  2, -2 '",
		"1 * (2, 2, 2) + 2 * (4, 4)":  "PID tuples have different lengths",
	}
	for in, msg := range errors {
		_, err := ParseChannel(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), msg)
	}
}

func TestChannel_Text(t *testing.T) {
	c := MustChannel(Entry{[]int32{2, -2}, 0.1}, Entry{[]int32{21, 21}, 1.0 / 3})

	data, err := json.Marshal([]Channel{c})
	require.NoError(t, err)

	var out []Channel
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 1)
	assert.True(t, c.Equal(out[0]))

	var empty Channel
	require.NoError(t, empty.UnmarshalText([]byte("")))
	assert.Empty(t, empty.Entries())
}

func TestBins(t *testing.T) {
	bins, err := NewBins([]float64{0, 1, 2, 4})
	require.NoError(t, err)

	assert.Equal(t, 3, bins.Len())
	assert.Equal(t, []float64{1, 1, 2}, bins.Normalizations())
	assert.Equal(t, Bin{Lo: 2, Hi: 4, Normalization: 2}, bins.Bin(2))

	t.Run("fill index", func(t *testing.T) {
		cases := []struct {
			value float64
			index int
			ok    bool
		}{
			{-1, 0, false},
			{0, 0, true},
			{0.5, 0, true},
			{1, 1, true},
			{3.999, 2, true},
			{4, 0, false},
			{5, 0, false},
		}
		for _, tc := range cases {
			index, ok := bins.FillIndex(tc.value)
			assert.Equal(t, tc.ok, ok, "value %g", tc.value)
			if tc.ok {
				assert.Equal(t, tc.index, index, "value %g", tc.value)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewBins([]float64{1})
		assert.ErrorIs(t, err, ErrInvalid)
		_, err = NewBins([]float64{0, 2, 1})
		assert.ErrorIs(t, err, ErrInvalid)
		_, err = NewBinsWithNormalizations([]float64{0, 1}, []float64{1, 2})
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("concat", func(t *testing.T) {
		next, err := NewBins([]float64{4, 8})
		require.NoError(t, err)

		all, err := bins.Concat(next)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2, 4, 8}, all.FillLimits())
		assert.Equal(t, []float64{1, 1, 2, 4}, all.Normalizations())

		_, err = next.Concat(bins)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("delete", func(t *testing.T) {
		edge, err := bins.Delete([]int{2})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2}, edge.FillLimits())

		middle, err := bins.Delete([]int{1})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2}, middle.FillLimits())
		assert.Equal(t, Bin{Lo: 2, Hi: 4, Normalization: 2}, middle.Bin(1))

		_, err = bins.Delete([]int{0, 1, 2})
		assert.ErrorIs(t, err, ErrInvalid)
		_, err = bins.Delete([]int{3})
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("equal and json", func(t *testing.T) {
		data, err := json.Marshal(bins)
		require.NoError(t, err)

		var out Bins
		require.NoError(t, json.Unmarshal(data, &out))
		assert.True(t, bins.Equal(out))

		other, err := NewBins([]float64{0, 1, 2, 5})
		require.NoError(t, err)
		assert.False(t, bins.Equal(other))

		assert.Error(t, json.Unmarshal([]byte(`{"fill_limits":[0],"limits":[],"normalizations":[]}`), &out))
	})
}
