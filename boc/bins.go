package boc

import (
	"fmt"
	"math"
	"slices"
	"sort"

	json "github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats/scalar"
)

// binULPs is the tolerance used when comparing bin limits.
const binULPs = 8

// Bin is one interval of the observable.
type Bin struct {
	Lo, Hi        float64
	Normalization float64
}

// Bins is an ordered set of bins together with the fill limits that map an
// observable value to a bin.
type Bins struct {
	bins       []Bin
	fillLimits []float64
}

// NewBins creates contiguous bins from n+1 strictly ascending fill limits.
// Each bin is normalized by its width.
func NewBins(fillLimits []float64) (Bins, error) {
	norms := make([]float64, 0, max(len(fillLimits)-1, 0))
	for i := 1; i < len(fillLimits); i++ {
		norms = append(norms, fillLimits[i]-fillLimits[i-1])
	}
	return NewBinsWithNormalizations(fillLimits, norms)
}

// NewBinsWithNormalizations is like NewBins with explicit normalizations.
func NewBinsWithNormalizations(fillLimits, normalizations []float64) (Bins, error) {
	if len(fillLimits) < 2 {
		return Bins{}, fmt.Errorf("%w: at least two fill limits are required", ErrInvalid)
	}
	if len(normalizations) != len(fillLimits)-1 {
		return Bins{}, fmt.Errorf("%w: %d normalizations for %d bins", ErrInvalid, len(normalizations), len(fillLimits)-1)
	}
	for i := 1; i < len(fillLimits); i++ {
		if !(fillLimits[i] > fillLimits[i-1]) {
			return Bins{}, fmt.Errorf("%w: fill limits must be strictly ascending", ErrInvalid)
		}
	}

	bins := make([]Bin, len(normalizations))
	for i, n := range normalizations {
		bins[i] = Bin{Lo: fillLimits[i], Hi: fillLimits[i+1], Normalization: n}
	}

	return Bins{bins: bins, fillLimits: slices.Clone(fillLimits)}, nil
}

// Len returns the number of bins.
func (b Bins) Len() int { return len(b.bins) }

// Bin returns the i-th bin.
func (b Bins) Bin(i int) Bin { return b.bins[i] }

// FillLimits returns the limits used by FillIndex.
func (b Bins) FillLimits() []float64 { return slices.Clone(b.fillLimits) }

// Normalizations returns the normalization of every bin.
func (b Bins) Normalizations() []float64 {
	norms := make([]float64, len(b.bins))
	for i, bin := range b.bins {
		norms[i] = bin.Normalization
	}
	return norms
}

// FillIndex returns the bin that value falls into. Bins are closed on the
// left and open on the right; ok is false for values outside all bins.
func (b Bins) FillIndex(value float64) (index int, ok bool) {
	if math.IsNaN(value) {
		return 0, false
	}
	// first limit strictly above value
	i := sort.SearchFloat64s(b.fillLimits, math.Nextafter(value, math.Inf(1)))
	if i == 0 || i == len(b.fillLimits) {
		return 0, false
	}
	return i - 1, true
}

// Equal reports whether both sets of bins agree within a few ULPs.
func (b Bins) Equal(o Bins) bool {
	if len(b.bins) != len(o.bins) || len(b.fillLimits) != len(o.fillLimits) {
		return false
	}
	for i, bin := range b.bins {
		other := o.bins[i]
		if !scalar.EqualWithinULP(bin.Lo, other.Lo, binULPs) ||
			!scalar.EqualWithinULP(bin.Hi, other.Hi, binULPs) ||
			!scalar.EqualWithinULP(bin.Normalization, other.Normalization, binULPs) {
			return false
		}
	}
	for i, l := range b.fillLimits {
		if !scalar.EqualWithinULP(l, o.fillLimits[i], binULPs) {
			return false
		}
	}
	return true
}

// Concat appends the bins of o, which must start where b ends.
func (b Bins) Concat(o Bins) (Bins, error) {
	last := b.fillLimits[len(b.fillLimits)-1]
	if !scalar.EqualWithinULP(last, o.fillLimits[0], binULPs) {
		return Bins{}, fmt.Errorf("%w: bins ending at %g can not be followed by bins starting at %g", ErrInvalid, last, o.fillLimits[0])
	}

	return Bins{
		bins:       append(slices.Clone(b.bins), o.bins...),
		fillLimits: append(slices.Clone(b.fillLimits), o.fillLimits[1:]...),
	}, nil
}

// Delete returns the bins without the given indices. If the remaining bins
// are no longer contiguous their fill limits become the bin positions
// 0, 1, ..., n.
func (b Bins) Delete(indices []int) (Bins, error) {
	remove := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(b.bins) {
			return Bins{}, fmt.Errorf("%w: bin index %d out of range", ErrInvalid, i)
		}
		remove[i] = true
	}
	if len(remove) == len(b.bins) {
		return Bins{}, fmt.Errorf("%w: can not delete every bin", ErrInvalid)
	}

	var kept []Bin
	for i, bin := range b.bins {
		if !remove[i] {
			kept = append(kept, bin)
		}
	}

	contiguous := true
	for i := 1; i < len(kept); i++ {
		contiguous = contiguous && kept[i-1].Hi == kept[i].Lo
	}

	fillLimits := make([]float64, len(kept)+1)
	for i := range fillLimits {
		switch {
		case !contiguous:
			fillLimits[i] = float64(i)
		case i < len(kept):
			fillLimits[i] = kept[i].Lo
		default:
			fillLimits[i] = kept[i-1].Hi
		}
	}

	return Bins{bins: kept, fillLimits: fillLimits}, nil
}

type binsWire struct {
	FillLimits     []float64    `json:"fill_limits"`
	Limits         [][2]float64 `json:"limits"`
	Normalizations []float64    `json:"normalizations"`
}

// MarshalJSON implements json.Marshaler.
func (b Bins) MarshalJSON() ([]byte, error) {
	w := binsWire{FillLimits: b.fillLimits, Normalizations: b.Normalizations()}
	for _, bin := range b.bins {
		w.Limits = append(w.Limits, [2]float64{bin.Lo, bin.Hi})
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bins) UnmarshalJSON(data []byte) error {
	var w binsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.Limits) == 0 || len(w.Limits) != len(w.Normalizations) || len(w.FillLimits) != len(w.Limits)+1 {
		return fmt.Errorf("%w: inconsistent bins", ErrInvalid)
	}
	if !slices.IsSorted(w.FillLimits) {
		return fmt.Errorf("%w: fill limits must be ascending", ErrInvalid)
	}

	bins := make([]Bin, len(w.Limits))
	for i, l := range w.Limits {
		bins[i] = Bin{Lo: l[0], Hi: l[1], Normalization: w.Normalizations[i]}
	}
	*b = Bins{bins: bins, fillLimits: w.FillLimits}
	return nil
}
