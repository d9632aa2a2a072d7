package interp

import (
	"errors"
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// MaxOrder is the largest supported interpolation order.
const MaxOrder = 7

// ErrInvalidParams is returned when an Interp cannot be constructed from the
// given parameters.
var ErrInvalidParams = errors.New("interp: invalid parameters")

// Interp describes the interpolation along one axis. It is an immutable
// value and safe to share.
type Interp struct {
	// min and max are the limits in interpolation space, min <= max.
	min      float64
	max      float64
	nodes    int
	order    int
	reweight ReweightMeth
	mapping  Map
	meth     Meth
}

// New creates an interpolation over the physical range [min, max] with the
// given number of nodes and interpolation order.
func New(min, max float64, nodes, order int, reweight ReweightMeth, mapping Map, meth Meth) (Interp, error) {
	switch {
	case math.IsNaN(min) || math.IsNaN(max) || min > max:
		return Interp{}, fmt.Errorf("%w: range [%g, %g]", ErrInvalidParams, min, max)
	case nodes <= 0:
		return Interp{}, fmt.Errorf("%w: %d nodes", ErrInvalidParams, nodes)
	case order < 0 || order > MaxOrder:
		return Interp{}, fmt.Errorf("%w: order %d not in [0, %d]", ErrInvalidParams, order, MaxOrder)
	case nodes <= order:
		return Interp{}, fmt.Errorf("%w: %d nodes cannot support order %d", ErrInvalidParams, nodes, order)
	case mapping > ApplGridH0 || reweight > NoReweight || meth != Lagrange:
		return Interp{}, fmt.Errorf("%w: unknown method selector", ErrInvalidParams)
	}

	i := Interp{
		min:      mapping.xToY(min),
		max:      mapping.xToY(max),
		nodes:    nodes,
		order:    order,
		reweight: reweight,
		mapping:  mapping,
		meth:     meth,
	}

	// some maps reverse the order
	if i.min > i.max {
		i.min, i.max = i.max, i.min
	}

	return i, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(min, max float64, nodes, order int, reweight ReweightMeth, mapping Map, meth Meth) Interp {
	i, err := New(min, max, nodes, order, reweight, mapping, meth)
	if err != nil {
		panic(err)
	}
	return i
}

// DefaultInterps returns the scale axis followed by one momentum-fraction
// axis per convolution.
func DefaultInterps(convolutions int) []Interp {
	interps := []Interp{MustNew(1e2, 1e8, 40, 3, NoReweight, ApplGridH0, Lagrange)}
	for range convolutions {
		interps = append(interps, MustNew(2e-7, 1.0, 50, 3, ApplGridX, ApplGridF2, Lagrange))
	}
	return interps
}

// Min returns the lower limit in interpolation space.
func (i Interp) Min() float64 { return i.min }

// Max returns the upper limit in interpolation space.
func (i Interp) Max() float64 { return i.max }

// Nodes returns the number of nodes.
func (i Interp) Nodes() int { return i.nodes }

// Order returns the interpolation order.
func (i Interp) Order() int { return i.order }

// ReweightMeth returns the reweighting method.
func (i Interp) ReweightMeth() ReweightMeth { return i.reweight }

// Map returns the x to y mapping.
func (i Interp) Map() Map { return i.mapping }

// Meth returns the interpolation method.
func (i Interp) Meth() Meth { return i.meth }

// Equal reports whether i and o describe the same interpolation.
func (i Interp) Equal(o Interp) bool {
	return i == o
}

func (i Interp) deltay() float64 {
	return (i.max - i.min) / float64(i.nodes-1)
}

func (i Interp) gety(index int) float64 {
	return math.FMA(float64(index), i.deltay(), i.min)
}

// Reweight returns the reweighting factor at x.
func (i Interp) Reweight(x float64) float64 {
	if i.reweight == ApplGridX {
		return reweightX(x)
	}
	return 1.0
}

// Interpolate returns the index of the first node affected by x and the
// fractional distance of x from it, in units of the node spacing. ok is false
// if x lies outside the interpolation range.
//
// The index is clamped so that all order+1 affected nodes exist.
func (i Interp) Interpolate(x float64) (index int, fraction float64, ok bool) {
	y := i.mapping.xToY(x)

	// NaN from a coordinate outside the mapping's domain fails both tests.
	if !(i.min <= y && y <= i.max) {
		return 0, 0, false
	}

	if i.nodes == 1 {
		return 0, 0, true
	}

	deltay := i.deltay()

	start := (y-i.min)/deltay - float64(i.order/2)
	if start > 0 {
		index = int(start)
	}
	index = min(index, i.nodes-i.order-1)

	return index, (y - i.gety(index)) / deltay, true
}

// NodeWeights returns the order+1 interpolation weights at fraction.
func (i Interp) NodeWeights(fraction float64) []float64 {
	weights := make([]float64, i.order+1)
	for k := range weights {
		weights[k] = lagrangeWeight(k, i.order, fraction)
	}
	return weights
}

// NodeValues returns the node positions in physical space.
func (i Interp) NodeValues() []float64 {
	if i.nodes == 1 {
		return []float64{i.mapping.yToX(i.min)}
	}

	values := make([]float64, i.nodes)
	for k := range values {
		values[k] = i.mapping.yToX(i.gety(k))
	}
	return values
}

func (i Interp) String() string {
	return fmt.Sprintf("Interp{y: [%g, %g], nodes: %d, order: %d, reweight: %s, map: %s, meth: %s}",
		i.min, i.max, i.nodes, i.order, i.reweight, i.mapping, i.meth)
}

// interpWire is the serialized form of an Interp; limits are kept in
// interpolation space so that a round trip is exact.
type interpWire struct {
	YMin     float64      `json:"ymin"`
	YMax     float64      `json:"ymax"`
	Nodes    int          `json:"nodes"`
	Order    int          `json:"order"`
	Reweight ReweightMeth `json:"reweight"`
	Map      Map          `json:"map"`
	Meth     Meth         `json:"meth"`
}

// MarshalJSON implements json.Marshaler.
func (i Interp) MarshalJSON() ([]byte, error) {
	return json.Marshal(interpWire{
		YMin:     i.min,
		YMax:     i.max,
		Nodes:    i.nodes,
		Order:    i.order,
		Reweight: i.reweight,
		Map:      i.mapping,
		Meth:     i.meth,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Interp) UnmarshalJSON(data []byte) error {
	var w interpWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch {
	case math.IsNaN(w.YMin) || math.IsNaN(w.YMax) || w.YMin > w.YMax:
		return fmt.Errorf("%w: range [%g, %g]", ErrInvalidParams, w.YMin, w.YMax)
	case w.Nodes <= 0 || w.Order < 0 || w.Order > MaxOrder || w.Nodes <= w.Order:
		return fmt.Errorf("%w: %d nodes with order %d", ErrInvalidParams, w.Nodes, w.Order)
	}

	*i = Interp{
		min:      w.YMin,
		max:      w.YMax,
		nodes:    w.Nodes,
		order:    w.Order,
		reweight: w.Reweight,
		mapping:  w.Map,
		meth:     w.Meth,
	}
	return nil
}
