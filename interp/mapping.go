package interp

import (
	"fmt"
	"math"
)

// ReweightMeth selects the reweighting function of an axis.
type ReweightMeth uint8

const (
	// ApplGridX reweights with (sqrt(x)/(1-0.99x))^3.
	ApplGridX ReweightMeth = iota
	// NoReweight leaves values untouched.
	NoReweight
)

// Map selects the mapping between physical space (x) and interpolation space (y).
type Map uint8

const (
	// ApplGridF2 maps momentum fractions with y = 5(1-x) - ln(x).
	ApplGridF2 Map = iota
	// ApplGridH0 maps squared scales with y = ln(ln(q2/0.0625)).
	ApplGridH0
)

// Meth selects the interpolation weight function.
type Meth uint8

const (
	// Lagrange uses the Lagrange polynomial basis.
	Lagrange Meth = iota
)

func (r ReweightMeth) String() string {
	switch r {
	case ApplGridX:
		return "applgrid-x"
	case NoReweight:
		return "none"
	default:
		return fmt.Sprintf("ReweightMeth(%d)", uint8(r))
	}
}

// ParseReweightMeth parses the string form of a ReweightMeth.
func ParseReweightMeth(s string) (ReweightMeth, error) {
	switch s {
	case "applgrid-x":
		return ApplGridX, nil
	case "none":
		return NoReweight, nil
	default:
		return 0, fmt.Errorf("%w: unknown reweighting method %q", ErrInvalidParams, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r ReweightMeth) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ReweightMeth) UnmarshalText(text []byte) error {
	v, err := ParseReweightMeth(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (m Map) String() string {
	switch m {
	case ApplGridF2:
		return "applgrid-f2"
	case ApplGridH0:
		return "applgrid-h0"
	default:
		return fmt.Sprintf("Map(%d)", uint8(m))
	}
}

// ParseMap parses the string form of a Map.
func ParseMap(s string) (Map, error) {
	switch s {
	case "applgrid-f2":
		return ApplGridF2, nil
	case "applgrid-h0":
		return ApplGridH0, nil
	default:
		return 0, fmt.Errorf("%w: unknown map %q", ErrInvalidParams, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Map) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Map) UnmarshalText(text []byte) error {
	v, err := ParseMap(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Meth) String() string {
	if m == Lagrange {
		return "lagrange"
	}
	return fmt.Sprintf("Meth(%d)", uint8(m))
}

// ParseMeth parses the string form of a Meth.
func ParseMeth(s string) (Meth, error) {
	if s == "lagrange" {
		return Lagrange, nil
	}
	return 0, fmt.Errorf("%w: unknown interpolation method %q", ErrInvalidParams, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Meth) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Meth) UnmarshalText(text []byte) error {
	v, err := ParseMeth(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func reweightX(x float64) float64 {
	r := math.Sqrt(x) / (1.0 - 0.99*x)
	return r * r * r
}

// fy2 maps a momentum fraction into interpolation space.
func fy2(x float64) float64 {
	return math.FMA(1.0-x, 5.0, -math.Log(x))
}

// fx2 inverts fy2 with Newton's method.
func fx2(y float64) float64 {
	yp := y

	for range 100 {
		x := math.Exp(-yp)
		delta := y - yp - 5.0*(1.0-x)
		if math.Abs(delta) < 1e-12 {
			return x
		}
		deriv := -1.0 - 5.0*x
		yp -= delta / deriv
	}

	panic(fmt.Sprintf("interp: no convergence inverting y = %g", y))
}

// ftau0 maps a squared scale into interpolation space.
func ftau0(q2 float64) float64 {
	return math.Log(math.Log(q2 / 0.0625))
}

// fq20 inverts ftau0.
func fq20(tau float64) float64 {
	return 0.0625 * math.Exp(math.Exp(tau))
}

func (m Map) xToY(x float64) float64 {
	switch m {
	case ApplGridF2:
		return fy2(x)
	case ApplGridH0:
		return ftau0(x)
	default:
		panic(fmt.Sprintf("interp: unknown map %d", uint8(m)))
	}
}

func (m Map) yToX(y float64) float64 {
	switch m {
	case ApplGridF2:
		return fx2(y)
	case ApplGridH0:
		return fq20(y)
	default:
		panic(fmt.Sprintf("interp: unknown map %d", uint8(m)))
	}
}

// lagrangeWeight returns the i-th Lagrange basis polynomial of order n at u,
// for nodes at 0, 1, ..., n.
func lagrangeWeight(i, n int, u float64) float64 {
	factorials := 1
	product := 1.0
	for z := range i {
		product *= u - float64(z)
		factorials *= i - z
	}
	for z := i + 1; z <= n; z++ {
		product *= float64(z) - u
		factorials *= z - i
	}
	return product / float64(factorials)
}
