package convolution

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/sparsegrid/pids"
)

// ErrUnknownConvType is returned when parsing an unknown convolution type.
var ErrUnknownConvType = errors.New("convolution: unknown convolution type")

// ConvType is the kind of distribution a convolution is performed with.
type ConvType uint8

const (
	// UnpolPDF is an unpolarized parton distribution function.
	UnpolPDF ConvType = iota
	// PolPDF is a polarized parton distribution function.
	PolPDF
	// UnpolFF is an unpolarized fragmentation function.
	UnpolFF
	// PolFF is a polarized fragmentation function.
	PolFF
)

var convTypeNames = [...]string{"UnpolPDF", "PolPDF", "UnpolFF", "PolFF"}

// NewConvType selects the type from polarization and time-likeness.
func NewConvType(polarized, timeLike bool) ConvType {
	switch {
	case polarized && timeLike:
		return PolFF
	case polarized:
		return PolPDF
	case timeLike:
		return UnpolFF
	default:
		return UnpolPDF
	}
}

// IsPDF reports whether t is evaluated at the factorization scale.
func (t ConvType) IsPDF() bool { return t == UnpolPDF || t == PolPDF }

func (t ConvType) String() string {
	if int(t) < len(convTypeNames) {
		return convTypeNames[t]
	}
	return "ConvType(" + strconv.Itoa(int(t)) + ")"
}

// ParseConvType parses the string form of a ConvType.
func ParseConvType(s string) (ConvType, error) {
	for i, name := range convTypeNames {
		if name == s {
			return ConvType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConvType, s)
}

func (t ConvType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ConvType) UnmarshalText(text []byte) error {
	v, err := ParseConvType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Conv identifies one convolution of a grid: the distribution type and the
// hadron it describes.
type Conv struct {
	Type ConvType `json:"type"`
	PID  int32    `json:"pid"`
}

// NewConv returns a Conv.
func NewConv(t ConvType, pid int32) Conv { return Conv{Type: t, PID: pid} }

// CC returns the convolution with the charge-conjugated hadron.
func (c Conv) CC() Conv {
	return Conv{Type: c.Type, PID: pids.ChargeConjugatePDG(c.PID)}
}

// String returns "type:pid", for example "UnpolPDF:2212".
func (c Conv) String() string {
	return c.Type.String() + ":" + strconv.FormatInt(int64(c.PID), 10)
}

// ParseConv parses the string form of a Conv.
func ParseConv(s string) (Conv, error) {
	name, pid, ok := strings.Cut(s, ":")
	if !ok {
		return Conv{}, fmt.Errorf("convolution: missing ':' in %q", s)
	}

	t, err := ParseConvType(strings.TrimSpace(name))
	if err != nil {
		return Conv{}, err
	}

	v, err := strconv.ParseInt(strings.TrimSpace(pid), 10, 32)
	if err != nil {
		return Conv{}, fmt.Errorf("convolution: invalid pid in %q: %w", s, err)
	}

	return Conv{Type: t, PID: int32(v)}, nil
}

// ConvolutionMismatchError is returned when no distribution of a Cache
// matches a convolution of a grid, neither directly nor charge conjugated.
type ConvolutionMismatchError struct {
	Index int
	Conv  Conv
}

func (e *ConvolutionMismatchError) Error() string {
	return fmt.Sprintf("convolution: no distribution for convolution %d (%s)", e.Index, e.Conv)
}
