package boc

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Order holds the exponents of the strong coupling, the electroweak coupling
// and the logarithms of the renormalization, factorization and fragmentation
// scale ratios.
type Order struct {
	Alphas uint8
	Alpha  uint8
	LogXiR uint8
	LogXiF uint8
	LogXiA uint8
}

// NewOrder returns an Order with the given exponents.
func NewOrder(alphas, alpha, logxir, logxif, logxia uint8) Order {
	return Order{Alphas: alphas, Alpha: alpha, LogXiR: logxir, LogXiF: logxif, LogXiA: logxia}
}

// HasLogs reports whether any scale logarithm has a non-zero exponent.
func (o Order) HasLogs() bool {
	return o.LogXiR > 0 || o.LogXiF > 0 || o.LogXiA > 0
}

// String returns the compact form, e.g. "as1a2lr1". The exponent of alphas
// is always written.
func (o Order) String() string {
	var sb strings.Builder
	sb.WriteString("as")
	sb.WriteString(strconv.Itoa(int(o.Alphas)))
	for _, part := range []struct {
		label string
		exp   uint8
	}{{"a", o.Alpha}, {"lr", o.LogXiR}, {"lf", o.LogXiF}, {"la", o.LogXiA}} {
		if part.exp > 0 {
			sb.WriteString(part.label)
			sb.WriteString(strconv.Itoa(int(part.exp)))
		}
	}
	return sb.String()
}

// ParseOrder parses the compact form of an order. Labels are "as", "a",
// "lr", "lf" and "la", each followed by its exponent; missing labels have
// exponent zero.
func ParseOrder(s string) (Order, error) {
	var o Order

	rest := s
	for rest != "" {
		split := strings.IndexFunc(rest, unicode.IsDigit)
		if split < 0 {
			return Order{}, fmt.Errorf("%w: missing exponent of '%s'", ErrParse, rest)
		}
		label := rest[:split]
		rest = rest[split:]

		end := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if end < 0 {
			end = len(rest)
		}
		digits := rest[:end]
		rest = rest[end:]

		n, err := strconv.ParseUint(digits, 10, 8)
		if err != nil {
			return Order{}, fmt.Errorf("%w: error while parsing exponent of '%s': %w", ErrParse, label, err)
		}

		switch label {
		case "as":
			o.Alphas = uint8(n)
		case "a":
			o.Alpha = uint8(n)
		case "lr":
			o.LogXiR = uint8(n)
		case "lf":
			o.LogXiF = uint8(n)
		case "la":
			o.LogXiA = uint8(n)
		default:
			return Order{}, fmt.Errorf("%w: unknown coupling: '%s'", ErrParse, label)
		}
	}

	return o, nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(text []byte) error {
	v, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// CompareOrders sorts leading orders before higher orders, then by the power
// of alpha and the logarithms.
func CompareOrders(a, b Order) int {
	return cmp.Or(
		cmp.Compare(int(a.Alphas)+int(a.Alpha), int(b.Alphas)+int(b.Alpha)),
		cmp.Compare(a.Alpha, b.Alpha),
		cmp.Compare(a.LogXiR, b.LogXiR),
		cmp.Compare(a.LogXiF, b.LogXiF),
		cmp.Compare(a.LogXiA, b.LogXiA),
	)
}

// CreateMask selects orders up to maxAs powers of alphas and maxAl powers
// of alpha beyond the leading order. For instance maxAs = 2 and maxAl = 0
// selects NLO QCD. Orders with logarithms are selected only if logs is set.
func CreateMask(orders []Order, maxAs, maxAl uint8, logs bool) []bool {
	mask := make([]bool, len(orders))
	if len(orders) == 0 {
		return mask
	}

	lo := int(orders[0].Alphas) + int(orders[0].Alpha)
	for _, o := range orders[1:] {
		lo = min(lo, int(o.Alphas)+int(o.Alpha))
	}

	loAs, loAl := 0, 0
	for _, o := range orders {
		if int(o.Alphas)+int(o.Alpha) == lo {
			loAs = max(loAs, int(o.Alphas))
			loAl = max(loAl, int(o.Alpha))
		}
	}

	hi := int(max(maxAs, maxAl))
	lowest := int(min(maxAs, maxAl))

	for i, o := range orders {
		if !logs && o.HasLogs() {
			continue
		}

		sum := int(o.Alphas) + int(o.Alpha)
		pto := sum - lo

		switch {
		case sum < lowest+lo:
			mask[i] = true
		case sum < hi+lo && maxAs > maxAl:
			mask[i] = loAs+pto == int(o.Alphas)
		case sum < hi+lo && maxAs < maxAl:
			mask[i] = loAl+pto == int(o.Alpha)
		}
	}

	return mask
}
