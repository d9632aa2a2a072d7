package boc

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// zeroFactor is the magnitude below which a summed factor is dropped.
const zeroFactor = 1e-14

// Entry is one term of a Channel: a tuple of parton ids, one per
// convolution, and its factor.
type Entry struct {
	PIDs   []int32
	Factor float64
}

// Channel is a linear combination of parton-id tuples. Channels are kept in
// canonical form: entries sorted by PIDs, repeated tuples summed and zero
// factors removed.
type Channel struct {
	entries []Entry
}

// NewChannel creates a canonical channel from entries. All tuples must have
// the same length.
func NewChannel(entries ...Entry) (Channel, error) {
	if len(entries) == 0 {
		return Channel{}, fmt.Errorf("%w: can not create empty channel", ErrInvalid)
	}
	for _, e := range entries[1:] {
		if len(e.PIDs) != len(entries[0].PIDs) {
			return Channel{}, fmt.Errorf("%w: can not create channel with a different number of PIDs", ErrInvalid)
		}
	}

	sorted := make([]Entry, len(entries))
	for i, e := range entries {
		sorted[i] = Entry{PIDs: slices.Clone(e.PIDs), Factor: e.Factor}
	}
	slices.SortStableFunc(sorted, func(a, b Entry) int { return slices.Compare(a.PIDs, b.PIDs) })

	canonical := make([]Entry, 0, len(sorted))
	for _, e := range sorted {
		if n := len(canonical); n > 0 && slices.Equal(canonical[n-1].PIDs, e.PIDs) {
			canonical[n-1].Factor += e.Factor
			continue
		}
		canonical = append(canonical, e)
	}

	canonical = slices.DeleteFunc(canonical, func(e Entry) bool {
		return math.Abs(e.Factor) <= zeroFactor
	})

	return Channel{entries: canonical}, nil
}

// MustChannel is like NewChannel but panics on error.
func MustChannel(entries ...Entry) Channel {
	c, err := NewChannel(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// Entries returns the canonical entries. The result must not be modified.
func (c Channel) Entries() []Entry {
	return c.entries
}

// Arity returns the number of parton ids per entry.
func (c Channel) Arity() int {
	if len(c.entries) == 0 {
		return 0
	}
	return len(c.entries[0].PIDs)
}

// Equal reports whether c and o have identical entries.
func (c Channel) Equal(o Channel) bool {
	return slices.EqualFunc(c.entries, o.entries, func(a, b Entry) bool {
		return a.Factor == b.Factor && slices.Equal(a.PIDs, b.PIDs)
	})
}

// Transpose returns the channel with the parton ids at positions i and j
// swapped.
func (c Channel) Transpose(i, j int) Channel {
	entries := make([]Entry, len(c.entries))
	for k, e := range c.entries {
		pids := slices.Clone(e.PIDs)
		pids[i], pids[j] = pids[j], pids[i]
		entries[k] = Entry{PIDs: pids, Factor: e.Factor}
	}
	if len(entries) == 0 {
		return Channel{}
	}
	return MustChannel(entries...)
}

// CommonFactor returns f such that c equals o multiplied by f, provided
// both channels have the same parton-id tuples.
func (c Channel) CommonFactor(o Channel) (float64, bool) {
	if len(c.entries) != len(o.entries) || len(c.entries) == 0 {
		return 0, false
	}

	factor := 0.0
	for k, e := range c.entries {
		if !slices.Equal(e.PIDs, o.entries[k].PIDs) {
			return 0, false
		}
		f := e.Factor / o.entries[k].Factor
		if k == 0 {
			factor = f
		} else if !scalar.EqualWithinULP(factor, f, 4) {
			return 0, false
		}
	}
	return factor, true
}

// String returns the form accepted by ParseChannel, e.g.
// "1 * (2, -2) + 0.5 * (4, -4)".
func (c Channel) String() string {
	terms := make([]string, len(c.entries))
	for k, e := range c.entries {
		pids := make([]string, len(e.PIDs))
		for i, pid := range e.PIDs {
			pids[i] = strconv.FormatInt(int64(pid), 10)
		}
		// "+" separates terms
		factor := strings.Replace(strconv.FormatFloat(e.Factor, 'g', -1, 64), "e+", "e", 1)
		terms[k] = factor + " * (" + strings.Join(pids, ", ") + ")"
	}
	return strings.Join(terms, " + ")
}

// ParseChannel parses a sum of terms "factor * (pid, pid, ...)".
func ParseChannel(s string) (Channel, error) {
	var entries []Entry

	for _, term := range strings.Split(s, "+") {
		factorStr, pidsStr, ok := strings.Cut(term, "*")
		if !ok {
			return Channel{}, fmt.Errorf("%w: missing '*' in '%s'", ErrParse, term)
		}

		factor, err := strconv.ParseFloat(strings.TrimSpace(factorStr), 64)
		if err != nil {
			return Channel{}, fmt.Errorf("%w: %w", ErrParse, err)
		}

		inner, ok := strings.CutPrefix(strings.TrimSpace(pidsStr), "(")
		if !ok {
			return Channel{}, fmt.Errorf("%w: missing '(' in '%s'", ErrParse, pidsStr)
		}
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return Channel{}, fmt.Errorf("%w: missing ')' in '%s'", ErrParse, pidsStr)
		}

		var pids []int32
		for _, field := range strings.Split(inner, ",") {
			pid, err := strconv.ParseInt(strings.TrimSpace(field), 10, 32)
			if err != nil {
				return Channel{}, fmt.Errorf("%w: could not parse PID: '%s': %w", ErrParse, field, err)
			}
			pids = append(pids, int32(pid))
		}

		entries = append(entries, Entry{PIDs: pids, Factor: factor})
	}

	for _, e := range entries[1:] {
		if len(e.PIDs) != len(entries[0].PIDs) {
			return Channel{}, fmt.Errorf("%w: PID tuples have different lengths", ErrParse)
		}
	}

	return NewChannel(entries...)
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(text []byte) error {
	// all factors of a channel may have cancelled
	if strings.TrimSpace(string(text)) == "" {
		*c = Channel{}
		return nil
	}
	v, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
