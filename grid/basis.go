package grid

import (
	"fmt"
	"slices"

	"github.com/hupe1980/sparsegrid/boc"
	"github.com/hupe1980/sparsegrid/pids"
)

// PIDBasisKey is the metadata key recording the basis of the channel ids.
const PIDBasisKey = "lumi_id_types"

// PIDBasis returns the basis the channel parton ids are written in. A basis
// recorded in the metadata wins over one guessed from the ids.
func (g *Grid) PIDBasis() pids.Basis {
	if b, err := pids.ParseBasis(g.metadata[PIDBasisKey]); err == nil {
		return b
	}
	return pids.DetermineBasis(g.ChannelPIDs())
}

// ChannelPIDs returns the distinct parton ids of all channels in ascending
// order.
func (g *Grid) ChannelPIDs() []int32 {
	var ids []int32
	for _, c := range g.channels {
		for _, e := range c.Entries() {
			ids = append(ids, e.PIDs...)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// ChargeConjugate replaces the hadron of convolution d by its antiparticle
// and conjugates the parton ids of that convolution in every channel.
// Convolutions with the same distributions give the same result before and
// after.
func (g *Grid) ChargeConjugate(d int) error {
	if d < 0 || d >= len(g.convs) {
		return fmt.Errorf("%w: convolution %d of %d", ErrOutOfRange, d, len(g.convs))
	}

	basis := g.PIDBasis()
	for i, c := range g.channels {
		entries := cloneEntries(c.Entries())
		for j := range entries {
			pid, sign := pids.ChargeConjugate(basis, entries[j].PIDs[d])
			entries[j].PIDs[d] = pid
			entries[j].Factor *= sign
		}

		cc, err := boc.NewChannel(entries...)
		if err != nil {
			return err
		}
		g.channels[i] = cc
	}

	g.convs[d] = g.convs[d].CC()
	return nil
}

// RotatePIDBasis rewrites the channels in basis to. Only the rotation from
// the evolution basis to PDG ids is supported; every evolution id is a fixed
// combination of PDG ids, so subgrids are unchanged.
func (g *Grid) RotatePIDBasis(to pids.Basis) error {
	from := g.PIDBasis()
	switch {
	case from == to:
	case from == pids.Evol && to == pids.PDG:
		for i, c := range g.channels {
			var entries []boc.Entry
			for _, e := range c.Entries() {
				entries = append(entries, evolToPDG(e)...)
			}

			rotated, err := boc.NewChannel(entries...)
			if err != nil {
				return fmt.Errorf("%w: channel %d vanishes in %s", ErrInvalid, i, to)
			}
			g.channels[i] = rotated
		}
	default:
		return fmt.Errorf("%w: can not rotate channels from %s to %s", ErrInvalid, from, to)
	}

	g.metadata[PIDBasisKey] = to.String()
	return nil
}

// evolToPDG expands every id of e into PDG ids and multiplies out the
// resulting products.
func evolToPDG(e boc.Entry) []boc.Entry {
	out := []boc.Entry{{Factor: e.Factor}}
	for _, pid := range e.PIDs {
		terms := pids.EvolToPDG(pid)
		next := make([]boc.Entry, 0, len(out)*len(terms))
		for _, o := range out {
			for _, t := range terms {
				next = append(next, boc.Entry{
					PIDs:   append(slices.Clone(o.PIDs), t.PID),
					Factor: o.Factor * t.Factor,
				})
			}
		}
		out = next
	}
	return out
}

func cloneEntries(entries []boc.Entry) []boc.Entry {
	out := make([]boc.Entry, len(entries))
	for i, e := range entries {
		out[i] = boc.Entry{PIDs: slices.Clone(e.PIDs), Factor: e.Factor}
	}
	return out
}
