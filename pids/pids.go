// Package pids provides helpers for parton ids in the PDG Monte Carlo
// numbering scheme and in the evolution basis.
package pids

import (
	"fmt"
	"slices"
)

// Basis names the numbering scheme of the parton ids of a grid.
type Basis uint8

const (
	// PDG is the PDG Monte Carlo numbering scheme.
	PDG Basis = iota
	// Evol is the evolution basis: singlet 100, T3 103, ..., valence 200, V3 203, ...
	Evol
)

func (b Basis) String() string {
	switch b {
	case PDG:
		return "pdg_mc_ids"
	case Evol:
		return "evol"
	default:
		return fmt.Sprintf("Basis(%d)", uint8(b))
	}
}

// ParseBasis parses the string form of a Basis.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "pdg_mc_ids", "pdg":
		return PDG, nil
	case "evol":
		return Evol, nil
	default:
		return 0, fmt.Errorf("pids: unknown basis %q", s)
	}
}

// Term is one parton id of a linear combination.
type Term struct {
	PID    int32
	Factor float64
}

var evolBasisIDs = []int32{100, 103, 108, 115, 124, 135, 200, 203, 208, 215, 224, 235}

// ChargeConjugatePDG returns the antiparticle of pid. Gluons (21) and
// photons (22) are their own antiparticles.
func ChargeConjugatePDG(pid int32) int32 {
	switch pid {
	case 21, 22:
		return pid
	default:
		return -pid
	}
}

// ChargeConjugate returns the charge-conjugated id of pid in basis together
// with the sign picked up by the conjugation.
func ChargeConjugate(basis Basis, pid int32) (int32, float64) {
	if basis == Evol {
		switch pid {
		case 100, 103, 108, 115, 124, 135:
			return pid, 1
		case 200, 203, 208, 215, 224, 235:
			return pid, -1
		}
	}
	return ChargeConjugatePDG(pid), 1
}

// EvolToPDG translates an evolution-basis id into PDG ids. Ids that are not
// part of the evolution basis are returned unchanged.
func EvolToPDG(id int32) []Term {
	// quark flavours entering each combination and the weight of the last one
	var (
		flavours []int32
		last     float64
		valence  bool
	)

	switch id {
	case 100, 200:
		flavours, last = []int32{2, 1, 3, 4, 5, 6}, 1
	case 103, 203:
		return combine([]Term{{2, 1}, {1, -1}}, id >= 200)
	case 108, 208:
		flavours, last = []int32{2, 1, 3}, -2
	case 115, 215:
		flavours, last = []int32{2, 1, 3, 4}, -3
	case 124, 224:
		flavours, last = []int32{2, 1, 3, 4, 5}, -4
	case 135, 235:
		flavours, last = []int32{2, 1, 3, 4, 5, 6}, -5
	default:
		return []Term{{id, 1}}
	}
	valence = id >= 200

	quarks := make([]Term, len(flavours))
	for i, f := range flavours {
		quarks[i] = Term{f, 1}
	}
	quarks[len(quarks)-1].Factor = last

	return combine(quarks, valence)
}

// combine adds the antiquark of every quark, with opposite sign for valence
// combinations.
func combine(quarks []Term, valence bool) []Term {
	terms := make([]Term, 0, 2*len(quarks))
	for _, q := range quarks {
		anti := q.Factor
		if valence {
			anti = -anti
		}
		terms = append(terms, q, Term{-q.PID, anti})
	}
	return terms
}

// DetermineBasis guesses the basis of a set of parton ids: more than three
// evolution-basis ids select Evol.
func DetermineBasis(pids []int32) Basis {
	n := 0
	for _, pid := range pids {
		if slices.Contains(evolBasisIDs, pid) {
			n++
		}
	}
	if n > 3 {
		return Evol
	}
	return PDG
}
