package testutil

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uniform returns a pseudo-random number in [lo, hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rand.Float64()*(hi-lo)
}

// LogUniform returns a pseudo-random number in [lo, hi) whose logarithm is
// uniformly distributed. Both bounds must be positive.
func (r *RNG) LogUniform(lo, hi float64) float64 {
	v := math.Exp(r.Uniform(math.Log(lo), math.Log(hi)))
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return max(v, lo)
}

// Event is one weighted Drell-Yan-like event: the squared scale, the two
// momentum fractions and the rapidity of the produced system.
type Event struct {
	Q2, X1, X2 float64
	Observable float64
	Weight     float64
}

// Ntuple returns the coordinates in the sequence a grid is filled with.
func (e Event) Ntuple() []float64 { return []float64{e.Q2, e.X1, e.X2} }

// Events generates n events with squared invariant masses between q2min and
// q2max at a hadronic centre-of-mass energy of 7 TeV.
func (r *RNG) Events(n int, q2min, q2max float64) []Event {
	const s = 7000.0 * 7000.0

	events := make([]Event, 0, n)
	for len(events) < n {
		q2 := r.LogUniform(q2min, q2max)
		tau := q2 / s
		y := r.Uniform(0.5*math.Log(tau), -0.5*math.Log(tau))

		x1 := math.Sqrt(tau) * math.Exp(y)
		x2 := math.Sqrt(tau) * math.Exp(-y)
		if x1 >= 1 || x2 >= 1 {
			continue
		}

		events = append(events, Event{
			Q2:         q2,
			X1:         x1,
			X2:         x2,
			Observable: math.Abs(y),
			Weight:     r.Uniform(0.5, 1.5) / q2,
		})
	}

	return events
}

// ToyXFX is a smooth stand-in for x times a parton distribution.
func ToyXFX(pid int32, x, q2 float64) float64 {
	flavour := 1.0 + 0.1*math.Abs(float64(pid%20))
	if pid < 0 {
		flavour *= 0.5
	}
	return flavour * math.Sqrt(x) * math.Pow(1-x, 3) * (1 + 0.05*math.Log(q2))
}

// ToyAlphaS is a one-loop running coupling with α_s(M_Z²) = 0.118.
func ToyAlphaS(q2 float64) float64 {
	const (
		mz2 = 91.1876 * 91.1876
		b0  = (33 - 2*5) / (12 * math.Pi)
	)
	return 0.118 / (1 + 0.118*b0*math.Log(q2/mz2))
}

// Counting wraps xfx and counts its invocations.
func Counting(xfx func(int32, float64, float64) float64) (func(int32, float64, float64) float64, *atomic.Int64) {
	var n atomic.Int64
	return func(pid int32, x, q2 float64) float64 {
		n.Add(1)
		return xfx(pid, x, q2)
	}, &n
}
