// Package dice provides the random source consumed by every stochastic rule in the engine.
// Rules take a Roller so tests can substitute a deterministic Sequence.
package dice

import (
	"math"
	"math/rand/v2"
	"time"
)

// Roller is the random source used by the simulation.
type Roller interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n <= 0 returns 0.
	IntN(n int) int
}

type pcgRoller struct {
	r *rand.Rand
}

// New returns a Roller seeded with seed. A zero seed uses the current time.
func New(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &pcgRoller{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

func (p *pcgRoller) Float64() float64 { return p.r.Float64() }

func (p *pcgRoller) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return p.r.IntN(n)
}

// Percent returns a roll in [0, 100).
func Percent(r Roller) float64 {
	return r.Float64() * 100
}

// Chance reports whether a roll succeeds at probability p (0..1).
func Chance(r Roller, p float64) bool {
	return r.Float64() < p
}

// Range returns a value in [lo, hi]. Swapped bounds are tolerated.
func Range(r Roller, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Seed draws a non-zero seed from r.
func Seed(r Roller) int64 {
	return int64(r.IntN(math.MaxInt32)) + 1
}

// Pick returns a uniformly chosen index for a slice of length n, or -1 if n is 0.
func Pick(r Roller, n int) int {
	if n <= 0 {
		return -1
	}
	return r.IntN(n)
}
