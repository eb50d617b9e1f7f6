package common

import (
	"math/rand"
	"time"
)

// PRNG wraps a seeded generator so spawn decisions are reproducible for a
// given seed.
type PRNG struct {
	rng *rand.Rand
}

// Weighted is one entry of a weighted choice table.
type Weighted struct {
	Name   string
	Weight int
}

// NewPRNG creates a generator. A zero seed uses the current time.
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a number in [0, n). n <= 0 yields 0.
func (p *PRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return p.rng.Intn(n)
}

func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// Range returns a float in [lo, hi).
func (p *PRNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Float64()*(hi-lo)
}

// ChooseWeighted picks an entry name proportionally to its weight. An empty
// table yields "", a table whose weights sum to zero yields the first name.
func (p *PRNG) ChooseWeighted(entries []Weighted) string {
	if len(entries) == 0 {
		return ""
	}

	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return entries[0].Name
	}

	r := p.Intn(total)
	upto := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if upto+e.Weight > r {
			return e.Name
		}
		upto += e.Weight
	}
	return entries[len(entries)-1].Name
}
