package game

import (
	"time"

	"golang.org/x/exp/rand"
)

// Rand is the source of uniformly distributed integers used for placement and headings
type Rand interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// NewRand returns a seeded generator; seed 0 seeds from the clock
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(uint64(seed)))
}

// randRange returns a value in [lo, hi), or lo when the range is empty
func randRange(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}
