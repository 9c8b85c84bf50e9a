package tagging

import (
	"math/rand/v2"
	"time"
)

// A VictimFinder decides which line of a full set should be overwritten.
type VictimFinder interface {
	FindVictim(set *Set) (wayID int)
}

// RandomVictimFinder evicts a uniformly random way. Every call makes a fresh
// draw and no way is excluded.
type RandomVictimFinder struct {
	rng *rand.Rand
}

// NewRandomVictimFinder returns a random evictor seeded with seed. A zero
// seed selects a time-based seed.
func NewRandomVictimFinder(seed uint64) *RandomVictimFinder {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return NewRandomVictimFinderWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomVictimFinderWithSource returns a random evictor that draws from
// the given source.
func NewRandomVictimFinderWithSource(src rand.Source) *RandomVictimFinder {
	return &RandomVictimFinder{rng: rand.New(src)}
}

// FindVictim returns a random way of the set.
func (e *RandomVictimFinder) FindVictim(set *Set) int {
	return e.rng.IntN(len(set.Lines))
}
