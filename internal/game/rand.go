package game

import (
	"hash/maphash"
	"math/rand/v2"
)

// NewRand builds a PCG source seeded from maphash, good enough for mine
// placement and solver tie-breaking without any global seeding.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
}
