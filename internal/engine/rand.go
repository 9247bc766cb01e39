package engine

import "math/rand"

// NumberGenerator abstracts every source of randomness the engine consumes so
// tests can substitute a scripted sequence.
type NumberGenerator interface {
	// RollTwoDice returns two independent d6 values.
	RollTwoDice() (d1, d2 int)
	// IntN returns a value in [0, max).
	IntN(max int) int
}

// RandomGenerator is the production NumberGenerator. Instantiate one per
// session; *rand.Rand is not safe for concurrent use.
type RandomGenerator struct {
	rng *rand.Rand
}

func NewRandomGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *RandomGenerator) RollTwoDice() (int, int) {
	return g.rng.Intn(6) + 1, g.rng.Intn(6) + 1
}

func (g *RandomGenerator) IntN(max int) int { return g.rng.Intn(max) }
