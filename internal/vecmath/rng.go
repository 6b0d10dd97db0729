package vecmath

import "math/rand/v2"

// RNG is a per-worker uniform random source. The source repo's uniform
// helper constructed a fresh distribution on each call against a shared,
// thread-unsafe default source; that pattern breaks under tile-parallel
// rendering, so every worker here owns an independent *rand.Rand seeded
// from a global seed plus its worker id (see internal/render).
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a PRNG from a base seed and a worker id so that concurrent
// workers never share mutable generator state.
func NewRNG(seed uint64, workerID int) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, uint64(workerID)))}
}

// Float64 draws a uniform sample in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Vector2 draws two independent uniform samples, the common input shape for
// area and hemisphere sampling.
func (g *RNG) Vector2() (u1, u2 float64) {
	return g.r.Float64(), g.r.Float64()
}
