package master

import (
	"log"
	"math/rand"
)

// Seed offsets keep the five channels on decorrelated random streams while
// the whole dispatcher stays reproducible from a single base seed.
const (
	seedOffsetAW int64 = iota
	seedOffsetW
	seedOffsetB
	seedOffsetAR
	seedOffsetR
)

// A Throttle decides, once per clock cycle, whether a channel may assert its
// handshake signal. Each decision is one uniform draw from the channel's own
// random stream, so the outcome of a run depends only on the base seed and
// the per-channel decision counts.
type Throttle struct {
	prob float64
	rng  *rand.Rand
}

// NewThrottle creates a throttle that allows a fraction prob of the
// decisions. A probability of 1 always allows, 0 never allows.
func NewThrottle(prob float64, seed int64) *Throttle {
	if prob < 0 || prob > 1 {
		log.Panicf("throttle probability %f out of range", prob)
	}

	return &Throttle{
		prob: prob,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Allow draws the decision for the current cycle.
func (t *Throttle) Allow() bool {
	return t.rng.Float64() < t.prob
}
