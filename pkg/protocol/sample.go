package protocol

import "math/rand/v2"

// Sampler decides whether an event at a given sampling rate is sent.
// The zero value draws from the shared math/rand/v2 source.
type Sampler struct {
	// Draw returns one uniform float in [0,1). Nil falls back to the
	// shared source; tests inject a deterministic func here.
	Draw func() float64
}

// ShouldSend draws once against rate and reports whether the event goes
// out. A rate of 1 (or more) always sends without consuming a draw; a
// rate of 0 or less never sends.
func (s Sampler) ShouldSend(rate float64) bool {
	if rate >= DefaultRate {
		return true
	}
	draw := s.Draw
	if draw == nil {
		draw = rand.Float64
	}
	return draw() < rate
}
