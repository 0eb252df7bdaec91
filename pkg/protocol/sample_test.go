package protocol

import (
	"math/rand/v2"
	"testing"
)

func TestShouldSendFullRateSkipsDraw(t *testing.T) {
	s := Sampler{Draw: func() float64 {
		t.Fatal("rate 1 must not consume a draw")
		return 0
	}}
	if !s.ShouldSend(1) {
		t.Fatalf("rate 1 must always send")
	}
}

func TestShouldSendZeroRate(t *testing.T) {
	s := Sampler{Draw: func() float64 { return 0 }}
	if s.ShouldSend(0) {
		t.Fatalf("rate 0 must never send")
	}
	if s.ShouldSend(-1) {
		t.Fatalf("negative rate must never send")
	}
}

func TestShouldSendComparesDraw(t *testing.T) {
	s := Sampler{Draw: func() float64 { return 0.49 }}
	if !s.ShouldSend(0.5) {
		t.Fatalf("draw below rate must send")
	}
	s.Draw = func() float64 { return 0.5 }
	if s.ShouldSend(0.5) {
		t.Fatalf("draw at rate must not send")
	}
}

func TestShouldSendConvergesToRate(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 13))
	s := Sampler{Draw: rng.Float64}
	const trials = 20000
	rate := 0.3
	sent := 0
	for i := 0; i < trials; i++ {
		if s.ShouldSend(rate) {
			sent++
		}
	}
	got := float64(sent) / trials
	if got < rate-0.02 || got > rate+0.02 {
		t.Fatalf("send frequency %.4f not within tolerance of %.2f", got, rate)
	}
}

func TestShouldSendTinyRate(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := Sampler{Draw: rng.Float64}
	sent := 0
	for i := 0; i < 100; i++ {
		if s.ShouldSend(1e-6) {
			sent++
		}
	}
	if sent != 0 {
		t.Fatalf("rate 1e-6 sent %d of 100 events", sent)
	}
}

func TestZeroValueSamplerUsesSharedSource(t *testing.T) {
	var s Sampler
	if !s.ShouldSend(1) {
		t.Fatalf("zero value sampler must send at rate 1")
	}
}
