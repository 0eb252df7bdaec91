// Package metrics is a small instrumentation facade: applications
// record backend-agnostic events, observers decide where they go.
// The statsd observer forwards to a statline client; memory and JSONL
// observers serve tests and local debugging.
package metrics

import "time"

// Kind classifies an Event the way the statsd wire protocol does.
type Kind int

const (
	KindCounter Kind = iota
	KindGauge
	KindGaugeDelta
	KindTiming
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindGaugeDelta:
		return "gauge_delta"
	case KindTiming:
		return "timing"
	default:
		return "unknown"
	}
}

// Event is one metric observation. Value carries counter deltas and
// gauge values; Duration carries timings. Rate applies to counters
// only; zero means unsampled.
type Event struct {
	Name     string
	Time     time.Time
	Kind     Kind
	Value    int64
	Duration time.Duration
	Rate     float64
}

// Counter builds a counter event sampled at rate.
func Counter(name string, delta int64, rate float64) Event {
	return Event{Name: name, Time: time.Now(), Kind: KindCounter, Value: delta, Rate: rate}
}

// Gauge builds an absolute gauge event.
func Gauge(name string, value int64) Event {
	return Event{Name: name, Time: time.Now(), Kind: KindGauge, Value: value}
}

// GaugeDelta builds a relative gauge event.
func GaugeDelta(name string, delta int64) Event {
	return Event{Name: name, Time: time.Now(), Kind: KindGaugeDelta, Value: delta}
}

// Timing builds a timing event.
func Timing(name string, d time.Duration) Event {
	return Event{Name: name, Time: time.Now(), Kind: KindTiming, Duration: d}
}

type Observer interface {
	RecordEvent(ev Event)
}

type NoopObserver struct{}

func (NoopObserver) RecordEvent(Event) {}
