package metrics

import "github.com/harunnryd/statline/pkg/statline"

// StatsdObserver forwards events to a statline client, one wire line
// per event. Counter rates pass through to the client's sampler.
type StatsdObserver struct {
	client *statline.Client
}

func NewStatsdObserver(client *statline.Client) *StatsdObserver {
	return &StatsdObserver{client: client}
}

func (o *StatsdObserver) RecordEvent(ev Event) {
	switch ev.Kind {
	case KindCounter:
		rate := ev.Rate
		if rate <= 0 {
			rate = 1
		}
		o.client.Increment(ev.Name, ev.Value, rate)
	case KindGauge:
		o.client.Gauge(ev.Name, ev.Value)
	case KindGaugeDelta:
		o.client.GaugeDelta(ev.Name, ev.Value)
	case KindTiming:
		o.client.Timing(ev.Name, ev.Duration)
	}
}
