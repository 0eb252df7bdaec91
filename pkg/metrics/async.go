package metrics

import (
	"sync"
	"sync/atomic"
)

// AsyncObserver decouples recording from delivery: events go through
// a buffered channel and a single drain goroutine, so a slow backend
// never blocks the caller. When the buffer is full, events are
// dropped and counted.
type AsyncObserver struct {
	inner   Observer
	ch      chan Event
	dropped int64
	closed  atomic.Bool
	once    sync.Once
}

func NewAsyncObserver(inner Observer, buffer int) *AsyncObserver {
	if buffer <= 0 {
		buffer = 256
	}
	a := &AsyncObserver{
		inner: inner,
		ch:    make(chan Event, buffer),
	}
	go a.loop()
	return a
}

func (a *AsyncObserver) RecordEvent(ev Event) {
	if a == nil || a.closed.Load() {
		return
	}
	select {
	case a.ch <- ev:
	default:
		atomic.AddInt64(&a.dropped, 1)
	}
}

// Dropped reports how many events were discarded on a full buffer.
func (a *AsyncObserver) Dropped() int64 {
	return atomic.LoadInt64(&a.dropped)
}

// Close stops intake. Buffered events still drain to the inner
// observer.
func (a *AsyncObserver) Close() {
	if a == nil {
		return
	}
	a.once.Do(func() {
		a.closed.Store(true)
		close(a.ch)
	})
}

func (a *AsyncObserver) loop() {
	for ev := range a.ch {
		a.inner.RecordEvent(ev)
	}
}
