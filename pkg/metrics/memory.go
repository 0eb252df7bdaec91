package metrics

import "sync"

// MemoryObserver collects events in memory for tests and local
// introspection.
type MemoryObserver struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryObserver() *MemoryObserver {
	return &MemoryObserver{}
}

func (m *MemoryObserver) RecordEvent(ev Event) {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()
}

// Snapshot returns a copy of everything recorded so far.
func (m *MemoryObserver) Snapshot() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}
