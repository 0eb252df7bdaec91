package mock

import (
	"sync"
	"sync/atomic"
)

// Sender is an in-memory sender for local testing and integration.
// It implements the transports.Sender interface without any network
// dependency, records every line, and can be primed to fail the way a
// broken socket would.
type Sender struct {
	mu     sync.Mutex
	lines  []string
	err    error
	closed atomic.Bool
}

func New() *Sender {
	return &Sender{}
}

func (s *Sender) Name() string { return "mock" }

func (s *Sender) Send(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, line)
	return nil
}

func (s *Sender) Close() error {
	s.closed.CompareAndSwap(false, true)
	return nil
}

// FailWith makes every following Send return err. Pass nil to heal.
func (s *Sender) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Lines exposes a copy of the captured lines for inspection.
func (s *Sender) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Closed reports whether Close has been called.
func (s *Sender) Closed() bool { return s.closed.Load() }
