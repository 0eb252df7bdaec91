package transports

// Sender delivers finished protocol lines to a metrics backend.
// Implementations own their network lifecycle and must tolerate
// concurrent Send calls.
type Sender interface {
	Name() string
	Send(line string) error
	Close() error
}

// Noop discards every line. The client falls back to it whenever
// emission is disabled or the real transport cannot be built.
type Noop struct{}

func (Noop) Name() string           { return "noop" }
func (Noop) Send(line string) error { return nil }
func (Noop) Close() error           { return nil }
