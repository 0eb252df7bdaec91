package statline

import "time"

// Time runs fn, reports its wall-clock duration under name, and hands
// back fn's result untouched. The timing is emitted even when fn
// panics; the panic then continues up the stack. rate is accepted for
// call-site symmetry with Increment but timings are never sampled.
func Time[T any](c *Client, name string, rate float64, fn func() T) T {
	t := c.NewTiming()
	defer t.Send(name)
	return fn()
}

// Timer measures elapsed time for flows where a closure does not fit,
// such as deferred sends across early returns.
type Timer struct {
	c     *Client
	start time.Time
}

// NewTiming starts a Timer against the client's clock.
func (c *Client) NewTiming() Timer {
	return Timer{c: c, start: time.Now()}
}

// Send emits the elapsed time under name.
func (t Timer) Send(name string) {
	t.c.Timing(name, t.Duration())
}

// Duration returns the time elapsed since the Timer started.
func (t Timer) Duration() time.Duration {
	return time.Since(t.start)
}
