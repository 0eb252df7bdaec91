package statline

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/harunnryd/statline/pkg/transports/mock"
)

func TestTimeReturnsResultAndEmitsOneTiming(t *testing.T) {
	ms := mock.New()
	c := New(Config{Prefix: "app"})
	c.SetLogger(discardLogger())
	c.SetSender(ms)

	got := Time(c, "test", 1, func() string {
		time.Sleep(20 * time.Millisecond)
		return "blah"
	})
	if got != "blah" {
		t.Fatalf("expected wrapped result unchanged, got %q", got)
	}

	lines := ms.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected exactly one timing line, got %v", lines)
	}
	if v := timingValue(t, lines[0], "app.test"); v < 20 {
		t.Fatalf("expected at least 20ms, got %d", v)
	}
}

func TestTimeEmitsWhenFnPanics(t *testing.T) {
	ms := mock.New()
	c := New(Config{Prefix: "app"})
	c.SetLogger(discardLogger())
	c.SetSender(ms)

	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("expected the panic to propagate")
			}
		}()
		Time(c, "explode", 1, func() struct{} {
			panic("kaboom")
		})
	}()

	lines := ms.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one timing line despite the panic, got %v", lines)
	}
	timingValue(t, lines[0], "app.explode")
}

func TestTimeRateNeverGatesEmission(t *testing.T) {
	ms := mock.New()
	c := New(Config{Prefix: "app"})
	c.SetLogger(discardLogger())
	c.SetSender(ms)

	Time(c, "always", 1e-6, func() int { return 0 })

	if len(ms.Lines()) != 1 {
		t.Fatalf("timings must not be sampled, got %v", ms.Lines())
	}
}

func TestTimerSendAndDuration(t *testing.T) {
	ms := mock.New()
	c := New(Config{Prefix: "app"})
	c.SetLogger(discardLogger())
	c.SetSender(ms)

	tm := c.NewTiming()
	time.Sleep(10 * time.Millisecond)
	if d := tm.Duration(); d < 10*time.Millisecond {
		t.Fatalf("expected at least 10ms elapsed, got %v", d)
	}
	tm.Send("step")

	lines := ms.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %v", lines)
	}
	if v := timingValue(t, lines[0], "app.step"); v < 10 {
		t.Fatalf("expected at least 10ms, got %d", v)
	}
}

// timingValue asserts line looks like "<qualified>:<n>|ms" and returns n.
func timingValue(t *testing.T, line, qualified string) int64 {
	t.Helper()
	prefix := qualified + ":"
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, "|ms") {
		t.Fatalf("malformed timing line %q", line)
	}
	n, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(line, prefix), "|ms"), 10, 64)
	if err != nil {
		t.Fatalf("malformed timing value in %q: %v", line, err)
	}
	return n
}
