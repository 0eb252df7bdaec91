// Package runner drives the lifecycle of long-running demo and tool
// processes: banner, start hooks, signal-initiated drain, stop hooks.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dimiro1/banner"
)

type State int

const (
	StateNew State = iota
	StateStarting
	StateRunning
	StateDraining
	StateStopped
)

type Runner interface {
	Run(ctx context.Context) error
	Stop() error
	State() State
}

// Hooks run at the edges of the lifecycle. OnStart fires once the
// runner is live, OnStop after draining finishes.
type Hooks struct {
	OnStart func()
	OnStop  func()
}

// Drainer flushes in-flight work before shutdown completes.
type Drainer interface {
	Drain() error
}

// DrainerFunc adapts a plain function to the Drainer interface.
type DrainerFunc func() error

func (f DrainerFunc) Drain() error { return f() }

const Version = "dev"

func PrintBanner() {
	tpl := "{{ .Title \"STATLINE\" \"\" 0 }}\nVersion: " + Version + "\n"
	banner.Init(os.Stdout, true, true, bytes.NewBufferString(tpl))
}

// LifecycleRunner is the standard Runner: it prints the banner, runs
// the hooks, and bounds draining with a timeout.
type LifecycleRunner struct {
	state    int32
	ctx      context.Context
	cancel   context.CancelFunc
	onceStop sync.Once
	hooks    Hooks
	drainer  Drainer
	stopErr  error
	timeout  time.Duration
}

func NewLifecycleRunner(drainer Drainer, hooks Hooks, timeout time.Duration) *LifecycleRunner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &LifecycleRunner{
		state:   int32(StateNew),
		ctx:     ctx,
		cancel:  cancel,
		hooks:   hooks,
		drainer: drainer,
		timeout: timeout,
	}
}

// Run blocks until ctx is cancelled or Stop is called, then drains.
func (r *LifecycleRunner) Run(ctx context.Context) error {
	if !r.casState(StateNew, StateStarting) {
		return errors.New("invalid state transition")
	}
	PrintBanner()
	if ctx != nil {
		r.ctx, r.cancel = context.WithCancel(ctx)
	}
	if r.hooks.OnStart != nil {
		r.hooks.OnStart()
	}
	r.setState(StateRunning)
	<-r.ctx.Done()
	return r.stop()
}

func (r *LifecycleRunner) Stop() error {
	r.cancel()
	return r.stop()
}

func (r *LifecycleRunner) State() State {
	return State(atomic.LoadInt32(&r.state))
}

func (r *LifecycleRunner) stop() error {
	r.onceStop.Do(func() {
		r.setState(StateDraining)
		if r.drainer != nil {
			done := make(chan struct{})
			go func() {
				_ = r.drainer.Drain()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(r.timeout):
				r.stopErr = errors.New("drain timeout")
			}
		}
		if r.hooks.OnStop != nil {
			r.hooks.OnStop()
		}
		r.setState(StateStopped)
	})
	return r.stopErr
}

func (r *LifecycleRunner) casState(from, to State) bool {
	return atomic.CompareAndSwapInt32(&r.state, int32(from), int32(to))
}

func (r *LifecycleRunner) setState(s State) {
	atomic.StoreInt32(&r.state, int32(s))
}
