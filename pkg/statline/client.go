// Package statline emits application metrics to a statsd daemon over
// UDP. Emission is fire-and-forget: when the endpoint is disabled,
// misconfigured, or unreachable, the client degrades to a no-op and
// the application never observes a failure. Metrics may be lost;
// callers may not.
package statline

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harunnryd/statline/pkg/errorsx"
	"github.com/harunnryd/statline/pkg/logging"
	"github.com/harunnryd/statline/pkg/protocol"
	"github.com/harunnryd/statline/pkg/resolver"
	"github.com/harunnryd/statline/pkg/transports"
	"github.com/harunnryd/statline/pkg/transports/udp"
)

// Client talks to one statsd endpoint. A single instance is meant to
// be shared for the life of the process; all methods are safe for
// concurrent use. The transport is resolved once, on the first metric
// actually sent, and never re-resolved afterwards.
type Client struct {
	cfg      Config
	logger   *slog.Logger
	sampler  protocol.Sampler
	resolver resolver.Resolver

	initOnce sync.Once
	sender   transports.Sender
	closed   atomic.Bool
}

// New builds a Client from cfg. No network activity happens until the
// first metric is emitted.
func New(cfg Config) *Client {
	return &Client{
		cfg:    cfg.withDefaults(),
		logger: logging.NewComponentLogger(slog.Default(), "statline"),
	}
}

// SetLogger replaces the client's logger. Effective only before the
// first metric is emitted.
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logging.NewComponentLogger(logger, "statline")
	}
}

// SetSender installs a prebuilt sender, bypassing transport
// resolution. Effective only before the first metric is emitted.
func (c *Client) SetSender(s transports.Sender) {
	c.sender = s
}

// Gauge sets the named gauge to an absolute value.
func (c *Client) Gauge(name string, value int64) {
	c.send(protocol.Gauge(c.qualify(name), value))
}

// GaugeDelta moves the named gauge by a signed delta. A zero delta is
// sent as +0.
func (c *Client) GaugeDelta(name string, delta int64) {
	c.send(protocol.GaugeDelta(c.qualify(name), delta))
}

// Increment bumps the named counter by delta. rate is the fraction of
// events actually transmitted; a sampled-out call does nothing at all,
// not even transport initialization.
func (c *Client) Increment(name string, delta int64, rate float64) {
	if !c.sampler.ShouldSend(rate) {
		return
	}
	c.send(protocol.Counter(c.qualify(name), delta, rate))
}

// Incr bumps the named counter by one, unsampled.
func (c *Client) Incr(name string) {
	c.Increment(name, 1, protocol.DefaultRate)
}

// Timing records a duration. The wire value is whole milliseconds,
// rounded toward zero.
func (c *Client) Timing(name string, d time.Duration) {
	c.send(protocol.Timing(c.qualify(name), d.Milliseconds()))
}

// Close releases the transport. Metrics emitted after Close are
// dropped. Safe to call on a client that never sent anything.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.initOnce.Do(func() {
		if c.sender == nil {
			c.sender = transports.Noop{}
		}
	})
	return c.sender.Close()
}

func (c *Client) qualify(name string) string {
	return c.cfg.Prefix + "." + name
}

func (c *Client) send(line string) {
	if c.closed.Load() {
		return
	}
	c.initOnce.Do(c.initSender)
	if err := c.sender.Send(line); err != nil {
		c.logger.Error("statsd_send_failed",
			"transport", c.sender.Name(),
			"line", line,
			"reason", string(errorsx.Reason(err)),
			"error", err.Error(),
		)
	}
}

func (c *Client) initSender() {
	if c.sender != nil {
		return
	}
	c.sender = c.buildSender()
}

// buildSender resolves the transport capability. Every failure path
// lands on the noop sender; callers never see an error.
func (c *Client) buildSender() transports.Sender {
	if !c.cfg.Enabled {
		c.logger.Warn("statsd_disabled")
		return transports.Noop{}
	}
	if err := c.cfg.Validate(); err != nil {
		c.logInitFailure(err)
		return transports.Noop{}
	}

	res := c.resolver
	if res == nil {
		res = resolver.New(c.cfg.DNSServers, 0)
	}
	attempts := len(c.cfg.DNSServers)
	if attempts == 0 {
		attempts = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(attempts)*resolver.DefaultTimeout)
	defer cancel()

	ip, err := res.Resolve(ctx, c.cfg.Host)
	if err != nil {
		c.logInitFailure(err)
		return transports.Noop{}
	}
	sender, err := udp.New(&net.UDPAddr{IP: ip, Port: c.cfg.Port})
	if err != nil {
		c.logInitFailure(err)
		return transports.Noop{}
	}
	c.logger.Info("statsd_transport_ready",
		"host", c.cfg.Host,
		"addr", ip.String(),
		"port", c.cfg.Port,
	)
	return sender
}

func (c *Client) logInitFailure(err error) {
	c.logger.Error("statsd_transport_init_failed",
		"reason", string(errorsx.Reason(err)),
		"error", err.Error(),
	)
}
