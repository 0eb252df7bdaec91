// Package resolver turns metric endpoint host names into IP addresses.
//
// The default resolver delegates to the operating system. Deployments
// that pin internal name servers can route lookups through a custom
// server list instead, queried in order until one answers.
package resolver

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/harunnryd/statline/pkg/errorsx"
)

// DefaultTimeout bounds a single lookup against custom name servers.
const DefaultTimeout = 2 * time.Second

// Resolver resolves a host name to a single IP address.
type Resolver interface {
	Resolve(ctx context.Context, host string) (net.IP, error)
}

// New picks a resolver for the configured name servers. An empty list
// selects the operating system resolver.
func New(servers []string, timeout time.Duration) Resolver {
	if len(servers) == 0 {
		return System{}
	}
	return &Custom{Servers: servers, Timeout: timeout}
}

// System resolves through the operating system's stub resolver.
type System struct{}

// Resolve returns the first IPv4 address for host. IP literals pass
// through without a lookup.
func (System) Resolve(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonResolve)
	}
	if len(ips) == 0 {
		return nil, errorsx.Wrap(fmt.Errorf("no addresses for %s", host), errorsx.ReasonResolve)
	}
	return ips[0], nil
}

// Custom resolves A records against an explicit server list. Servers
// are tried in order; the first usable answer wins.
type Custom struct {
	// Servers holds name server addresses. A missing port defaults to 53.
	Servers []string
	// Timeout bounds each query. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (c *Custom) Resolve(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)
	client := &dns.Client{Net: "udp", Timeout: timeout}

	var firstErr error
	for _, server := range c.Servers {
		addr := ensurePort(server)
		resp, _, err := client.ExchangeContext(ctx, msg, addr)
		if err == nil && resp != nil && resp.Rcode == dns.RcodeSuccess {
			for _, ans := range resp.Answer {
				if a, ok := ans.(*dns.A); ok {
					return a.A, nil
				}
			}
			err = fmt.Errorf("no A records for %s from %s", host, addr)
		} else if err == nil {
			err = fmt.Errorf("lookup %s against %s failed", host, addr)
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no name servers configured")
	}
	return nil, errorsx.Wrap(firstErr, errorsx.ReasonResolve)
}

func ensurePort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, "53")
}
