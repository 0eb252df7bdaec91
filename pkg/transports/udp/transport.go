package udp

import (
	"net"

	"github.com/harunnryd/statline/pkg/errorsx"
)

// Sender writes one datagram per protocol line to a statsd endpoint.
// The socket stays unconnected, so a daemon restart on the far side
// keeps receiving without the client noticing.
type Sender struct {
	conn net.PacketConn
	addr net.Addr
}

// New opens an unbound UDP socket aimed at addr.
func New(addr *net.UDPAddr) (*Sender, error) {
	conn, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonSocketOpen)
	}
	return &Sender{conn: conn, addr: addr}, nil
}

func (s *Sender) Name() string { return "udp" }

// Send ships line as a single datagram. Lines never gain a trailing
// newline; the datagram boundary is the message boundary.
func (s *Sender) Send(line string) error {
	if _, err := s.conn.WriteTo([]byte(line), s.addr); err != nil {
		return errorsx.Wrap(err, errorsx.ReasonSend)
	}
	return nil
}

func (s *Sender) Close() error {
	return s.conn.Close()
}
