// Package acceptor binds the relay port and hands out one client connection at a time.
package acceptor

import (
	"fmt"
	"log"
	"net"

	"golang.org/x/net/netutil"
)

const (
	// Backlog is the kernel accept queue length: one waiting client.
	Backlog = 1

	// maxActive is the number of accepted connections allowed to be open at once.
	maxActive = 1

	maxPort = 65535
)

// Listener is a TCP listener on all interfaces. Accept will not return a
// new connection while a previously accepted one is still open; further
// clients wait in the kernel backlog.
type Listener struct {
	ln   net.Listener
	addr *net.TCPAddr
}

var _ net.Listener = (*Listener)(nil)

// Listen binds 0.0.0.0:port. Port 0 selects a free port.
func Listen(port int) (*Listener, error) {
	if port < 0 || port > maxPort {
		return nil, fmt.Errorf("%w: %w: %d", ErrBindFailed, errInvalidPort, port)
	}

	ln, err := listen(port)
	if err != nil {
		return nil, err
	}

	addr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		_ = ln.Close()

		return nil, fmt.Errorf("%w: unexpected listener address %v", ErrListenFailed, ln.Addr())
	}

	log.Printf("Listening on %s (backlog %d)", addr, Backlog)

	return &Listener{
		ln:   netutil.LimitListener(ln, maxActive),
		addr: addr,
	}, nil
}

// Accept blocks until a client connects and the previous connection is closed.
func (l *Listener) Accept() (net.Conn, error) {
	return l.ln.Accept()
}

// Close stops the listener. Blocked Accept calls return an error.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.addr
}

// Port returns the bound port.
func (l *Listener) Port() int {
	return l.addr.Port
}
