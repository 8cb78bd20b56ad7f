package tcp

import (
	"fmt"
	"net"
)

// Listener offers a direct chat: it waits for the single remote peer to
// connect to the advertised address.
type Listener struct {
	listener net.Listener
}

// Listen binds the offer address.
func Listen(address string) (*Listener, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to offer chat on %s: %w", address, err)
	}
	return &Listener{listener: listener}, nil
}

// Addr returns the advertised address.
func (l *Listener) Addr() string {
	return l.listener.Addr().String()
}

// AcceptPeer blocks until the remote peer connects, then stops listening:
// a direct chat has exactly one peer.
func (l *Listener) AcceptPeer() (*Conn, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, fmt.Errorf("failed to accept peer: %w", err)
	}
	l.listener.Close()
	return NewConn(conn), nil
}

// Close stops listening. Safe to call after AcceptPeer.
func (l *Listener) Close() error {
	return l.listener.Close()
}
