// Package tcp provides the TCP carrier for chat sessions.
package tcp

import (
	"context"
	"fmt"
	"net"
)

// Conn adapts a net.Conn to transport.Conn.
type Conn struct {
	conn net.Conn
}

// NewConn wraps a net.Conn.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// Read implements transport.Conn.
func (c *Conn) Read(buf []byte) (int, error) {
	return c.conn.Read(buf)
}

// Write implements transport.Conn.
func (c *Conn) Write(data []byte) (int, error) {
	return c.conn.Write(data)
}

// Close implements transport.Conn.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr implements transport.Conn.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Dial connects to a peer that offered a direct chat at address.
func Dial(ctx context.Context, address string) (*Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to peer: %w", err)
	}
	return NewConn(conn), nil
}
