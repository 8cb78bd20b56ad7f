// Package ws provides a WebSocket carrier for chat sessions using gobwas/ws.
// The chat byte stream travels in binary frames; frame boundaries carry no
// protocol meaning, so a frame larger than the caller's buffer is carried
// over between reads.
package ws

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Conn adapts a WebSocket connection to transport.Conn.
type Conn struct {
	conn  net.Conn
	rw    io.ReadWriter // dial handshake may leave buffered bytes ahead of conn
	state ws.State
	rest  []byte // unread tail of the last frame
}

// Dial connects to a peer offering a chat at a ws:// or wss:// URL.
func Dial(ctx context.Context, url string) (*Conn, error) {
	conn, br, _, err := ws.Dial(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to peer: %w", err)
	}
	rw := io.ReadWriter(conn)
	if br != nil {
		rw = struct {
			io.Reader
			io.Writer
		}{br, conn}
	}
	return &Conn{conn: conn, rw: rw, state: ws.StateClientSide}, nil
}

// Upgrade performs the server side of the WebSocket handshake on an
// accepted connection.
func Upgrade(conn net.Conn) (*Conn, error) {
	if _, err := ws.Upgrade(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("websocket upgrade failed: %w", err)
	}
	return &Conn{conn: conn, rw: conn, state: ws.StateServerSide}, nil
}

// Read implements transport.Conn. It returns carried-over frame bytes
// first, then reads the next data frame.
func (c *Conn) Read(buf []byte) (int, error) {
	if len(c.rest) > 0 {
		n := copy(buf, c.rest)
		c.rest = c.rest[n:]
		return n, nil
	}

	// Empty data frames are legal and carry no chat bytes; skip them so a
	// zero-byte read stays reserved for connection loss.
	for {
		data, _, err := wsutil.ReadData(c.rw, c.state)
		if err != nil {
			return 0, err
		}
		if len(data) == 0 {
			continue
		}
		n := copy(buf, data)
		if n < len(data) {
			c.rest = data[n:]
		}
		return n, nil
	}
}

// Write implements transport.Conn. Each call sends one binary frame.
func (c *Conn) Write(data []byte) (int, error) {
	if err := wsutil.WriteMessage(c.conn, c.state, ws.OpBinary, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Close implements transport.Conn. The close frame is best effort and must
// not block teardown on a stuck peer.
func (c *Conn) Close() error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = wsutil.WriteMessage(c.conn, c.state, ws.OpClose, nil)
	return c.conn.Close()
}

// RemoteAddr implements transport.Conn.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
