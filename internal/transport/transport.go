// Package transport defines the byte-stream carrier used by chat sessions.
package transport

import "net"

// Conn is a bidirectional byte stream to the remote peer.
// This interface isolates carrier details (TCP, WebSocket) from chat logic.
//
// Read and Write return byte counts; the engine treats any result of zero
// or fewer bytes, or any error, as a terminal event for the session.
type Conn interface {
	// Read reads whatever bytes are available, up to len(buf).
	Read(buf []byte) (int, error)

	// Write sends data to the peer in a single call.
	Write(data []byte) (int, error)

	// Close closes the connection.
	Close() error

	// RemoteAddr returns the peer address for notices and logging.
	RemoteAddr() net.Addr
}
