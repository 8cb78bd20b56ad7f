package ws

import (
	"net"
	"testing"

	gws "github.com/gobwas/ws"

	"peerchat/internal/transport"
)

func TestConn_ImplementsInterface(t *testing.T) {
	var _ transport.Conn = (*Conn)(nil)
}

// pipePair returns a client and server Conn joined by an in-memory pipe,
// skipping the HTTP handshake.
func pipePair() (*Conn, *Conn) {
	p1, p2 := net.Pipe()
	client := &Conn{conn: p1, rw: p1, state: gws.StateClientSide}
	server := &Conn{conn: p2, rw: p2, state: gws.StateServerSide}
	return client, server
}

func TestConn_ReadWrite(t *testing.T) {
	client, server := pipePair()
	defer client.Close()
	defer server.Close()

	go func() {
		if _, err := client.Write([]byte("hello\r\n")); err != nil {
			t.Errorf("client Write error: %v", err)
		}
	}()

	buf := make([]byte, 64)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("server Read error: %v", err)
	}
	if string(buf[:n]) != "hello\r\n" {
		t.Errorf("server received %q, want %q", buf[:n], "hello\r\n")
	}
}

func TestConn_ReadCarriesOverLargeFrames(t *testing.T) {
	client, server := pipePair()
	defer client.Close()
	defer server.Close()

	go func() {
		if _, err := client.Write([]byte("abcdef")); err != nil {
			t.Errorf("client Write error: %v", err)
		}
	}()

	buf := make([]byte, 4)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("first Read error: %v", err)
	}
	if string(buf[:n]) != "abcd" {
		t.Errorf("first Read = %q, want %q", buf[:n], "abcd")
	}

	n, err = server.Read(buf)
	if err != nil {
		t.Fatalf("second Read error: %v", err)
	}
	if string(buf[:n]) != "ef" {
		t.Errorf("second Read = %q, want %q", buf[:n], "ef")
	}
}

func TestConn_ReadSkipsEmptyFrames(t *testing.T) {
	client, server := pipePair()
	defer client.Close()
	defer server.Close()

	go func() {
		if _, err := client.Write(nil); err != nil {
			t.Errorf("client Write error: %v", err)
		}
		if _, err := client.Write([]byte("hello\r\n")); err != nil {
			t.Errorf("client Write error: %v", err)
		}
	}()

	buf := make([]byte, 64)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("server Read error: %v", err)
	}
	if string(buf[:n]) != "hello\r\n" {
		t.Errorf("server received %q, want %q", buf[:n], "hello\r\n")
	}
}

func TestConn_ServerToClient(t *testing.T) {
	client, server := pipePair()
	defer client.Close()
	defer server.Close()

	go func() {
		if _, err := server.Write([]byte("hi")); err != nil {
			t.Errorf("server Write error: %v", err)
		}
	}()

	buf := make([]byte, 64)
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("client Read error: %v", err)
	}
	if string(buf[:n]) != "hi" {
		t.Errorf("client received %q, want %q", buf[:n], "hi")
	}
}
