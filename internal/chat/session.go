// Package chat implements the direct-chat protocol engine: per-session
// state and lifecycle, line reassembly and decoding, outbound sending, and
// display routing.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"peerchat/internal/charset"
	"peerchat/internal/transport"
	"peerchat/pkg/irctext"
)

// readChunkSize bounds a single read from the carrier.
const readChunkSize = 4096

// Status is the lifecycle state of a session.
type Status int

const (
	// StatusActive is the initial state: the session can send and receive.
	StatusActive Status = iota
	// StatusAborted is terminal: the peer closed or receiving failed.
	StatusAborted
	// StatusFailed is terminal: an outbound write failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusAborted:
		return "aborted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ended reports whether s is a terminal state.
func (s Status) Ended() bool {
	return s != StatusActive
}

// ErrSessionEnded is returned when sending or receiving on a session that
// already reached a terminal state.
var ErrSessionEnded = errors.New("chat session ended")

// Session is the per-connection context of one direct chat with exactly one
// remote peer. Receive and Run belong to a single goroutine (the session's
// reactor task); Send, Echo and Close may be called from any goroutine.
type Session struct {
	conn      transport.Conn
	target    string
	localNick string
	peerNick  string

	localColor string
	peerColor  string

	trans    charset.Transcoder
	pipeline decodePipeline
	router   *Router
	logger   *slog.Logger
	onClose  func(*Session, Status)

	pending []byte // undelimited tail carried between reads; owned here

	mu     sync.Mutex
	status Status
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithTranscoder sets the session's charset transcoding profile. Without
// one, wire bytes are treated as UTF-8.
func WithTranscoder(tr charset.Transcoder) Option {
	return func(s *Session) { s.trans = tr }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithColors sets the display colors used for the local and peer nicks.
func WithColors(local, peer string) Option {
	return func(s *Session) { s.localColor, s.peerColor = local, peer }
}

// WithCloseFunc registers the one-shot notification fired when the session
// reaches a terminal state.
func WithCloseFunc(fn func(*Session, Status)) Option {
	return func(s *Session) { s.onClose = fn }
}

// New creates an active session over conn. The router must not be nil.
func New(conn transport.Conn, target, localNick, peerNick string, router *Router, opts ...Option) *Session {
	s := &Session{
		conn:       conn,
		target:     target,
		localNick:  localNick,
		peerNick:   peerNick,
		localColor: "green",
		peerColor:  nickColor(peerNick),
		router:     router,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pipeline = newPipeline(s.trans)
	return s
}

// Target returns the display target this session routes to.
func (s *Session) Target() string { return s.target }

// PeerNick returns the remote peer's nick.
func (s *Session) PeerNick() string { return s.peerNick }

// LocalNick returns the local identity's nick.
func (s *Session) LocalNick() string { return s.localNick }

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Announce routes the connect notice for a newly established session.
func (s *Session) Announce() {
	s.router.Notice(s.target, fmt.Sprintf("connected to %s (%s) via direct chat",
		s.peerNick, s.conn.RemoteAddr()))
}

// Receive performs one read pass: it reads available bytes, reassembles
// complete lines, decodes them and routes them to the display. A read of
// zero or fewer bytes, or a read error, aborts the session. Receive on an
// ended session is a no-op returning ErrSessionEnded.
func (s *Session) Receive() error {
	if s.Status().Ended() {
		return ErrSessionEnded
	}

	buf := make([]byte, readChunkSize)
	n, err := s.conn.Read(buf)

	// A reader may return data together with an error; route those bytes
	// before acting on the error.
	if n > 0 {
		var lines [][]byte
		lines, s.pending = splitLines(s.pending, buf[:n])
		for _, line := range lines {
			s.router.Inbound(s, s.pipeline.decode(line))
		}
	}

	if n <= 0 || err != nil {
		s.terminate(StatusAborted)
		return ErrSessionEnded
	}
	return nil
}

// Run is the session's reactor task: it receives until the session reaches
// a terminal state or ctx is canceled. Cancellation closes the carrier,
// which also discards the pending fragment with the session.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	for {
		if err := s.Receive(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

// Send delivers one user-typed line to the peer: CRLF terminator, charset
// encoding when configured, one write. A failed write moves the session to
// StatusFailed. Echoing the sent text is the caller's responsibility.
func (s *Session) Send(text string) error {
	return s.send(text)
}

// SendAction delivers a "/me" action, wrapped in a CTCP ACTION envelope.
func (s *Session) SendAction(text string) error {
	return s.send(irctext.Action(text))
}

func (s *Session) send(text string) error {
	if s.Status().Ended() {
		return ErrSessionEnded
	}

	line := text + "\r\n"
	wire := []byte(line)
	if s.trans != nil {
		encoded, err := s.trans.Encode(line)
		if err == nil {
			wire = encoded
		} else {
			s.logger.Debug("charset encode failed, sending raw bytes",
				"peer", s.peerNick, "error", err)
		}
	}

	// A short write counts as delivered: the carrier either takes the
	// whole line or reports failure.
	n, err := s.conn.Write(wire)
	if n <= 0 || err != nil {
		s.terminate(StatusFailed)
		return ErrSessionEnded
	}
	return nil
}

// Echo routes the user's own just-sent text back to the display. No-op on
// an ended session.
func (s *Session) Echo(text string, action bool) {
	if s.Status().Ended() {
		return
	}
	s.router.Echo(s, text, action)
}

// Close aborts the session from the local side (the user closed the chat
// target, or its reactor task was canceled). Safe to call repeatedly and
// on an already-ended session.
func (s *Session) Close() {
	s.terminate(StatusAborted)
}

// terminate moves the session to a terminal state, releasing the carrier
// and firing the close notification exactly once. Later calls are no-ops.
func (s *Session) terminate(status Status) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.status = status
	s.mu.Unlock()

	s.conn.Close()
	s.logger.Info("chat session ended",
		"peer", s.peerNick, "target", s.target, "status", status.String())

	switch status {
	case StatusFailed:
		s.router.Notice(s.target, fmt.Sprintf("error sending data to %s via direct chat", s.peerNick))
	case StatusAborted:
		s.router.Notice(s.target, fmt.Sprintf("direct chat with %s closed", s.peerNick))
	}

	if s.onClose != nil {
		s.onClose(s, status)
	}
}

// nickColors is the palette used to pick a stable display color per nick.
var nickColors = []string{"cyan", "magenta", "green", "yellow", "blue", "red"}

// nickColor hashes a nick into the palette.
func nickColor(nick string) string {
	h := 0
	for _, c := range nick {
		h = h*31 + int(c)
	}
	if h < 0 {
		h = -h
	}
	return nickColors[h%len(nickColors)]
}
