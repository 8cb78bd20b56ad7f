// Command peerchat is a peer-to-peer direct chat client. It connects to a
// peer (or offers a chat and waits for one), then exchanges CRLF-terminated
// lines with CTCP actions, mIRC colors and optional charset transcoding.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"peerchat/internal/charset"
	"peerchat/internal/chat"
	"peerchat/internal/transport"
	"peerchat/internal/transport/tcp"
	"peerchat/internal/transport/ws"
)

func main() {
	connect := flag.String("connect", "", "peer address to connect to (host:port)")
	listen := flag.String("listen", "", "address to offer a chat on (host:port)")
	wsURL := flag.String("websocket", "", "peer WebSocket URL to connect to (ws://host:port/path)")
	nick := flag.String("nick", "", "local nick")
	peer := flag.String("peer", "peer", "remote peer nick")
	charsetName := flag.String("charset", "", "peer-facing charset (IANA name, e.g. windows-1252)")
	pvTags := flag.StringSlice("pv-tags", nil, "extra tags added to inbound private messages")
	showTags := flag.Bool("show-tags", false, "print target and tags with each line")
	verbose := flag.BoolP("verbose", "v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *nick == "" {
		fmt.Fprintln(os.Stderr, "a nick is required (--nick)")
		os.Exit(2)
	}
	modes := 0
	for _, set := range []string{*connect, *listen, *wsURL} {
		if set != "" {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "exactly one of --connect, --listen or --websocket is required")
		os.Exit(2)
	}

	if err := run(*connect, *listen, *wsURL, *nick, *peer, *charsetName, *pvTags, *showTags); err != nil {
		slog.Error("chat ended with error", "error", err)
		os.Exit(1)
	}
}

func run(connect, listen, wsURL, nick, peer, charsetName string, pvTags []string, showTags bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := establish(ctx, connect, listen, wsURL)
	if err != nil {
		return err
	}

	var opts []chat.Option
	if charsetName != "" {
		tr, err := charset.New(charsetName)
		if err != nil {
			conn.Close()
			return err
		}
		opts = append(opts, chat.WithTranscoder(tr))
	}

	registry := chat.NewRegistry()
	defer registry.CloseAll()

	colors := term.IsTerminal(int(os.Stdout.Fd()))
	sink := newTerminalSink(os.Stdout, colors, showTags)
	router := chat.NewRouter(sink, pvTags...)

	target := "dcc." + peer
	opts = append(opts, chat.WithCloseFunc(func(s *chat.Session, status chat.Status) {
		registry.Remove(s.Target())
		cancel()
	}))

	session := chat.New(conn, target, nick, peer, router, opts...)
	registry.Add(session)
	session.Announce()

	group, ctx := errgroup.WithContext(ctx)

	// Unblock the stdin pump once the session is gone.
	stop := context.AfterFunc(ctx, func() { os.Stdin.Close() })
	defer stop()

	group.Go(func() error {
		err := session.Run(ctx)
		if errors.Is(err, chat.ErrSessionEnded) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		return inputLoop(session)
	})

	return group.Wait()
}

// establish opens the byte-stream carrier for the selected mode.
func establish(ctx context.Context, connect, listen, wsURL string) (transport.Conn, error) {
	switch {
	case connect != "":
		slog.Debug("connecting", "address", connect)
		conn, err := tcp.Dial(ctx, connect)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case wsURL != "":
		slog.Debug("connecting", "url", wsURL)
		conn, err := ws.Dial(ctx, wsURL)
		if err != nil {
			return nil, err
		}
		return conn, nil
	default:
		listener, err := tcp.Listen(listen)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "waiting for peer on %s\n", listener.Addr())
		conn, err := listener.AcceptPeer()
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// inputLoop pumps stdin lines into the session until EOF, /quit, or the
// session ends.
func inputLoop(session *chat.Session) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		if text == "/quit" {
			session.Close()
			return nil
		}

		action := false
		if rest, ok := strings.CutPrefix(text, "/me "); ok {
			text = rest
			action = true
		}

		var err error
		if action {
			err = session.SendAction(text)
		} else {
			err = session.Send(text)
		}
		if err != nil {
			if errors.Is(err, chat.ErrSessionEnded) {
				return nil
			}
			return err
		}
		session.Echo(text, action)
	}
	// Scanner errors are expected here when teardown closed stdin.
	ended := session.Status().Ended()
	session.Close()
	if err := scanner.Err(); err != nil && !ended {
		return err
	}
	return nil
}
