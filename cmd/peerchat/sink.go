package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"peerchat/pkg/irctext"
)

// terminalSink renders tagged lines on the local terminal. When the output
// is not a terminal, ANSI escapes are stripped before printing.
type terminalSink struct {
	mu       sync.Mutex
	out      io.Writer
	colors   bool
	showTags bool
}

func newTerminalSink(out io.Writer, colors, showTags bool) *terminalSink {
	return &terminalSink{out: out, colors: colors, showTags: showTags}
}

// Print implements chat.Sink. Tags are comma-joined when shown.
func (t *terminalSink) Print(target string, tags []string, text string) {
	if !t.colors {
		text = irctext.StripEscapes(text, "?")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.showTags && tags != nil {
		fmt.Fprintf(t.out, "%s [%s] %s\n", target, strings.Join(tags, ","), text)
		return
	}
	fmt.Fprintln(t.out, text)
}
