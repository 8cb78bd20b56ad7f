package chat

import (
	"strings"

	"peerchat/pkg/irctext"
)

// Sink renders a tagged, formatted line on a display target. It is owned by
// the host (terminal, GUI, test harness); no acknowledgement is expected.
type Sink interface {
	Print(target string, tags []string, text string)
}

// Router classifies decoded and echoed lines and dispatches them to the
// display sink.
type Router struct {
	sink      Sink
	extraTags []string // user-configured tags added to private messages
}

// NewRouter creates a Router dispatching to sink. extraTags are appended to
// every inbound private message.
func NewRouter(sink Sink, extraTags ...string) *Router {
	return &Router{sink: sink, extraTags: extraTags}
}

// colorForTags makes a color name safe for a comma-joined tag list by
// replacing commas with colons.
func colorForTags(color string) string {
	return strings.ReplaceAll(color, ",", ":")
}

// Inbound dispatches a decoded line from the peer.
func (r *Router) Inbound(s *Session, line DecodedLine) {
	tags := append([]string{"priv"}, r.extraTags...)

	if line.IsAction {
		tags = append(tags, "action", "nick_"+s.peerNick, "log1")
		sep := ""
		if line.Text != "" {
			sep = " "
		}
		r.sink.Print(s.target, tags,
			"* "+irctext.ANSIColor(s.peerColor)+s.peerNick+irctext.Reset+sep+line.Text)
		return
	}

	tags = append(tags,
		"prefix_nick_"+colorForTags(s.peerColor),
		"nick_"+s.peerNick,
		"log1")
	r.sink.Print(s.target, tags,
		irctext.ANSIColor(s.peerColor)+s.peerNick+irctext.Reset+"\t"+line.Text)
}

// Echo dispatches a locally sent line back to the display. The no_highlight
// tag keeps the user's own nick from triggering self-highlighting.
func (r *Router) Echo(s *Session, text string, action bool) {
	// Outbound text may carry wire color codes typed by the user; expand
	// them the same way inbound text is expanded.
	text = irctext.ExpandColors(text)

	tags := []string{"priv", "no_highlight"}
	if action {
		tags = append(tags, "action", "nick_"+s.localNick, "log1")
		sep := ""
		if text != "" {
			sep = " "
		}
		r.sink.Print(s.target, tags,
			"* "+irctext.ANSIColor(s.localColor)+s.localNick+irctext.Reset+sep+text)
		return
	}

	tags = append(tags,
		"prefix_nick_"+colorForTags(s.localColor),
		"nick_"+s.localNick,
		"log1")
	r.sink.Print(s.target, tags,
		irctext.ANSIColor(s.localColor)+s.localNick+irctext.Reset+"\t"+text)
}

// Notice dispatches an untagged status line (connect and teardown notices).
func (r *Router) Notice(target, text string) {
	r.sink.Print(target, nil, text)
}
