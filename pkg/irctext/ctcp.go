// Package irctext implements the in-band text conventions carried on a
// direct chat wire: CTCP envelopes, mIRC formatting and color codes, and
// ANSI escape sequences on the display side.
package irctext

// ctcpDelim is the marker byte wrapping a CTCP envelope.
const ctcpDelim = 0x01

// ActionPrefix introduces an action ("/me") inside a CTCP envelope.
// The trailing space is part of the prefix; the match is byte-exact.
const ActionPrefix = "ACTION "

// TrimCTCP reports whether line is wrapped in CTCP marker bytes and returns
// the content with both markers removed. Unwrapped lines are returned
// unchanged. A lone marker byte is a degenerate envelope with empty content.
func TrimCTCP(line []byte) (content []byte, wrapped bool) {
	if len(line) == 0 || line[0] != ctcpDelim || line[len(line)-1] != ctcpDelim {
		return line, false
	}
	if len(line) == 1 {
		return nil, true
	}
	return line[1 : len(line)-1], true
}

// Action wraps text in a CTCP ACTION envelope for transmission.
func Action(text string) string {
	return "\x01" + ActionPrefix + text + "\x01"
}
