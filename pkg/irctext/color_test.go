package irctext_test

import (
	"testing"

	"peerchat/pkg/irctext"
)

func TestStripEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", "hello", "hello"},
		{"sgr removed", "\x1b[31mred\x1b[0m", "red"},
		{"multi-param sgr", "\x1b[1;34mbold blue\x1b[0m", "bold blue"},
		{"cursor movement", "\x1b[2Ktext", "text"},
		{"bare escape at end", "text\x1b", "text?"},
		{"non-csi escape", "a\x1b]b", "a?]b"},
		{"unterminated csi", "a\x1b[31", "a?31"},
		{"escape only", "\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := irctext.StripEscapes(tt.in, "?"); got != tt.want {
				t.Errorf("StripEscapes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandColors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"bold toggle", "\x02bold\x02plain", "\x1b[1mbold\x1b[22mplain"},
		{"underline toggle", "\x1fu\x1f", "\x1b[4mu\x1b[24m"},
		{"reset", "\x02a\x0fb", "\x1b[1ma\x1b[0mb"},
		{"foreground color", "\x034red", "\x1b[91mred"},
		{"fg and bg", "\x033,5go", "\x1b[32m\x1b[41mgo"},
		{"two digit color", "\x0312blue", "\x1b[94mblue"},
		{"bare color resets planes", "\x03done", "\x1b[39m\x1b[49mdone"},
		{"out of palette falls back", "\x0342x", "\x1b[39mx"},
		{"comma without bg digits kept", "\x034,x", "\x1b[91m,x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := irctext.ExpandColors(tt.in); got != tt.want {
				t.Errorf("ExpandColors(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandThenStripRoundsToPlainText(t *testing.T) {
	in := "\x02bold\x02 and \x034colored\x03 text"
	expanded := irctext.ExpandColors(in)
	plain := irctext.StripEscapes(expanded, "?")
	want := "bold and colored text"
	if plain != want {
		t.Errorf("strip(expand(%q)) = %q, want %q", in, plain, want)
	}
}

func TestANSIColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"red", "\x1b[31m"},
		{"green,black", "\x1b[32m\x1b[40m"},
		{"default", "\x1b[39m"},
		{"nosuchcolor", ""},
	}

	for _, tt := range tests {
		if got := irctext.ANSIColor(tt.name); got != tt.want {
			t.Errorf("ANSIColor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
