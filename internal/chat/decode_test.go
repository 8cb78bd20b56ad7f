package chat

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeActionDetection(t *testing.T) {
	p := newPipeline(nil)

	tests := []struct {
		name   string
		raw    string
		text   string
		action bool
	}{
		{"action", "\x01ACTION waves\x01", "waves", true},
		{"non-action ctcp", "\x01PING 123\x01", "PING 123", false},
		{"plain", "hello", "hello", false},
		{"action prefix without envelope", "ACTION waves", "ACTION waves", false},
		{"lowercase prefix is not an action", "\x01action waves\x01", "action waves", false},
		{"prefix without trailing space", "\x01ACTIONwaves\x01", "ACTIONwaves", false},
		{"empty action", "\x01ACTION \x01", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.decode([]byte(tt.raw))
			if got.Text != tt.text || got.IsAction != tt.action {
				t.Errorf("decode(%q) = {%q, %v}, want {%q, %v}",
					tt.raw, got.Text, got.IsAction, tt.text, tt.action)
			}
		})
	}
}

func TestDecodeStripsNativeEscapes(t *testing.T) {
	p := newPipeline(nil)
	got := p.decode([]byte("\x1b[31mred\x1b[0m text"))
	if got.Text != "red text" {
		t.Errorf("decode = %q, want %q", got.Text, "red text")
	}
}

func TestDecodeExpandsWireColors(t *testing.T) {
	p := newPipeline(nil)
	got := p.decode([]byte("\x02bold\x02"))
	if got.Text != "\x1b[1mbold\x1b[22m" {
		t.Errorf("decode = %q, want %q", got.Text, "\x1b[1mbold\x1b[22m")
	}
}

func TestDecodeTranscodeFailureFallsBackToRawBytes(t *testing.T) {
	p := newPipeline(nil)
	p.transcode = func(raw []byte) (string, error) {
		return "", errors.New("bad charset")
	}

	got := p.decode([]byte("hello"))
	if got.Text != "hello" {
		t.Errorf("decode = %q, want raw fallback %q", got.Text, "hello")
	}
}

func TestDecodeExpandFailureFallsBackToStrippedText(t *testing.T) {
	p := newPipeline(nil)
	p.expandWire = func(string) (string, error) {
		return "", errors.New("expansion failed")
	}

	got := p.decode([]byte("\x1b[31mhi\x1b[0m"))
	if got.Text != "hi" {
		t.Errorf("decode = %q, want de-colored fallback %q", got.Text, "hi")
	}
}

func TestDecodeStripFailureFallsBackToTranscodedText(t *testing.T) {
	p := newPipeline(nil)
	p.stripNative = func(string) (string, error) {
		return "", errors.New("strip failed")
	}
	p.expandWire = func(string) (string, error) {
		return "", errors.New("expansion failed")
	}

	got := p.decode([]byte("hello"))
	if got.Text != "hello" {
		t.Errorf("decode = %q, want transcoded fallback %q", got.Text, "hello")
	}
}

func TestDecodeAllStagesFailStillYieldsALine(t *testing.T) {
	fail := errors.New("stage failed")
	p := decodePipeline{
		transcode:   func([]byte) (string, error) { return "", fail },
		stripNative: func(string) (string, error) { return "", fail },
		expandWire:  func(string) (string, error) { return "", fail },
	}

	got := p.decode([]byte("\x01ACTION waves\x01"))
	if got.Text != "waves" || !got.IsAction {
		t.Errorf("decode = {%q, %v}, want raw action content", got.Text, got.IsAction)
	}
}

func TestDecodeUnparseableEscapeGetsPlaceholder(t *testing.T) {
	p := newPipeline(nil)
	got := p.decode([]byte("oops\x1b"))
	if !strings.HasSuffix(got.Text, "?") {
		t.Errorf("decode = %q, want trailing placeholder", got.Text)
	}
}
