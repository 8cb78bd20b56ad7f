package chat

import (
	"bytes"

	"peerchat/internal/charset"
	"peerchat/pkg/irctext"
)

// DecodedLine is one display-ready line produced from a raw wire line.
type DecodedLine struct {
	Text     string
	IsAction bool
}

// decodePipeline holds the transformation stages applied to every inbound
// line after CTCP handling. A stage that fails falls back to its input, so
// a line is never dropped because a transformation failed.
type decodePipeline struct {
	transcode   func([]byte) (string, error)
	stripNative func(string) (string, error)
	expandWire  func(string) (string, error)
}

// newPipeline builds the default stages: charset transcoding (identity when
// tr is nil), ANSI escape stripping with a "?" placeholder, and mIRC color
// expansion.
func newPipeline(tr charset.Transcoder) decodePipeline {
	return decodePipeline{
		transcode: func(raw []byte) (string, error) {
			if tr == nil {
				return string(raw), nil
			}
			return tr.Decode(raw)
		},
		stripNative: func(text string) (string, error) {
			return irctext.StripEscapes(text, "?"), nil
		},
		expandWire: func(text string) (string, error) {
			return irctext.ExpandColors(text), nil
		},
	}
}

// decode turns one raw line into a DecodedLine. Stage order: CTCP
// detection, transcoding, native escape stripping, wire color expansion.
// Each later stage operates on the most recent stage that succeeded.
func (p decodePipeline) decode(raw []byte) DecodedLine {
	content, wrapped := irctext.TrimCTCP(raw)
	action := false
	if wrapped && bytes.HasPrefix(content, []byte(irctext.ActionPrefix)) {
		content = content[len(irctext.ActionPrefix):]
		action = true
	}

	text, err := p.transcode(content)
	if err != nil {
		text = string(content)
	}
	if plain, err := p.stripNative(text); err == nil {
		text = plain
	}
	if expanded, err := p.expandWire(text); err == nil {
		text = expanded
	}
	return DecodedLine{Text: text, IsAction: action}
}
