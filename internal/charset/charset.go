// Package charset provides the optional per-session transcoding profiles
// that convert between the peer-facing character set and UTF-8.
package charset

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Transcoder converts text between the wire character set and the client's
// internal UTF-8 representation. A session without a transcoder treats wire
// bytes as already being UTF-8.
type Transcoder interface {
	// Decode converts wire bytes to UTF-8 text.
	Decode(wire []byte) (string, error)
	// Encode converts UTF-8 text to wire bytes.
	Encode(text string) ([]byte, error)
}

// profile is a Transcoder backed by a registered IANA encoding.
type profile struct {
	name string
	enc  encoding.Encoding
}

// New resolves an IANA character set name (for example "windows-1252" or
// "iso-8859-15") into a Transcoder.
func New(name string) (Transcoder, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}
	return &profile{name: name, enc: enc}, nil
}

func (p *profile) Decode(wire []byte) (string, error) {
	out, err := p.enc.NewDecoder().Bytes(wire)
	if err != nil {
		return "", fmt.Errorf("decode from %s: %w", p.name, err)
	}
	return string(out), nil
}

func (p *profile) Encode(text string) ([]byte, error) {
	out, err := p.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode to %s: %w", p.name, err)
	}
	return out, nil
}

func (p *profile) String() string {
	return p.name
}
