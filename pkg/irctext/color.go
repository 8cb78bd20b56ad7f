package irctext

import "strings"

// Reset clears all ANSI attributes.
const Reset = "\x1b[0m"

// mIRC formatting bytes embedded in wire lines.
const (
	wireBold      = 0x02
	wireColor     = 0x03
	wireReset     = 0x0f
	wireReverse   = 0x16
	wireItalic    = 0x1d
	wireUnderline = 0x1f
)

// mircFg maps the 16-color mIRC palette to ANSI foreground codes.
var mircFg = [16]string{
	"97", // white
	"30", // black
	"34", // blue
	"32", // green
	"91", // light red
	"31", // red
	"35", // magenta
	"33", // orange
	"93", // yellow
	"92", // light green
	"36", // cyan
	"96", // light cyan
	"94", // light blue
	"95", // pink
	"90", // grey
	"37", // light grey
}

// mircBg maps the 16-color mIRC palette to ANSI background codes.
var mircBg = [16]string{
	"107", "40", "44", "42", "101", "41", "45", "43",
	"103", "102", "46", "106", "104", "105", "100", "47",
}

// fgNames maps display color names to ANSI foreground codes for line
// formatting. Names outside the table render with no color.
var fgNames = map[string]string{
	"black":   "30",
	"red":     "31",
	"green":   "32",
	"yellow":  "33",
	"blue":    "34",
	"magenta": "35",
	"cyan":    "36",
	"white":   "37",
	"grey":    "90",
	"default": "39",
}

// bgNames maps display color names to ANSI background codes.
var bgNames = map[string]string{
	"black":   "40",
	"red":     "41",
	"green":   "42",
	"yellow":  "43",
	"blue":    "44",
	"magenta": "45",
	"cyan":    "46",
	"white":   "47",
	"default": "49",
}

// ANSIColor renders a display color name as an ANSI escape. A name of the
// form "fg,bg" sets both planes. Unknown names yield an empty string so the
// caller can interpolate the result unconditionally.
func ANSIColor(name string) string {
	fg, bg, _ := strings.Cut(name, ",")
	var b strings.Builder
	if code, ok := fgNames[fg]; ok {
		b.WriteString("\x1b[" + code + "m")
	}
	if code, ok := bgNames[bg]; ok {
		b.WriteString("\x1b[" + code + "m")
	}
	return b.String()
}

// StripEscapes removes ANSI escape sequences from text, substituting
// placeholder for any escape that cannot be parsed. Only the escape
// sequences themselves are removed; all other bytes pass through.
func StripEscapes(text, placeholder string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != 0x1b {
			b.WriteByte(text[i])
			continue
		}
		if i+1 >= len(text) || text[i+1] != '[' {
			// A bare or non-CSI escape is not part of our display
			// vocabulary; it cannot be parsed past.
			b.WriteString(placeholder)
			continue
		}
		j := i + 2
		for j < len(text) && text[j] >= 0x20 && text[j] <= 0x3f {
			j++
		}
		if j >= len(text) || text[j] < 0x40 || text[j] > 0x7e {
			b.WriteString(placeholder)
			i++ // skip the '[' as part of the broken sequence
			continue
		}
		i = j
	}
	return b.String()
}

// ExpandColors rewrites mIRC formatting and color codes into ANSI escapes
// for display. Attribute bytes toggle, color codes carry up to two digits
// per plane, and a bare color byte resets both planes.
func ExpandColors(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	var bold, reverse, italic, underline bool
	toggle := func(on *bool, set, clear string) {
		*on = !*on
		if *on {
			b.WriteString("\x1b[" + set + "m")
		} else {
			b.WriteString("\x1b[" + clear + "m")
		}
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case wireBold:
			toggle(&bold, "1", "22")
		case wireItalic:
			toggle(&italic, "3", "23")
		case wireUnderline:
			toggle(&underline, "4", "24")
		case wireReverse:
			toggle(&reverse, "7", "27")
		case wireReset:
			bold, reverse, italic, underline = false, false, false, false
			b.WriteString(Reset)
		case wireColor:
			var n int
			fg, ok := parseColorNum(text[i+1:], &n)
			i += n
			if !ok {
				b.WriteString("\x1b[39m\x1b[49m")
				continue
			}
			writePlane(&b, fg, mircFg[:], "39")
			if i+1 < len(text) && text[i+1] == ',' {
				var m int
				if bg, ok := parseColorNum(text[i+2:], &m); ok {
					i += m + 1
					writePlane(&b, bg, mircBg[:], "49")
				}
			}
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

// parseColorNum reads up to two decimal digits, storing the number of bytes
// consumed in n. ok is false when no digit is present.
func parseColorNum(s string, n *int) (int, bool) {
	*n = 0
	val := 0
	for *n < 2 && *n < len(s) && s[*n] >= '0' && s[*n] <= '9' {
		val = val*10 + int(s[*n]-'0')
		*n++
	}
	return val, *n > 0
}

// writePlane emits the ANSI code for one color plane. Codes outside the
// mIRC palette fall back to the plane's default color.
func writePlane(b *strings.Builder, code int, palette []string, def string) {
	if code >= 0 && code < len(palette) {
		b.WriteString("\x1b[" + palette[code] + "m")
		return
	}
	b.WriteString("\x1b[" + def + "m")
}
