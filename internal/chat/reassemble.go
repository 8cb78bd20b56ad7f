package chat

import "bytes"

// splitLines merges the pending fragment with newly read bytes and splits
// the result into complete lines. Every segment before a line feed is one
// complete line with at most one trailing carriage return stripped. The
// tail after the last line feed becomes the new pending fragment, nil when
// the input ended exactly on the delimiter.
//
// The fragment is replaced wholesale, never mutated in place, so it can
// never contain a delimiter byte.
func splitLines(pending, chunk []byte) (lines [][]byte, rest []byte) {
	buf := make([]byte, 0, len(pending)+len(chunk))
	buf = append(buf, pending...)
	buf = append(buf, chunk...)

	segments := bytes.Split(buf, []byte{'\n'})
	for _, seg := range segments[:len(segments)-1] {
		lines = append(lines, bytes.TrimSuffix(seg, []byte{'\r'}))
	}
	if tail := segments[len(segments)-1]; len(tail) > 0 {
		rest = tail
	}
	return lines, rest
}
