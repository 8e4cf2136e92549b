package lightrag

import "unicode/utf8"

// textDecoder converts a byte stream to text incrementally. A network read
// may end in the middle of a multi-byte UTF-8 sequence; the undecoded tail
// is carried over to the next write instead of being dropped.
type textDecoder struct {
	pending []byte
}

// Write returns the longest prefix of pending+p that ends on a rune
// boundary and keeps the remainder for the next call.
func (d *textDecoder) Write(p []byte) string {
	b := p
	if len(d.pending) > 0 {
		b = append(d.pending, p...)
		d.pending = nil
	}

	cut := len(b)
	// A trailing incomplete sequence is at most utf8.UTFMax-1 bytes: walk
	// back over continuation bytes until the leading byte is found.
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < utf8.RuneSelf {
			break
		}
		if c&0xC0 == 0xC0 {
			if !utf8.FullRune(b[len(b)-i:]) {
				cut = len(b) - i
			}
			break
		}
	}

	d.pending = append(d.pending, b[cut:]...)
	return string(b[:cut])
}

// Flush returns whatever bytes remain at end of stream, decoded
// permissively, so a truncated final sequence is not silently lost.
func (d *textDecoder) Flush() string {
	if len(d.pending) == 0 {
		return ""
	}
	s := string(d.pending)
	d.pending = nil
	return s
}
