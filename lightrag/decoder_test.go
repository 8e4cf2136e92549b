package lightrag

import "testing"

func TestTextDecoder_ByteAtATime(t *testing.T) {
	input := "plain µ重力 🌱 done"

	var d textDecoder
	out := ""
	for i := 0; i < len(input); i++ {
		out += d.Write([]byte{input[i]})
	}
	out += d.Flush()

	if out != input {
		t.Errorf("round trip lost bytes: %q", out)
	}
}

func TestTextDecoder_HoldsIncompleteRune(t *testing.T) {
	emoji := []byte("🌱") // 4 bytes

	var d textDecoder
	if got := d.Write(emoji[:2]); got != "" {
		t.Errorf("incomplete sequence must be held back, got %q", got)
	}
	if got := d.Write(emoji[2:]); got != "🌱" {
		t.Errorf("expected completed rune, got %q", got)
	}
	if got := d.Flush(); got != "" {
		t.Errorf("nothing should remain, got %q", got)
	}
}

func TestTextDecoder_FlushReturnsTruncatedTail(t *testing.T) {
	rune3 := []byte("生") // 3 bytes

	var d textDecoder
	if got := d.Write(rune3[:2]); got != "" {
		t.Errorf("truncated sequence must be held back, got %q", got)
	}
	// Stream ends mid-rune: the tail is surfaced, not dropped.
	if got := d.Flush(); got == "" {
		t.Error("flush dropped pending bytes")
	}
	if got := d.Flush(); got != "" {
		t.Errorf("second flush should be empty, got %q", got)
	}
}

func TestTextDecoder_ASCIIPassthrough(t *testing.T) {
	var d textDecoder
	if got := d.Write([]byte("hello\nworld")); got != "hello\nworld" {
		t.Errorf("ASCII should pass through untouched, got %q", got)
	}
	if len(d.pending) != 0 {
		t.Errorf("no bytes should be pending, got %v", d.pending)
	}
}
