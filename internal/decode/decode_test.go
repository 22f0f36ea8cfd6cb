package decode

import (
	"context"
	"testing"

	"github.com/terawatthour/htmlstream/internal/source"
)

func pullAll(t *testing.T, d *Decoder) []Result {
	t.Helper()
	var out []Result
	for {
		r := d.Pull(context.Background())
		out = append(out, r)
		if r.Terminator != None {
			return out
		}
	}
}

func runes(results []Result) string {
	var b []rune
	for _, r := range results {
		if r.Terminator == None {
			b = append(b, r.Codepoint)
		}
	}
	return string(b)
}

func TestDecodeUTF8NoBOM(t *testing.T) {
	d, err := New(source.FromBytes([]byte("hello <b>")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Encoding() != UTF8 {
		t.Fatalf("encoding = %v", d.Encoding())
	}
	results := pullAll(t, d)
	if got := runes(results); got != "hello <b>" {
		t.Errorf("got %q", got)
	}
	if last := results[len(results)-1]; last.Terminator != EOF {
		t.Errorf("terminator = %v", last.Terminator)
	}
}

func TestDecodeUTF8BOM(t *testing.T) {
	buf := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hi")...)
	d, err := New(source.FromBytes(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Encoding() != UTF8 {
		t.Fatalf("encoding = %v", d.Encoding())
	}
	if got := runes(pullAll(t, d)); got != "hi" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	// "hi" as UTF-16LE with BOM.
	buf := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	d, err := New(source.FromBytes(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Encoding() != UTF16LE {
		t.Fatalf("encoding = %v", d.Encoding())
	}
	if got := runes(pullAll(t, d)); got != "hi" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeUTF16BE(t *testing.T) {
	buf := []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}
	d, err := New(source.FromBytes(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Encoding() != UTF16BE {
		t.Fatalf("encoding = %v", d.Encoding())
	}
	if got := runes(pullAll(t, d)); got != "hi" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeUTF32LE(t *testing.T) {
	buf := []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0x00, 0x00, 0x00, 'i', 0x00, 0x00, 0x00}
	d, err := New(source.FromBytes(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Encoding() != UTF32LE {
		t.Fatalf("encoding = %v", d.Encoding())
	}
	if got := runes(pullAll(t, d)); got != "hi" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeUTF32BE(t *testing.T) {
	buf := []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 'h', 0x00, 0x00, 0x00, 'i'}
	d, err := New(source.FromBytes(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Encoding() != UTF32BE {
		t.Fatalf("encoding = %v", d.Encoding())
	}
	if got := runes(pullAll(t, d)); got != "hi" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeShortInputNoFalseBOM(t *testing.T) {
	// Two bytes that could be mistaken for a 4-byte UTF-32LE BOM
	// prefix if the sniffer compared zero-padded bytes instead of
	// respecting the actual consumed count.
	buf := []byte{0xFF, 0xFE}
	d, err := New(source.FromBytes(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Encoding() != UTF16LE {
		t.Fatalf("encoding = %v, want UTF16LE (2-byte BOM, not a false UTF-32 match)", d.Encoding())
	}
	results := pullAll(t, d)
	if len(results) != 1 || results[0].Terminator != EOF {
		t.Errorf("expected immediate EOF after the BOM, got %+v", results)
	}
}

func TestDecodePositionTracking(t *testing.T) {
	d, err := New(source.FromBytes([]byte("ab\ncd")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	results := pullAll(t, d)
	want := []struct {
		line, col uint32
	}{
		{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2},
	}
	if len(results) < len(want)+1 {
		t.Fatalf("got %d results, want at least %d", len(results), len(want)+1)
	}
	for i, w := range want {
		if results[i].Line != w.line || results[i].Column != w.col {
			t.Errorf("result[%d] = %d:%d, want %d:%d", i, results[i].Line, results[i].Column, w.line, w.col)
		}
	}
}

func TestDecodeUnreadThenRePull(t *testing.T) {
	d, err := New(source.FromBytes([]byte("xy")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first := d.Pull(context.Background())
	if first.Codepoint != 'x' {
		t.Fatalf("first = %q", first.Codepoint)
	}
	if err := d.Unread(first); err != nil {
		t.Fatalf("Unread: %v", err)
	}
	again := d.Pull(context.Background())
	if again.Codepoint != 'x' || again.Line != first.Line || again.Column != first.Column {
		t.Errorf("re-pulled = %+v, want %+v", again, first)
	}
	second := d.Pull(context.Background())
	if second.Codepoint != 'y' {
		t.Errorf("second = %q", second.Codepoint)
	}
	if second.Line != 1 || second.Column != 2 {
		t.Errorf("second position = %d:%d, want 1:2 (unread must not cost the trailing char a column)", second.Line, second.Column)
	}
}

func TestDecodeDoubleUnreadErrors(t *testing.T) {
	d, err := New(source.FromBytes([]byte("xy")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first := d.Pull(context.Background())
	if err := d.Unread(first); err != nil {
		t.Fatalf("first Unread: %v", err)
	}
	if err := d.Unread(first); err == nil {
		t.Error("expected error on double Unread without an intervening Pull")
	}
}
