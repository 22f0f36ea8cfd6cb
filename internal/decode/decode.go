// Package decode turns a raw byte Source into a position-tracked
// stream of codepoints, sniffing a byte-order mark to choose among
// UTF-8, UTF-16 (LE/BE) and UTF-32 (LE/BE).
package decode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/terawatthour/htmlstream/internal/source"
)

// Encoding identifies the text encoding chosen by BOM sniffing.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case UTF32LE:
		return "UTF-32LE"
	case UTF32BE:
		return "UTF-32BE"
	default:
		return "unknown"
	}
}

// Terminator reports why Pull stopped producing codepoints.
type Terminator int

const (
	// None means a codepoint was produced; no terminator applies.
	None Terminator = iota
	EOF
	DecodeErr
)

// Result is what Pull returns: either a codepoint with its position,
// or a terminator explaining why there is none.
type Result struct {
	Codepoint  rune
	Line       uint32
	Column     uint32
	Terminator Terminator
	Err        error
}

// Decoder decodes a byte Source into codepoints, tracking line/column
// and offering a single-slot pushback.
type Decoder struct {
	enc Encoding

	// runeReader produces already-UTF-8-normalized bytes: for UTF-8
	// input this is the raw byte stream; for UTF-16 it is the output
	// of an x/text transform.Transformer; for UTF-32 it is fed by a
	// hand-rolled fixed-width reader, since x/text has no UTF-32
	// encoding.
	runeReader *bufio.Reader

	line, column uint32

	pushed    bool
	pushedVal Result
}

// New attaches a Decoder to src, sniffing its byte-order mark.
func New(src source.Source) (*Decoder, error) {
	d := &Decoder{line: 1, column: 1}

	first4, consumed, err := peekUpTo4(src)
	if err != nil {
		return nil, err
	}

	enc, skip := detectBOM(first4, consumed)
	d.enc = enc

	leftover := first4[skip:consumed]
	rest := &prependReader{prepend: leftover, src: src}

	switch enc {
	case UTF16LE, UTF16BE:
		bo := unicode.LittleEndian
		if enc == UTF16BE {
			bo = unicode.BigEndian
		}
		transcoder := unicode.UTF16(bo, unicode.IgnoreBOM).NewDecoder()
		d.runeReader = bufio.NewReader(transform.NewReader(rest, transcoder))
	case UTF32LE, UTF32BE:
		d.runeReader = bufio.NewReader(newUTF32Reader(rest, enc == UTF32BE))
	default:
		d.runeReader = bufio.NewReader(rest)
	}

	return d, nil
}

// Encoding reports the encoding chosen during BOM sniffing.
func (d *Decoder) Encoding() Encoding { return d.enc }

// Pull returns the next codepoint and its position, or a terminator.
func (d *Decoder) Pull(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Result{Terminator: DecodeErr, Err: err}
	}

	if d.pushed {
		d.pushed = false
		return d.pushedVal
	}

	r, _, err := d.runeReader.ReadRune()
	if err == io.EOF {
		return Result{Line: d.line, Column: d.column, Terminator: EOF}
	}
	if err != nil {
		return Result{Line: d.line, Column: d.column, Terminator: DecodeErr, Err: err}
	}
	if r == utf8.RuneError {
		return Result{Line: d.line, Column: d.column, Terminator: DecodeErr,
			Err: fmt.Errorf("invalid byte sequence")}
	}

	res := Result{Codepoint: r, Line: d.line, Column: d.column}
	d.advancePosition(r)
	return res
}

func (d *Decoder) advancePosition(r rune) {
	if r >= 0x000A && r <= 0x000D {
		d.line++
		d.column = 1
	} else {
		d.column++
	}
}

// Unread pushes the most recently pulled result back for the next
// Pull to return again. Calling it twice without an intervening Pull
// is a protocol error, reported as a non-nil error.
func (d *Decoder) Unread(r Result) error {
	if d.pushed {
		return fmt.Errorf("decode: unread called twice without an intervening pull")
	}
	d.pushed = true
	d.pushedVal = r
	return nil
}

// peekUpTo4 reads up to 4 bytes from src without any pushback support
// in Source itself; the bytes are handed back to the caller to feed
// into whichever decoding path BOM sniffing selects.
func peekUpTo4(src source.Source) ([4]byte, int, error) {
	var buf [4]byte
	n := 0
	for n < 4 {
		b, ok, err := src.Next()
		if err != nil {
			return buf, n, err
		}
		if !ok {
			break
		}
		buf[n] = b
		n++
	}
	return buf, n, nil
}

// detectBOM inspects up to 4 leading bytes (of which only n were
// actually available from the source) and returns the chosen encoding
// plus how many of those bytes the BOM itself consumes.
func detectBOM(b [4]byte, n int) (Encoding, int) {
	switch {
	case n >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return UTF8, 3
	case n >= 4 && b[0] == 0xFF && b[1] == 0xFE && b[2] == 0x00 && b[3] == 0x00:
		return UTF32LE, 4
	case n >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return UTF16BE, 2
	case n >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return UTF16LE, 2
	case n >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
		return UTF32BE, 4
	default:
		return UTF8, 0
	}
}

// prependReader replays a handful of already-consumed bytes before
// falling through to src, so BOM sniffing can consume lookahead bytes
// without needing multi-byte pushback in Source itself.
type prependReader struct {
	prepend []byte
	i       int
	src     source.Source
}

func (r *prependReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && r.i < len(r.prepend) {
		p[n] = r.prepend[r.i]
		n++
		r.i++
	}
	if n > 0 {
		return n, nil
	}

	b, ok, err := r.src.Next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, io.EOF
	}
	p[0] = b
	return 1, nil
}

// utf32Reader decodes fixed 4-byte UTF-32 code units into UTF-8 bytes;
// x/text's encoding/unicode package has no UTF-32 support, so this is
// hand-rolled per spec.
type utf32Reader struct {
	src       io.Reader
	bigEndian bool
	out       []byte
	outPos    int
}

func newUTF32Reader(src io.Reader, bigEndian bool) *utf32Reader {
	return &utf32Reader{src: src, bigEndian: bigEndian}
}

func (r *utf32Reader) Read(p []byte) (int, error) {
	if r.outPos < len(r.out) {
		n := copy(p, r.out[r.outPos:])
		r.outPos += n
		return n, nil
	}

	var quad [4]byte
	if _, err := io.ReadFull(r.src, quad[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, fmt.Errorf("decode: truncated UTF-32 sequence: %w", err)
		}
		return 0, err
	}

	var cp uint32
	if r.bigEndian {
		cp = uint32(quad[0])<<24 | uint32(quad[1])<<16 | uint32(quad[2])<<8 | uint32(quad[3])
	} else {
		cp = uint32(quad[3])<<24 | uint32(quad[2])<<16 | uint32(quad[1])<<8 | uint32(quad[0])
	}

	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, rune(cp))
	r.out = buf[:n]
	r.outPos = 0

	n = copy(p, r.out)
	r.outPos = n
	return n, nil
}
