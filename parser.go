// Package htmlstream implements a streaming HTML lexer and lazy tree
// builder: a byte-level state-function lexer (BOM-aware, UTF-8/UTF-16/
// UTF-32 capable) feeds a tree builder that exposes each element's
// children as a lazy stream, so a consumer can walk a deeply nested
// document without materializing it in full.
package htmlstream

import (
	"context"

	"github.com/terawatthour/htmlstream/internal/decode"
	"github.com/terawatthour/htmlstream/internal/lexer"
	"github.com/terawatthour/htmlstream/internal/source"
	"github.com/terawatthour/htmlstream/internal/tree"
)

// Parser holds a resolved set of options; construct once and reuse
// across any number of ParseFile/ParseString calls.
type Parser struct {
	cfg config
}

// New builds a Parser from the given options.
func New(opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{cfg: cfg}
}

// ParseFile opens path and returns a single-use ParseResult over it.
// The file handle is released when ToArray returns, when a range over
// Stream ends (fully or early), or when ParseResult.Close is called.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	src, err := source.FromFile(path)
	if err != nil {
		e := newError(IOError, Position{}, "opening %s: %s", path, err)
		e.Wrapped = err
		return nil, e
	}
	dec, err := decode.New(src)
	if err != nil {
		_ = src.Close()
		e := newError(IOError, Position{}, "reading %s: %s", path, err)
		e.Wrapped = err
		return nil, e
	}
	return p.newResult(src, dec), nil
}

// ParseString wraps s as an in-memory source and returns a single-use
// ParseResult over it.
func (p *Parser) ParseString(s string) *ParseResult {
	src := source.FromBytes([]byte(s))
	dec, err := decode.New(src)
	if err != nil {
		// Unreachable for an in-memory source (BOM sniffing cannot
		// fail reading from a byte slice), guarded against regardless
		// so ParseString never panics.
		return &ParseResult{initErr: newError(DecodeError, Position{}, "%s", err)}
	}
	return p.newResult(src, dec)
}

func (p *Parser) newResult(src source.Source, dec *decode.Decoder) *ParseResult {
	ctx, cancel := context.WithCancel(context.Background())
	tokens := lexer.Run(ctx, dec, lexer.Options{
		IgnoreSelfClosingSyntax: p.cfg.ignoreSelfClosingSyntax,
	}, p.cfg.logger)
	builder := tree.NewBuilder(tokens, tree.Options{
		Casing:        p.cfg.casing.toTree(),
		StripComments: p.cfg.stripComments,
	})
	return &ParseResult{src: src, cancel: cancel, builder: builder}
}
