package htmlstream

import (
	"context"
	"iter"
	"sync"

	"github.com/terawatthour/htmlstream/internal/source"
	"github.com/terawatthour/htmlstream/internal/tree"
)

// ParseResult is a single-use handle over one parse's root node stream.
// It may be consumed at most once, via either Stream or ToArray;
// a second attempt returns ErrConsumed.
type ParseResult struct {
	mu       sync.Mutex
	consumed bool

	// initErr is set when construction itself failed (only reachable
	// defensively from ParseString; see Parser.ParseString).
	initErr *Error

	src     source.Source
	cancel  context.CancelFunc
	builder *tree.Builder
}

func (r *ParseResult) markConsumed() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.consumed {
		return ErrConsumed
	}
	r.consumed = true
	return nil
}

// Stream returns the lazy top-level node sequence. Ranging it to
// completion (or abandoning it early) always releases the underlying
// source; call Err afterward to check whether the parse completed
// cleanly.
func (r *ParseResult) Stream() (iter.Seq[Node], error) {
	if r.initErr != nil {
		return nil, r.initErr
	}
	if err := r.markConsumed(); err != nil {
		return nil, err
	}
	return func(yield func(Node) bool) {
		defer r.Close()
		for n := range r.builder.Nodes() {
			if !yield(n) {
				return
			}
		}
	}, nil
}

// ToArray fully drains the tree, recursively resolving every element's
// child stream into its Children slice, and returns the materialized
// top-level nodes. Elements with no children have a nil Children slice
// (elided from JSON, not an empty array).
func (r *ParseResult) ToArray() ([]Node, error) {
	if r.initErr != nil {
		return nil, r.initErr
	}
	if err := r.markConsumed(); err != nil {
		return nil, err
	}
	defer r.Close()
	return materialize(r.builder.Nodes()), nil
}

func materialize(seq iter.Seq[Node]) []Node {
	var out []Node
	for n := range seq {
		if el, ok := n.(*Element); ok && el.Stream != nil {
			el.Children = materialize(el.Stream)
			el.Stream = nil
		}
		out = append(out, n)
	}
	return out
}

// Err reports the first decode/lexer/protocol error encountered during
// the parse, or nil. Meaningful only after Stream or ToArray has been
// fully drained.
func (r *ParseResult) Err() *Error {
	if r.initErr != nil {
		return r.initErr
	}
	if r.builder == nil {
		return nil
	}
	be := r.builder.Err()
	if be == nil {
		return nil
	}
	var kind ErrorKind
	switch be.Kind {
	case tree.ErrDecode:
		kind = DecodeError
	case tree.ErrLexerProtocol:
		kind = LexerProtocolError
	case tree.ErrParserProtocol:
		kind = ParserProtocolError
	}
	return newError(kind, be.Pos, "%s", be.Message)
}

// Close releases the underlying source and cancels the parse's
// context. It is safe to call more than once and is called
// automatically once Stream/ToArray finishes draining.
func (r *ParseResult) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.src != nil {
		_ = r.src.Close()
	}
}
