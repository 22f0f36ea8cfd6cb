package tree

import (
	"iter"
	"strings"

	"github.com/terawatthour/htmlstream/internal/lexer"
)

// Casing selects the tagname-casing transform applied to both opening
// and closing tagnames before they are compared or stored.
type Casing int

const (
	CasingLower Casing = iota
	CasingUpper
	CasingPreserve
)

func applyCasing(tagName string, c Casing) string {
	switch c {
	case CasingLower:
		return strings.ToLower(tagName)
	case CasingUpper:
		return strings.ToUpper(tagName)
	default:
		return tagName
	}
}

// Options configures the tree builder.
type Options struct {
	Casing        Casing
	StripComments bool
}

// ErrKind classifies a BuildError, mirroring the distinctions the root
// package's Error.Kind needs without importing it.
type ErrKind int

const (
	// ErrDecode is a decode-layer failure (invalid or truncated byte
	// sequence), forwarded from a lexer ErrorToken.
	ErrDecode ErrKind = iota
	// ErrLexerProtocol is the lexer's own invariant violation
	// (double-unread), forwarded from a lexer ErrorToken.
	ErrLexerProtocol
	// ErrParserProtocol means the builder observed a token sequence
	// that could not have come from a well-behaved lexer (an
	// ATTRIBUTE_VALUE with no preceding ATTRIBUTE_NAME).
	ErrParserProtocol
)

// BuildError is the tree builder's internal error representation; the
// root package wraps it into htmlstream.Error.
type BuildError struct {
	Kind    ErrKind
	Message string
	Pos     Position
}

// engine holds the state shared by every frame in one parse: the
// token source, configuration, and the first error encountered (if
// any), which becomes visible once the relevant subtree is drained.
type engine struct {
	tokens <-chan lexer.Token
	opts   Options
	err    *BuildError
}

// Builder drives the tree-builder recursion (component C5) lazily:
// constructing a Builder does no work; Nodes() returns the root node
// stream, and Err() reports the first error once that stream (and any
// child streams spawned from it) has been drained.
type Builder struct {
	eng  *engine
	root *frame
}

// NewBuilder creates a Builder reading tokens from the given channel.
func NewBuilder(tokens <-chan lexer.Token, opts Options) *Builder {
	eng := &engine{tokens: tokens, opts: opts}
	return &Builder{eng: eng, root: newFrame(eng, nil)}
}

// Nodes returns the lazy top-level node stream.
func (b *Builder) Nodes() iter.Seq[Node] {
	return b.root.asSeq()
}

// Err reports the first lexer/protocol error encountered, or nil.
// Only meaningful once the node stream (including every child stream
// reachable from it) has been drained.
func (b *Builder) Err() *BuildError {
	return b.eng.err
}

type outcomeKind int

const (
	outcomeEOF outcomeKind = iota
	outcomeOwnClose
	outcomePropagate
	outcomeAbort
)

type outcome struct {
	kind    outcomeKind
	tagName string
}

// frame is one nesting level's lazy node iterator. The root frame has
// an empty stack; an element's child frame has stack = parent.stack +
// [elementName].
//
// Parsing is entirely synchronous and pull-driven: there is exactly
// one goroutine (the lexer's) producing tokens, and frames consume
// them strictly in order via a single shared channel. A child frame
// is not eagerly walked when its element is produced — it is attached
// lazily as Element.Stream — but before a frame can correctly resume
// reading its own next token, any child frame it has not yet fully
// consumed must be drained first, since both read from the same
// channel. This is what pendingChild/drain implement: if the consumer
// ranges an element's child stream to completion, the drain is a
// no-op; if the consumer abandons it partway (or never touches it),
// drain transparently finishes consuming (and discarding) the
// remainder, bounded by the remaining input, so the outer stream is
// never blocked waiting on a consumer that walked away.
type frame struct {
	eng   *engine
	stack []string
	own   string

	pendingChild *frame
	finished     bool
	outcome      outcome
}

func newFrame(eng *engine, stack []string) *frame {
	own := ""
	if len(stack) > 0 {
		own = stack[len(stack)-1]
	}
	return &frame{eng: eng, stack: stack, own: own}
}

func (f *frame) finish(o outcome) {
	f.finished = true
	f.outcome = o
}

// drain fully consumes this frame (and anything nested in it),
// discarding any nodes produced.
func (f *frame) drain() {
	for {
		_, ok := f.next()
		if !ok {
			return
		}
	}
}

// asSeq exposes this frame as the lazy node stream handed to
// consumers.
func (f *frame) asSeq() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for {
			n, ok := f.next()
			if !ok {
				return
			}
			if !yield(n) {
				return
			}
		}
	}
}

func matchAncestor(stack []string, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			return i
		}
	}
	return -1
}

// next produces the next Node at this level, or ok=false once this
// level is finished (EOF, its own matching close was consumed by a
// child and accounted for, or an ancestor's close propagated through
// it).
func (f *frame) next() (Node, bool) {
	if f.finished {
		return nil, false
	}

	if f.pendingChild != nil {
		f.pendingChild.drain()
		out := f.pendingChild.outcome
		f.pendingChild = nil
		switch out.kind {
		case outcomeAbort:
			f.finish(out)
			return nil, false
		case outcomeEOF:
			f.finish(out)
			return nil, false
		case outcomePropagate:
			if out.tagName == f.own {
				// the propagated close names this frame's own element:
				// it ends here and the parent keeps reading siblings.
				f.finish(outcome{kind: outcomeOwnClose, tagName: f.own})
			} else {
				f.finish(out)
			}
			return nil, false
		case outcomeOwnClose:
			// normal: this element closed correctly; keep reading
			// this level's own remaining siblings below.
		}
	}

	for {
		tok, ok := <-f.eng.tokens
		if !ok {
			f.finish(outcome{kind: outcomeEOF})
			return nil, false
		}

		switch t := tok.(type) {
		case *lexer.EOFToken:
			f.finish(outcome{kind: outcomeEOF})
			return nil, false

		case *lexer.ErrorToken:
			f.eng.recordErr(lexerErrKind(t.ErrKind), t.Message, t.Pos())
			f.finish(outcome{kind: outcomeAbort})
			return nil, false

		case *lexer.TextContentToken:
			if t.Value == "" {
				continue
			}
			return newText(t.Pos(), t.Value), true

		case *lexer.DoctypeDeclarationToken:
			return newDoctype(t.Pos(), t.Value), true

		case *lexer.CommentToken:
			if f.eng.opts.StripComments {
				continue
			}
			return newComment(t.Pos(), t.Value), true

		case *lexer.ClosingTagNameToken:
			name := applyCasing(t.Value, f.eng.opts.Casing)
			idx := matchAncestor(f.stack, name)
			if idx < 0 {
				continue
			}
			if idx == len(f.stack)-1 {
				f.finish(outcome{kind: outcomeOwnClose, tagName: name})
			} else {
				f.finish(outcome{kind: outcomePropagate, tagName: f.stack[idx]})
			}
			return nil, false

		case *lexer.OpeningTagNameToken:
			node, abort := f.buildElement(t)
			if abort {
				return nil, false
			}
			return node, true

		default:
			// ATTRIBUTE_NAME / ATTRIBUTE_VALUE / OPENING_TAG_END /
			// SELF_CLOSING_TAG_END only ever occur inside buildElement;
			// seeing one here would mean the lexer misbehaved. Tolerate
			// by skipping it.
			continue
		}
	}
}

// buildElement consumes the attribute/tag-end tokens following an
// OPENING_TAGNAME token and constructs the Element node. abort is true
// if the frame terminated (EOF or error) while doing so, in which case
// the caller's next() has already returned its own (nil, false).
func (f *frame) buildElement(nameTok *lexer.OpeningTagNameToken) (Node, bool) {
	name := applyCasing(nameTok.Value, f.eng.opts.Casing)
	pos := nameTok.Pos()
	var attrs []Attribute
	awaitingValue := false

	for {
		tok, ok := <-f.eng.tokens
		if !ok {
			f.finish(outcome{kind: outcomeEOF})
			return nil, true
		}

		switch t := tok.(type) {
		case *lexer.AttributeNameToken:
			attrs = append(attrs, Attribute{Name: t.Value, Position: t.Pos()})
			awaitingValue = true

		case *lexer.AttributeValueToken:
			if !awaitingValue {
				f.eng.recordErr(ErrParserProtocol, "attribute value with no preceding attribute name", t.Pos())
				f.finish(outcome{kind: outcomeAbort})
				return nil, true
			}
			attrs[len(attrs)-1].Value = t.Value
			awaitingValue = false

		case *lexer.SelfClosingTagEndToken:
			return newElement(pos, name, attrs, nil), false

		case *lexer.OpeningTagEndToken:
			childStack := make([]string, len(f.stack)+1)
			copy(childStack, f.stack)
			childStack[len(f.stack)] = name
			child := newFrame(f.eng, childStack)
			el := newElement(pos, name, attrs, child.asSeq())
			f.pendingChild = child
			return el, false

		case *lexer.EOFToken:
			f.finish(outcome{kind: outcomeEOF})
			return nil, true

		case *lexer.ErrorToken:
			f.eng.recordErr(lexerErrKind(t.ErrKind), t.Message, t.Pos())
			f.finish(outcome{kind: outcomeAbort})
			return nil, true

		default:
			continue
		}
	}
}

func lexerErrKind(k lexer.ErrKind) ErrKind {
	if k == lexer.ErrProtocol {
		return ErrLexerProtocol
	}
	return ErrDecode
}

func (e *engine) recordErr(kind ErrKind, message string, pos Position) {
	if e.err == nil {
		e.err = &BuildError{Kind: kind, Message: message, Pos: pos}
	}
}
