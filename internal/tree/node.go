// Package tree implements the tree builder (component C5): it
// consumes the lexer's token stream and produces a hierarchical
// stream of nodes, where each element's children are themselves a
// lazy stream.
package tree

import (
	"iter"

	"github.com/terawatthour/htmlstream/internal/position"
)

// Position re-exports the shared location type.
type Position = position.Position

// NodeKind tags a Node's concrete variant.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	DoctypeNode
	CommentNode
)

// Node is the tagged variant streamed out of the tree builder.
type Node interface {
	Kind() NodeKind
	Pos() Position
}

type base struct {
	kind NodeKind
	pos  Position
}

func (b base) Kind() NodeKind { return b.kind }
func (b base) Pos() Position  { return b.pos }

// Attribute is a single name/value pair on an Element, with the
// position of its name token. Value is the empty string for boolean
// attributes.
type Attribute struct {
	Name     string
	Value    string
	Position Position
}

// Element is a tagged element node. In streaming mode, Stream is a
// finite lazy sequence of this element's children and Children is nil;
// a nil Stream means the element is self-closing/void with no body.
// In materialized mode, Stream is nil and Children holds the fully
// resolved child slice (nil, not empty, when there are no children).
type Element struct {
	base
	TagName    string
	Attributes []Attribute
	Stream     iter.Seq[Node]
	Children   []Node
}

// Text is a non-empty run of text content.
type Text struct {
	base
	TextContent string
}

// Doctype carries the trimmed identifier following <!DOCTYPE.
type Doctype struct {
	base
	DoctypeDeclaration string
}

// Comment carries the trimmed content between <!-- and -->.
type Comment struct {
	base
	CommentText string
}

func newElement(pos Position, tagName string, attrs []Attribute, stream iter.Seq[Node]) *Element {
	return &Element{base: base{ElementNode, pos}, TagName: tagName, Attributes: attrs, Stream: stream}
}

func newText(pos Position, value string) *Text {
	return &Text{base: base{TextNode, pos}, TextContent: value}
}

func newDoctype(pos Position, value string) *Doctype {
	return &Doctype{base: base{DoctypeNode, pos}, DoctypeDeclaration: value}
}

func newComment(pos Position, value string) *Comment {
	return &Comment{base: base{CommentNode, pos}, CommentText: value}
}
