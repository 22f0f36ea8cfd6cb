package htmlstream

import "github.com/terawatthour/htmlstream/internal/tree"

// Node, Element, Text, Doctype, Comment, Attribute, and NodeKind
// re-export the tree builder's own types so there is exactly one
// definition of each, shared between internal/tree and this package's
// callers (see internal/position for why the same trick is used for
// Position).
type (
	Node      = tree.Node
	Element   = tree.Element
	Text      = tree.Text
	Doctype   = tree.Doctype
	Comment   = tree.Comment
	Attribute = tree.Attribute
	NodeKind  = tree.NodeKind
)

const (
	ElementNode = tree.ElementNode
	TextNode    = tree.TextNode
	DoctypeNode = tree.DoctypeNode
	CommentNode = tree.CommentNode
)
