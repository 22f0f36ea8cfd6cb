package tree

import "encoding/json"

// MarshalJSON produces the materialized element shape: tagName,
// attributes (omitted if empty), children (omitted if empty), l, c.
func (e *Element) MarshalJSON() ([]byte, error) {
	type shape struct {
		TagName    string      `json:"tagName"`
		Attributes []Attribute `json:"attributes,omitempty"`
		Children   []Node      `json:"children,omitempty"`
		Line       uint32      `json:"l"`
		Column     uint32      `json:"c"`
	}
	return json.Marshal(shape{
		TagName:    e.TagName,
		Attributes: e.Attributes,
		Children:   e.Children,
		Line:       e.Pos().Line,
		Column:     e.Pos().Column,
	})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	type shape struct {
		TextContent string `json:"textContent"`
		Line        uint32 `json:"l"`
		Column      uint32 `json:"c"`
	}
	return json.Marshal(shape{t.TextContent, t.Pos().Line, t.Pos().Column})
}

func (d *Doctype) MarshalJSON() ([]byte, error) {
	type shape struct {
		DoctypeDeclaration string `json:"doctypeDeclaration"`
		Line               uint32 `json:"l"`
		Column             uint32 `json:"c"`
	}
	return json.Marshal(shape{d.DoctypeDeclaration, d.Pos().Line, d.Pos().Column})
}

func (c *Comment) MarshalJSON() ([]byte, error) {
	type shape struct {
		Comment string `json:"comment"`
		Line    uint32 `json:"l"`
		Column  uint32 `json:"c"`
	}
	return json.Marshal(shape{c.CommentText, c.Pos().Line, c.Pos().Column})
}

// MarshalJSON flattens the embedded Position into l/c, per the
// materialized attribute shape: name, value, l, c.
func (a Attribute) MarshalJSON() ([]byte, error) {
	type shape struct {
		Name   string `json:"name"`
		Value  string `json:"value"`
		Line   uint32 `json:"l"`
		Column uint32 `json:"c"`
	}
	return json.Marshal(shape{a.Name, a.Value, a.Position.Line, a.Position.Column})
}
