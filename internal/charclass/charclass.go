// Package charclass provides the pure character-classification
// predicates the lexer state machine dispatches on.
package charclass

import "sort"

// pcenRange is an inclusive codepoint range permitted in a "potentially
// custom element name" beyond plain ASCII letters.
type pcenRange struct {
	lo, hi rune
}

// pcenRanges must stay sorted by lo for IsPCEN's binary search.
var pcenRanges = []pcenRange{
	{0xC0, 0xD6},
	{0xD8, 0xF6},
	{0xF8, 0x37D},
	{0x37F, 0x1FFF},
	{0x200C, 0x200D},
	{0x203F, 0x2040},
	{0x2070, 0x218F},
	{0x2C00, 0x2FEF},
	{0x3001, 0xD7FF},
	{0xF900, 0xFDCF},
	{0xFDF0, 0xFFFD},
	{0x10000, 0xEFFFF},
}

// IsPCEN reports whether r falls in one of the PCEN codepoint ranges.
func IsPCEN(r rune) bool {
	i := sort.Search(len(pcenRanges), func(i int) bool {
		return pcenRanges[i].hi >= r
	})
	return i < len(pcenRanges) && pcenRanges[i].lo <= r
}

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// IsWhitespace reports whether r is one of the tab/CR/LF/FF/space
// whitespace codepoints (U+0009-U+000D or U+0020).
func IsWhitespace(r rune) bool {
	return (r >= 0x0009 && r <= 0x000D) || r == 0x0020
}

// IsLineBreak reports whether r is one of U+000A-U+000D, all treated
// uniformly as line breaks for position tracking.
func IsLineBreak(r rune) bool {
	return r >= 0x000A && r <= 0x000D
}

// IsLegalTagNameStart reports whether r may open a tag or element name.
func IsLegalTagNameStart(r rune) bool {
	return IsLetter(r) || r == '_'
}

// IsLegalTagNameChar reports whether r may appear inside a tag name
// after its first character. The digit range is 1-9, not 0-9: a
// tagname char can't be '0'.
func IsLegalTagNameChar(r rune) bool {
	if IsLetter(r) || (r >= '1' && r <= '9') {
		return true
	}
	switch r {
	case '-', '.', ':', '_':
		return true
	}
	return IsPCEN(r)
}

// IsLegalAttributeNameChar reports whether r may appear in an
// attribute name.
func IsLegalAttributeNameChar(r rune) bool {
	switch r {
	case '=', '>', '/', '\'', '"':
		return false
	}
	return !IsWhitespace(r)
}

// IsLegalUnquotedAttributeValueChar reports whether r may appear in an
// unquoted attribute value.
func IsLegalUnquotedAttributeValueChar(r rune) bool {
	switch r {
	case '<', '>', '\'', '"':
		return false
	}
	return !IsWhitespace(r)
}

// IsAttributeValueQuote reports whether r opens/closes a quoted
// attribute value.
func IsAttributeValueQuote(r rune) bool {
	return r == '\'' || r == '"'
}

// IsScriptContextQuote reports whether r is a quote character
// recognised inside <script> raw-text content.
func IsScriptContextQuote(r rune) bool {
	return r == '\'' || r == '"' || r == '`'
}

// IsStyleContextQuote reports whether r is a quote character
// recognised inside <style> raw-text content.
func IsStyleContextQuote(r rune) bool {
	return r == '\'' || r == '"'
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "param": {},
	"source": {}, "track": {}, "wbr": {},
}

// IsVoidElement reports whether tagName names a void element, which is
// always self-closing regardless of its written syntax. Comparison is
// case-sensitive; callers must apply tag-name casing normalization
// first.
func IsVoidElement(tagName string) bool {
	_, ok := voidElements[tagName]
	return ok
}

var rawTextElements = map[string]struct{}{
	"script": {}, "style": {}, "textarea": {}, "title": {},
}

// IsRawTextElement reports whether tagName's body is raw text, not
// parsed as HTML until the matching close tag.
func IsRawTextElement(tagName string) bool {
	_, ok := rawTextElements[tagName]
	return ok
}
