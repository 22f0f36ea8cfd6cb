package lexer

import (
	"context"
	"testing"

	"github.com/terawatthour/htmlstream/internal/decode"
	"github.com/terawatthour/htmlstream/internal/source"
)

func collect(t *testing.T, html string, opts Options) []Token {
	t.Helper()
	dec, err := decode.New(source.FromBytes([]byte(html)))
	if err != nil {
		t.Fatalf("decode.New: %v", err)
	}
	var out []Token
	for tok := range Run(context.Background(), dec, opts, nil) {
		out = append(out, tok)
	}
	return out
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind()
	}
	return out
}

func assertKinds(t *testing.T, toks []Token, want ...TokenKind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestLexerPlainText(t *testing.T) {
	toks := collect(t, "hello", Options{})
	assertKinds(t, toks, TextContent, EOF)
	if tc := toks[0].(*TextContentToken); tc.Value != "hello" {
		t.Errorf("text = %q", tc.Value)
	}
}

func TestLexerSimpleElement(t *testing.T) {
	toks := collect(t, `<div>hi</div>`, Options{})
	assertKinds(t, toks, OpeningTagName, OpeningTagEnd, TextContent, ClosingTagName, EOF)
	if nm := toks[0].(*OpeningTagNameToken); nm.Value != "div" {
		t.Errorf("tagname = %q", nm.Value)
	}
	if nm := toks[3].(*ClosingTagNameToken); nm.Value != "div" {
		t.Errorf("closing tagname = %q", nm.Value)
	}
}

func TestLexerSelfClosingSyntax(t *testing.T) {
	toks := collect(t, `<br/>after`, Options{})
	assertKinds(t, toks, OpeningTagName, SelfClosingTagEnd, TextContent, EOF)
}

func TestLexerIgnoreSelfClosingSyntax(t *testing.T) {
	toks := collect(t, `<custom/>after</custom>`, Options{IgnoreSelfClosingSyntax: true})
	assertKinds(t, toks, OpeningTagName, OpeningTagEnd, TextContent, ClosingTagName, EOF)
}

func TestLexerVoidElementAlwaysSelfCloses(t *testing.T) {
	toks := collect(t, `<img src="a.png">after`, Options{IgnoreSelfClosingSyntax: true})
	assertKinds(t, toks, OpeningTagName, AttributeName, AttributeValue, SelfClosingTagEnd, TextContent, EOF)
}

func TestLexerAttributes(t *testing.T) {
	toks := collect(t, `<a href="x" data-on target></a>`, Options{})
	assertKinds(t, toks,
		OpeningTagName,
		AttributeName, AttributeValue,
		AttributeName,
		AttributeName,
		OpeningTagEnd,
		ClosingTagName,
		EOF,
	)
	if v := toks[1].(*AttributeNameToken).Value; v != "href" {
		t.Errorf("attr name = %q", v)
	}
	if v := toks[2].(*AttributeValueToken).Value; v != "x" {
		t.Errorf("attr value = %q", v)
	}
	if v := toks[3].(*AttributeNameToken).Value; v != "data-on" {
		t.Errorf("attr name = %q", v)
	}
}

func TestLexerUnquotedAttributeValue(t *testing.T) {
	toks := collect(t, `<input value=42>`, Options{})
	assertKinds(t, toks, OpeningTagName, AttributeName, AttributeValue, SelfClosingTagEnd, EOF)
	if v := toks[2].(*AttributeValueToken).Value; v != "42" {
		t.Errorf("value = %q", v)
	}
}

func TestLexerQuotedAttributeValueEscape(t *testing.T) {
	toks := collect(t, `<a title="a\"b"></a>`, Options{})
	assertKinds(t, toks, OpeningTagName, AttributeName, AttributeValue, OpeningTagEnd, ClosingTagName, EOF)
	if v := toks[2].(*AttributeValueToken).Value; v != `a"b` {
		t.Errorf("value = %q", v)
	}
}

func TestLexerWhitespaceAroundEquals(t *testing.T) {
	toks := collect(t, `<a href = "x"></a>`, Options{})
	if v := toks[2].(*AttributeValueToken).Value; v != "x" {
		t.Errorf("value = %q", v)
	}
}

func TestLexerComment(t *testing.T) {
	toks := collect(t, `a<!-- hi there -->b`, Options{})
	assertKinds(t, toks, TextContent, Comment, TextContent, EOF)
	if v := toks[1].(*CommentToken).Value; v != "hi there" {
		t.Errorf("comment = %q", v)
	}
}

func TestLexerCommentLikeFallsBackToText(t *testing.T) {
	toks := collect(t, `<!- not a comment`, Options{})
	assertKinds(t, toks, TextContent, EOF)
}

func TestLexerDoctype(t *testing.T) {
	toks := collect(t, `<!DOCTYPE html>rest`, Options{})
	assertKinds(t, toks, DoctypeDeclaration, TextContent, EOF)
	if v := toks[0].(*DoctypeDeclarationToken).Value; v != "html" {
		t.Errorf("doctype = %q", v)
	}
}

func TestLexerDoctypeLikeFallsBackToText(t *testing.T) {
	toks := collect(t, `<!DOCTYPX html>`, Options{})
	assertKinds(t, toks, TextContent, EOF)
}

func TestLexerScriptRawText(t *testing.T) {
	toks := collect(t, `<script>if (a < b) { x = "</not-closing>"; }</script>after`, Options{})
	assertKinds(t, toks, OpeningTagName, OpeningTagEnd, TextContent, ClosingTagName, TextContent, EOF)
	text := toks[2].(*TextContentToken).Value
	want := `if (a < b) { x = "</not-closing>"; }`
	if text != want {
		t.Errorf("script text = %q, want %q", text, want)
	}
}

func TestLexerTextareaRawTextIgnoresQuotes(t *testing.T) {
	toks := collect(t, `<textarea>"</foo> still in here</textarea>`, Options{})
	assertKinds(t, toks, OpeningTagName, OpeningTagEnd, TextContent, ClosingTagName, EOF)
	text := toks[2].(*TextContentToken).Value
	if text != `"</foo> still in here` {
		t.Errorf("textarea text = %q", text)
	}
}

func TestLexerClosingTagCaseInsensitiveMatchInsideRawText(t *testing.T) {
	toks := collect(t, `<SCRIPT>x</script>`, Options{})
	assertKinds(t, toks, OpeningTagName, OpeningTagEnd, TextContent, ClosingTagName, EOF)
}

func TestLexerEmptyInputIsJustEOF(t *testing.T) {
	toks := collect(t, "", Options{})
	assertKinds(t, toks, EOF)
}
