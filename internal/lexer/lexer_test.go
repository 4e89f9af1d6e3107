package lexer_test

import (
	"testing"

	"loxvm/internal/lexer"
	"loxvm/internal/token"
)

func collect(src string) []token.Token {
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestNext_Punctuators(t *testing.T) {
	toks := collect("(){},.-+;*/!=<=>=<>")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.BangEqual, token.LessEqual,
		token.GreaterEqual, token.Less, token.Greater, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestNext_KeywordsAndIdentifiers(t *testing.T) {
	toks := collect("var x = fun orchid")
	wantKinds := []token.Kind{token.KwVar, token.Ident, token.Equal, token.KwFun, token.Ident, token.EOF}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[4].Text != "orchid" {
		t.Errorf("identifier text = %q, want orchid", toks[4].Text)
	}
}

func TestNext_NumberLiteral(t *testing.T) {
	toks := collect("3.14 7 .5")
	if toks[0].Kind != token.Number || toks[0].Text != "3.14" {
		t.Errorf("first number = %+v", toks[0])
	}
	if toks[1].Kind != token.Number || toks[1].Text != "7" {
		t.Errorf("second number = %+v", toks[1])
	}
	// A leading '.' with no prior digits is not a number start; it scans as DOT.
	if toks[2].Kind != token.Dot {
		t.Errorf("third token = %+v, want DOT", toks[2])
	}
}

func TestNext_StringLiteralSpansLines(t *testing.T) {
	toks := collect("\"foo\nbar\"")
	if toks[0].Kind != token.String {
		t.Fatalf("got %+v, want STRING", toks[0])
	}
	if toks[0].Text != "foo\nbar" {
		t.Errorf("text = %q", toks[0].Text)
	}
}

func TestNext_UnterminatedString(t *testing.T) {
	toks := collect("\"never closed")
	if toks[0].Kind != token.Error {
		t.Fatalf("got %+v, want ERROR", toks[0])
	}
}

func TestNext_LineCountingAcrossComments(t *testing.T) {
	l := lexer.New("1\n// comment\n2")
	first := l.Next()
	if first.Line != 1 {
		t.Fatalf("first.Line = %d, want 1", first.Line)
	}
	second := l.Next()
	if second.Line != 3 {
		t.Fatalf("second.Line = %d, want 3", second.Line)
	}
}
