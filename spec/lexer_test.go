package spec

import (
	"strings"
	"testing"
)

func TestLexer_Run(t *testing.T) {
	symTok := func(text string) *token {
		return newToken(tokenKindSymbol, text, Position{})
	}
	dirTok := func(name string) *token {
		return newToken(tokenKindDirective, name, Position{})
	}
	defTok := newToken(tokenKindDefine, "", Position{})
	nlTok := newToken(tokenKindNewline, "", Position{})
	eofTok := newEOFToken(Position{})

	tests := []struct {
		caption string
		src     string
		tokens  []*token
	}{
		{
			caption: "the lexer can recognize all kinds of tokens",
			src:     "#start E\nE ::= ( E ) \\| i",
			tokens: []*token{
				dirTok("start"),
				symTok("E"),
				nlTok,
				symTok("E"),
				defTok,
				symTok("("),
				symTok("E"),
				symTok(")"),
				symTok(`\|`),
				symTok("i"),
				eofTok,
			},
		},
		{
			caption: "meta-tokens are ordinary symbols for the lexer",
			src:     `\( \) \{ \} \| ( ) { } |`,
			tokens: []*token{
				symTok(`\(`),
				symTok(`\)`),
				symTok(`\{`),
				symTok(`\}`),
				symTok(`\|`),
				symTok("("),
				symTok(")"),
				symTok("{"),
				symTok("}"),
				symTok("|"),
				eofTok,
			},
		},
		{
			caption: "the lexer skips white spaces and comments, and reduces consecutive newlines",
			src:     "// comment\n\n  a\t::=  b // trailing comment\r\n\r\nc",
			tokens: []*token{
				nlTok,
				symTok("a"),
				defTok,
				symTok("b"),
				nlTok,
				symTok("c"),
				eofTok,
			},
		},
		{
			caption: "a symbol may contain `::=` and `#` when they are not the whole token",
			src:     "a::= #",
			tokens: []*token{
				symTok("a::="),
				symTok("#"),
				eofTok,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			n := 0
			for {
				var tok *token
				tok, err = l.next()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if n >= len(tt.tokens) {
					t.Fatalf("unexpected token: %+v", tok)
				}
				testToken(t, tok, tt.tokens[n])
				n++
				if tok.kind == tokenKindEOF {
					break
				}
			}
			if n != len(tt.tokens) {
				t.Fatalf("unexpected token count; want: %v, got: %v", len(tt.tokens), n)
			}
		})
	}
}

func TestLexer_positions(t *testing.T) {
	l, err := newLexer(strings.NewReader("S ::= a\n  b"))
	if err != nil {
		t.Fatal(err)
	}
	expected := []Position{
		newPosition(1, 1),
		newPosition(1, 3),
		newPosition(1, 7),
		newPosition(1, 8),
		newPosition(2, 3),
	}
	for _, pos := range expected {
		tok, err := l.next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.pos != pos {
			t.Fatalf("unexpected position of %+v; want: %+v", tok, pos)
		}
	}
}

func testToken(t *testing.T, tok, expected *token) {
	t.Helper()
	if tok.kind != expected.kind || tok.text != expected.text {
		t.Fatalf("unexpected token; want: %+v, got: %+v", expected, tok)
	}
}
