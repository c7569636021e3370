package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindDefine    = tokenKind("::=")
	tokenKindDirective = tokenKind("directive")
	tokenKindSymbol    = tokenKind("symbol")
	tokenKindNewline   = tokenKind("newline")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

// The entries are listed in order of priority. A symbol is any run of characters other
// than white spaces, so `::=`, a directive, and a line comment must be tried first.
var lexEntries = []*mlspec.LexEntry{
	{Kind: "white_space", Pattern: `[\u{0009}\u{0020}]+`},
	{Kind: "newline", Pattern: `\u{000A}|\u{000D}|\u{000D}\u{000A}`},
	{Kind: "line_comment", Pattern: `//[^\u{000A}\u{000D}]*`},
	{Kind: "define", Pattern: `::=`},
	{Kind: "directive", Pattern: `#[A-Za-z_][0-9A-Za-z_]*`},
	{Kind: "symbol", Pattern: `[^\u{0009}\u{000A}\u{000D}\u{0020}]+`},
}

var (
	clexspec     *mlspec.CompiledLexSpec
	clexspecErr  error
	clexspecOnce sync.Once
)

// compiledLexSpec compiles the lexical specification once per process.
func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	clexspecOnce.Do(func() {
		s, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Entries: lexEntries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				for i, cErr := range cErrs {
					if i > 0 {
						fmt.Fprintf(&b, "\n")
					}
					fmt.Fprintf(&b, "%v: %v", cErr.Kind, cErr.Cause)
				}
				clexspecErr = fmt.Errorf("failed to compile the lexical specification: %v", b.String())
				return
			}
			clexspecErr = err
			return
		}
		clexspec = s
	})
	return clexspec, clexspecErr
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf *token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token. Consecutive newlines are reduced to one.
func (l *lexer) next() (*token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}

	var newline *token
	for {
		tok, err := l.lexAndSkipWSs()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindNewline {
			newline = tok
			continue
		}

		if newline != nil {
			l.buf = tok
			return newline, nil
		}
		return tok, nil
	}
}

func (l *lexer) lexAndSkipWSs() (*token, error) {
	var tok *mldriver.Token
	var kind mlspec.LexKindName
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		pos := newPosition(tok.Row+1, tok.Col+1)
		if tok.Invalid {
			return newToken(tokenKindInvalid, string(tok.Lexeme), pos), nil
		}
		if tok.EOF {
			return newEOFToken(pos), nil
		}
		kind = l.s.KindNames[tok.KindID]
		switch kind {
		case "white_space", "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch kind {
	case "newline":
		return newToken(tokenKindNewline, "", pos), nil
	case "define":
		return newToken(tokenKindDefine, "", pos), nil
	case "directive":
		// Remove the '#' character.
		return newToken(tokenKindDirective, string(tok.Lexeme[1:]), pos), nil
	case "symbol":
		return newToken(tokenKindSymbol, string(tok.Lexeme), pos), nil
	default:
		return newToken(tokenKindInvalid, string(tok.Lexeme), pos), nil
	}
}
