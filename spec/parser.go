package spec

import (
	"io"

	verr "github.com/nihei9/ecfg/error"
)

// RootNode is a description file: directives followed by productions, one per line.
//
//	#start E
//	E ::= T \{ + T \}
type RootNode struct {
	Directives  []*DirectiveNode
	Productions []*ProductionNode
}

type DirectiveNode struct {
	Name       string
	Parameters []string
	Pos        Position
}

// ProductionNode is a production as written. The RHS keeps meta-tokens, such as `\(`,
// as they are.
type ProductionNode struct {
	LHS string
	RHS []string
	Pos Position
}

func raiseSyntaxError(pos Position, synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	for {
		switch {
		case p.consume(tokenKindEOF):
			if len(root.Productions) == 0 {
				raiseSyntaxError(p.lastTok.pos, synErrNoProduction)
			}
			return root
		case p.consume(tokenKindNewline):
			continue
		case p.consume(tokenKindDirective):
			if len(root.Productions) > 0 {
				raiseSyntaxError(p.lastTok.pos, synErrDirectiveAfterProds)
			}
			root.Directives = append(root.Directives, p.parseDirective())
		default:
			root.Productions = append(root.Productions, p.parseProduction())
		}
	}
}

func (p *parser) parseDirective() *DirectiveNode {
	dir := &DirectiveNode{
		Name: p.lastTok.text,
		Pos:  p.lastTok.pos,
	}
	for p.consume(tokenKindSymbol) {
		dir.Parameters = append(dir.Parameters, p.lastTok.text)
	}
	if len(dir.Parameters) == 0 {
		raiseSyntaxError(dir.Pos, synErrDirNoParameter)
	}
	p.parseLineEnd()
	return dir
}

func (p *parser) parseProduction() *ProductionNode {
	if !p.consume(tokenKindSymbol) {
		raiseSyntaxError(p.peekPos(), synErrNoProductionName)
	}
	prod := &ProductionNode{
		LHS: p.lastTok.text,
		RHS: []string{},
		Pos: p.lastTok.pos,
	}
	if !p.consume(tokenKindDefine) {
		raiseSyntaxError(p.peekPos(), synErrNoDefine)
	}
	for p.consume(tokenKindSymbol) {
		prod.RHS = append(prod.RHS, p.lastTok.text)
	}
	p.parseLineEnd()
	return prod
}

func (p *parser) parseLineEnd() {
	switch {
	case p.consume(tokenKindNewline):
	case p.consume(tokenKindDefine):
		raiseSyntaxError(p.lastTok.pos, synErrDefineInRHS)
	case p.consume(tokenKindDirective):
		raiseSyntaxError(p.lastTok.pos, synErrDirectiveInRHS)
	default:
		// The EOF token is left for parseRoot.
		if p.peekKind() != tokenKindEOF {
			raiseSyntaxError(p.peekPos(), synErrInvalidToken)
		}
	}
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok
}

func (p *parser) peekKind() tokenKind {
	return p.peek().kind
}

func (p *parser) peekPos() Position {
	return p.peek().pos
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(tok.pos, synErrInvalidToken)
	}
	if tok.kind == expected {
		p.peekedTok = nil
		p.lastTok = tok
		return true
	}
	return false
}
