package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nihei9/ecfg/grammar/symbol"
)

// Expression is a node of a right-hand side tree. The set of node types is closed:
// *SymbolExpr, *SequenceExpr, *AlternationExpr, and *RepetitionExpr.
//
// Every node owns its children exclusively, and carries a path such as `F/1/0` locating
// it in the definition of its non-terminal.
type Expression interface {
	Path() string
	String() string
	isExpression()
}

type exprNode struct {
	path string
}

func (n *exprNode) Path() string {
	return n.path
}

func (n *exprNode) isExpression() {}

type SymbolExpr struct {
	exprNode
	Symbol symbol.Symbol
	Text   string
}

func (e *SymbolExpr) String() string {
	return e.Text
}

type SequenceExpr struct {
	exprNode
	Children []Expression
}

func (e *SequenceExpr) String() string {
	if len(e.Children) == 0 {
		return "ε"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v", e.Children[0])
	for _, c := range e.Children[1:] {
		fmt.Fprintf(&b, " %v", c)
	}
	return b.String()
}

type AlternationExpr struct {
	exprNode
	Branches []Expression
}

// String writes the alternation with escaped meta-tokens, as in `\( a \| b \)`, so that
// it cannot be mistaken for the terminals `(`, `|`, and `)`.
func (e *AlternationExpr) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", symbol.MetaTokenGroupOpen)
	for i, br := range e.Branches {
		if i > 0 {
			fmt.Fprintf(&b, " %v", symbol.MetaTokenAlternation)
		}
		fmt.Fprintf(&b, " %v", br)
	}
	fmt.Fprintf(&b, " %v", symbol.MetaTokenGroupClose)
	return b.String()
}

type RepetitionExpr struct {
	exprNode
	Body Expression
}

func (e *RepetitionExpr) String() string {
	return fmt.Sprintf("%v %v %v", symbol.MetaTokenRepeatOpen, e.Body, symbol.MetaTokenRepeatClose)
}

// pathSeparator joins the segments of a path. Non-terminal names never contain it, so the
// first segment always names the definition a node belongs to.
const pathSeparator = "/"

// assignPaths labels e and all of its descendants. A child's path extends its parent's
// path with the child's index.
func assignPaths(e Expression, path string) {
	switch e := e.(type) {
	case *SymbolExpr:
		e.path = path
	case *SequenceExpr:
		e.path = path
		for i, c := range e.Children {
			assignPaths(c, path + pathSeparator + strconv.Itoa(i))
		}
	case *AlternationExpr:
		e.path = path
		for i, br := range e.Branches {
			assignPaths(br, path + pathSeparator + strconv.Itoa(i))
		}
	case *RepetitionExpr:
		e.path = path
		assignPaths(e.Body, path + pathSeparator + "0")
	}
}

// walkExpression visits e and its descendants in pre-order.
func walkExpression(e Expression, visit func(Expression)) {
	visit(e)
	switch e := e.(type) {
	case *SequenceExpr:
		for _, c := range e.Children {
			walkExpression(c, visit)
		}
	case *AlternationExpr:
		for _, br := range e.Branches {
			walkExpression(br, visit)
		}
	case *RepetitionExpr:
		walkExpression(e.Body, visit)
	}
}

// branch is a top-level alternative of a right-hand side together with the tokens it was written as.
type branch struct {
	expr   *SequenceExpr
	tokens []string
}

// exprBuilder compiles a flat token sequence into an expression tree by recursive descent:
//
//	alternatives : sequence { `\|` sequence }
//	sequence     : { item }
//	item         : symbol | `\(` alternatives `\)` | `\{` alternatives `\}`
type exprBuilder struct {
	symTab *symbol.SymbolTableReader
	toks   []string
	pos    int
}

func newExprBuilder(symTab *symbol.SymbolTableReader, toks []string) *exprBuilder {
	return &exprBuilder{
		symTab: symTab,
		toks:   toks,
	}
}

// build returns the top-level alternatives of the token sequence. An empty token sequence
// yields one empty branch.
func (b *exprBuilder) build() ([]*branch, *ValidationError) {
	var branches []*branch
	for {
		start := b.pos
		seq, err := b.parseSequence()
		if err != nil {
			return nil, err
		}
		branches = append(branches, &branch{
			expr:   seq,
			tokens: b.toks[start:b.pos],
		})
		meta, ok := b.peekMeta()
		if !ok {
			break
		}
		if meta == symbol.MetaTokenAlternation {
			b.pos++
			continue
		}
		return nil, &ValidationError{
			Cause:  semErrUnopenedBracket,
			Detail: b.describePos(),
		}
	}
	if len(branches) > 1 {
		for _, br := range branches {
			if len(br.expr.Children) == 0 {
				return nil, &ValidationError{
					Cause:  semErrEmptyBranch,
					Detail: strings.Join(b.toks, " "),
				}
			}
		}
	}
	return branches, nil
}

func (b *exprBuilder) parseSequence() (*SequenceExpr, *ValidationError) {
	seq := &SequenceExpr{}
	for b.pos < len(b.toks) {
		tok := b.toks[b.pos]
		meta, ok := symbol.ToMetaToken(tok)
		if !ok {
			sym, ok := b.symTab.ToSymbol(tok)
			if !ok || sym.IsEOF() {
				return nil, &ValidationError{
					Cause:  semErrUndefinedSym,
					Detail: tok,
				}
			}
			seq.Children = append(seq.Children, &SymbolExpr{
				Symbol: sym,
				Text:   tok,
			})
			b.pos++
			continue
		}

		if meta == symbol.MetaTokenAlternation || meta.IsCloser() {
			return seq, nil
		}

		b.pos++
		inner, err := b.parseBracketed(meta)
		if err != nil {
			return nil, err
		}
		seq.Children = append(seq.Children, inner)
	}
	return seq, nil
}

func (b *exprBuilder) parseBracketed(opener symbol.MetaToken) (Expression, *ValidationError) {
	openedAt := b.pos - 1
	var branches []*SequenceExpr
	for {
		seq, err := b.parseSequence()
		if err != nil {
			return nil, err
		}
		branches = append(branches, seq)
		meta, ok := b.peekMeta()
		if !ok {
			return nil, &ValidationError{
				Cause:  semErrUnclosedBracket,
				Detail: fmt.Sprintf("%v opened at token %v", opener, openedAt+1),
			}
		}
		b.pos++
		if meta == symbol.MetaTokenAlternation {
			continue
		}
		if meta != opener.Closer() {
			return nil, &ValidationError{
				Cause:  semErrMismatchedBracket,
				Detail: fmt.Sprintf("%v opened at token %v is closed by %v", opener, openedAt+1, meta),
			}
		}
		break
	}

	if len(branches) > 1 {
		for _, br := range branches {
			if len(br.Children) == 0 {
				return nil, &ValidationError{
					Cause:  semErrEmptyBranch,
					Detail: fmt.Sprintf("in %v opened at token %v", opener, openedAt+1),
				}
			}
		}
	} else if len(branches[0].Children) == 0 {
		cause := semErrEmptyGroup
		if opener == symbol.MetaTokenRepeatOpen {
			cause = semErrEmptyRepetition
		}
		return nil, &ValidationError{
			Cause:  cause,
			Detail: fmt.Sprintf("opened at token %v", openedAt+1),
		}
	}

	var body Expression
	if len(branches) == 1 {
		body = branches[0]
	} else {
		alt := &AlternationExpr{}
		for _, br := range branches {
			alt.Branches = append(alt.Branches, br)
		}
		body = alt
	}
	if opener == symbol.MetaTokenRepeatOpen {
		return &RepetitionExpr{
			Body: body,
		}, nil
	}
	return body, nil
}

// peekMeta returns the meta-token at the current position. It reports false at the end
// of the input; an ordinary symbol never stops a sequence, so it cannot be seen here.
func (b *exprBuilder) peekMeta() (symbol.MetaToken, bool) {
	if b.pos >= len(b.toks) {
		return symbol.MetaTokenNil, false
	}
	meta, ok := symbol.ToMetaToken(b.toks[b.pos])
	return meta, ok
}

func (b *exprBuilder) describePos() string {
	return fmt.Sprintf("%v at token %v", b.toks[b.pos], b.pos+1)
}

// compileSequence compiles an ad hoc token sequence into a single expression.
func compileSequence(symTab *symbol.SymbolTableReader, toks []string, path string) (Expression, *ValidationError) {
	branches, err := newExprBuilder(symTab, toks).build()
	if err != nil {
		return nil, err
	}
	var e Expression
	if len(branches) == 1 {
		e = branches[0].expr
	} else {
		alt := &AlternationExpr{}
		for _, br := range branches {
			alt.Branches = append(alt.Branches, br.expr)
		}
		e = alt
	}
	assignPaths(e, path)
	return e, nil
}
