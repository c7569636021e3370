package grammar

import (
	"errors"
	"fmt"
	"strings"

	verr "github.com/nihei9/ecfg/error"
	"github.com/nihei9/ecfg/grammar/symbol"
	"github.com/nihei9/ecfg/spec"
)

// ProductionSource is a production as a client writes it: a non-terminal and a flat
// token sequence that may contain meta-tokens.
type ProductionSource struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

// Source is the whole input a grammar is built from.
type Source struct {
	Terminals    []string            `json:"terminals"`
	NonTerminals []string            `json:"non_terminals"`
	Productions  []*ProductionSource `json:"productions"`
	StartSymbol  string              `json:"start_symbol"`
}

// alternative is a literal top-level alternative of a non-terminal's definition.
type alternative struct {
	label []string
	expr  *SequenceExpr
}

func (a *alternative) path() string {
	return a.expr.Path()
}

// definition joins the top-level branches of all productions of one non-terminal into a
// single alternation, in authoring order.
type definition struct {
	lhs          symbol.Symbol
	expr         *AlternationExpr
	alternatives []*alternative
}

// Grammar is an extended context-free grammar. It never changes once constructed.
type Grammar struct {
	source        *Source
	symbolTable   *symbol.SymbolTableReader
	productionSet *productionSet
	startSymbol   symbol.Symbol
	definitions   map[symbol.Symbol]*definition
}

// NewGrammar validates its input and builds a grammar. All problems found are returned
// together as ValidationErrors.
func NewGrammar(terminals, nonTerminals []string, prods []*ProductionSource, start string) (*Grammar, error) {
	var errs ValidationErrors

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	for _, text := range terminals {
		_, err := w.RegisterTerminalSymbol(text)
		if err != nil {
			errs = append(errs, symbolError(text, err))
		}
	}
	for _, text := range nonTerminals {
		if strings.Contains(text, pathSeparator) {
			errs = append(errs, &ValidationError{
				Cause:  semErrInvalidNTName,
				Detail: text,
			})
			continue
		}
		_, err := w.RegisterNonTerminalSymbol(text)
		if err != nil {
			errs = append(errs, symbolError(text, err))
		}
	}
	r := symTab.Reader()

	startSym, ok := r.ToSymbol(start)
	if !ok || !startSym.IsNonTerminal() {
		errs = append(errs, &ValidationError{
			Cause:  semErrUndefinedStart,
			Detail: start,
		})
	}

	if len(prods) == 0 {
		errs = append(errs, &ValidationError{
			Cause: semErrNoProduction,
		})
	}

	ps := newProductionSet()
	for i, src := range prods {
		lhs, ok := r.ToSymbol(src.LHS)
		if !ok {
			errs = append(errs, &ValidationError{
				Cause:      semErrUndefinedSym,
				Detail:     src.LHS,
				Production: i + 1,
			})
			continue
		}
		if !lhs.IsNonTerminal() {
			errs = append(errs, &ValidationError{
				Cause:      semErrLHSNotNonTerminal,
				Detail:     src.LHS,
				Production: i + 1,
			})
			continue
		}

		rhs := append([]string{}, src.RHS...)
		branches, vErr := newExprBuilder(r, rhs).build()
		if vErr != nil {
			vErr.Production = i + 1
			errs = append(errs, vErr)
			continue
		}

		ps.append(newProduction(lhs, rhs, branches))
	}

	if len(errs) == 0 {
		for _, sym := range r.NonTerminalSymbols() {
			if _, ok := ps.findByLHS(sym); !ok {
				text, _ := r.ToText(sym)
				errs = append(errs, &ValidationError{
					Cause:  semErrNoProductionForNT,
					Detail: text,
				})
			}
		}
	}

	if len(errs) > 0 {
		tracer().Errorf("cannot construct a grammar; %v error(s)", len(errs))
		return nil, errs
	}

	g := &Grammar{
		source: &Source{
			Terminals:    append([]string{}, terminals...),
			NonTerminals: append([]string{}, nonTerminals...),
			Productions:  copyProductionSources(prods),
			StartSymbol:  start,
		},
		symbolTable:   r,
		productionSet: ps,
		startSymbol:   startSym,
		definitions:   map[symbol.Symbol]*definition{},
	}
	for _, sym := range r.NonTerminalSymbols() {
		g.definitions[sym] = genDefinition(r, ps, sym)
	}

	tracer().Debugf("grammar: %v terminals, %v non-terminals, %v productions, start: %v",
		len(r.TerminalSymbols()), len(r.NonTerminalSymbols()), len(ps.getAllProductions()), start)
	for _, prod := range ps.getAllProductions() {
		lhs, _ := r.ToText(prod.lhs)
		tracer().Debugf("%4v %v ::= %v", prod.num, lhs, prod)
	}

	return g, nil
}

func genDefinition(symTab *symbol.SymbolTableReader, ps *productionSet, lhs symbol.Symbol) *definition {
	def := &definition{
		lhs:  lhs,
		expr: &AlternationExpr{},
	}
	prods, _ := ps.findByLHS(lhs)
	for _, prod := range prods {
		for _, br := range prod.branches {
			def.expr.Branches = append(def.expr.Branches, br.expr)
			def.alternatives = append(def.alternatives, &alternative{
				label: br.tokens,
				expr:  br.expr,
			})
		}
	}
	text, _ := symTab.ToText(lhs)
	assignPaths(def.expr, text)
	return def
}

func symbolError(text string, err error) *ValidationError {
	var kindErr *symbol.KindConflictError
	if errors.As(err, &kindErr) {
		return &ValidationError{
			Cause:  semErrDuplicateName,
			Detail: text,
		}
	}
	var resErr *symbol.ReservedTextError
	if errors.As(err, &resErr) {
		return &ValidationError{
			Cause:  semErrReservedName,
			Detail: fmt.Sprintf("%q", text),
		}
	}
	return &ValidationError{
		Cause:  semErrReservedName,
		Detail: err.Error(),
	}
}

func copyProductionSources(prods []*ProductionSource) []*ProductionSource {
	c := make([]*ProductionSource, 0, len(prods))
	for _, p := range prods {
		c = append(c, &ProductionSource{
			LHS: p.LHS,
			RHS: append([]string{}, p.RHS...),
		})
	}
	return c
}

func (g *Grammar) Source() *Source {
	return g.source
}

func (g *Grammar) StartSymbol() string {
	text, _ := g.symbolTable.ToText(g.startSymbol)
	return text
}

func (g *Grammar) Terminals() []string {
	return append([]string{}, g.symbolTable.TerminalTexts()...)
}

func (g *Grammar) NonTerminals() []string {
	return append([]string{}, g.symbolTable.NonTerminalTexts()...)
}

// Definition returns the expression tree defining a non-terminal. Its root is always an
// alternation whose branches are the literal top-level alternatives.
func (g *Grammar) Definition(nonTerminal string) (*AlternationExpr, bool) {
	def, ok := g.findDefinition(nonTerminal)
	if !ok {
		return nil, false
	}
	return def.expr, true
}

func (g *Grammar) findDefinition(nonTerminal string) (*definition, bool) {
	sym, ok := g.symbolTable.ToSymbol(nonTerminal)
	if !ok || !sym.IsNonTerminal() {
		return nil, false
	}
	def, ok := g.definitions[sym]
	return def, ok
}

// eachDefinition visits definitions in declaration order.
func (g *Grammar) eachDefinition(f func(def *definition)) {
	for _, sym := range g.symbolTable.NonTerminalSymbols() {
		f(g.definitions[sym])
	}
}

const startDirective = "start"

// GrammarBuilder builds a grammar from a parsed description file. Non-terminals are the
// LHS names and terminals are all other symbols appearing in right-hand sides, both in
// order of first appearance.
type GrammarBuilder struct {
	AST *spec.RootNode

	// StartSymbol overrides the #start directive when it is not empty.
	StartSymbol string

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	start := b.startSymbol()
	if len(b.errs) > 0 {
		return nil, b.errs
	}
	if b.StartSymbol != "" {
		start = b.StartSymbol
	}

	var nonTerms []string
	isNonTerm := map[string]struct{}{}
	for _, prod := range b.AST.Productions {
		if _, ok := isNonTerm[prod.LHS]; ok {
			continue
		}
		isNonTerm[prod.LHS] = struct{}{}
		nonTerms = append(nonTerms, prod.LHS)
	}

	var terms []string
	isTerm := map[string]struct{}{}
	var prods []*ProductionSource
	for _, prod := range b.AST.Productions {
		for _, tok := range prod.RHS {
			if _, ok := symbol.ToMetaToken(tok); ok {
				continue
			}
			if _, ok := isNonTerm[tok]; ok {
				continue
			}
			if _, ok := isTerm[tok]; ok {
				continue
			}
			isTerm[tok] = struct{}{}
			terms = append(terms, tok)
		}
		prods = append(prods, &ProductionSource{
			LHS: prod.LHS,
			RHS: prod.RHS,
		})
	}

	if start == "" && len(nonTerms) > 0 {
		start = nonTerms[0]
	}

	g, err := NewGrammar(terms, nonTerms, prods, start)
	if err != nil {
		var vErrs ValidationErrors
		if !errors.As(err, &vErrs) {
			return nil, err
		}
		for _, vErr := range vErrs {
			specErr := &verr.SpecError{
				Cause:  vErr.Cause,
				Detail: vErr.Detail,
			}
			if vErr.Production > 0 && vErr.Production <= len(b.AST.Productions) {
				pos := b.AST.Productions[vErr.Production-1].Pos
				specErr.Row = pos.Row
				specErr.Col = pos.Col
			}
			b.errs = append(b.errs, specErr)
		}
		return nil, b.errs
	}
	return g, nil
}

func (b *GrammarBuilder) startSymbol() string {
	var start string
	for _, dir := range b.AST.Directives {
		if dir.Name != startDirective {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDirInvalidName,
				Detail: dir.Name,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		if len(dir.Parameters) != 1 {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDirInvalidParam,
				Detail: "'start' takes just one symbol",
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		if start != "" {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateDir,
				Detail: dir.Name,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		start = dir.Parameters[0]
	}
	return start
}
