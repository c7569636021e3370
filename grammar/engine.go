package grammar

import "github.com/nihei9/ecfg/grammar/symbol"

// DirectorEntry is the director set of one literal top-level alternative of a
// non-terminal. Path identifies the alternative; Label is the token sequence the
// alternative was written as and only serves display.
type DirectorEntry struct {
	Path      string   `json:"path"`
	Label     []string `json:"label"`
	Directors []string `json:"directors"`
}

type Option struct {
	Path      string   `json:"path"`
	Label     string   `json:"label"`
	Directors []string `json:"directors"`
}

// ChoicePoint is a decision made while parsing a non-terminal: which branch of an
// alternation to take, or whether to run a repetition body once more.
type ChoicePoint struct {
	NonTerminal string     `json:"non_terminal"`
	Path        string     `json:"path"`
	Kind        ChoiceKind `json:"kind"`
	Options     []*Option  `json:"options"`
}

// Engine answers analysis queries on one grammar. Each table is built on first use and
// kept for the lifetime of the engine. An Engine is not safe for concurrent use.
type Engine struct {
	grammar *Grammar

	nullable  *nullableSet
	first     *firstSet
	follow    *followSet
	director  *directorSet
	conflicts []*Conflict
	checked   bool
}

// NewEngine validates the grammar description and returns an engine for it. On failure
// the error is ValidationErrors.
func NewEngine(terminals, nonTerminals []string, prods []*ProductionSource, start string) (*Engine, error) {
	g, err := NewGrammar(terminals, nonTerminals, prods, start)
	if err != nil {
		return nil, err
	}
	return Analyze(g), nil
}

func Analyze(g *Grammar) *Engine {
	return &Engine{
		grammar: g,
	}
}

func (e *Engine) Grammar() *Grammar {
	return e.grammar
}

func (e *Engine) nullableSet() *nullableSet {
	if e.nullable == nil {
		e.nullable = genNullableSet(e.grammar)
	}
	return e.nullable
}

func (e *Engine) firstSet() *firstSet {
	if e.first == nil {
		e.first = genFirstSet(e.grammar, e.nullableSet())
	}
	return e.first
}

func (e *Engine) followSet() *followSet {
	if e.follow == nil {
		e.follow = genFollowSet(e.grammar, e.nullableSet(), e.firstSet())
	}
	return e.follow
}

func (e *Engine) directorSet() *directorSet {
	if e.director == nil {
		e.director = genDirectorSet(e.grammar, e.nullableSet(), e.firstSet(), e.followSet())
	}
	return e.director
}

// IsELL1 reports whether the director sets of the options of every choice point in the
// grammar are pairwise disjoint.
func (e *Engine) IsELL1() bool {
	return len(e.Conflicts()) == 0
}

// Conflicts returns every pair of sibling options whose director sets overlap.
func (e *Engine) Conflicts() []*Conflict {
	if !e.checked {
		e.conflicts = findConflicts(e.grammar.symbolTable, e.directorSet())
		e.checked = true
	}
	return e.conflicts
}

// CalculateNullable reports whether a sequence of symbols, which may contain meta-tokens,
// can derive the empty string. The empty sequence is nullable.
func (e *Engine) CalculateNullable(symbols []string) (bool, error) {
	expr, err := e.compileQuery(symbols)
	if err != nil {
		return false, err
	}
	return e.nullableSet().isNullable(expr), nil
}

// CalculateFirstSet returns the terminals that can begin a sequence of symbols. The
// result never contains the end marker.
func (e *Engine) CalculateFirstSet(symbols []string) ([]string, error) {
	expr, err := e.compileQuery(symbols)
	if err != nil {
		return nil, err
	}
	return e.firstSet().find(expr).texts(e.grammar.symbolTable), nil
}

// CalculateFollowSet returns the terminals that can immediately follow a non-terminal,
// with `<eof>` when the non-terminal can end a sentence.
func (e *Engine) CalculateFollowSet(nonTerminal string) ([]string, error) {
	sym, err := e.lookupNonTerminal(nonTerminal)
	if err != nil {
		return nil, err
	}
	flw, _ := e.followSet().findBySymbol(sym)
	return flw.texts(e.grammar.symbolTable), nil
}

// CalculateDirectorSet returns one entry per literal top-level alternative of a
// non-terminal, in authoring order.
func (e *Engine) CalculateDirectorSet(nonTerminal string) ([]*DirectorEntry, error) {
	if _, err := e.lookupNonTerminal(nonTerminal); err != nil {
		return nil, err
	}
	def, _ := e.grammar.findDefinition(nonTerminal)
	cp, _ := e.directorSet().findByExpression(def.expr)

	entries := make([]*DirectorEntry, 0, len(def.alternatives))
	for i, alt := range def.alternatives {
		entries = append(entries, &DirectorEntry{
			Path:      alt.path(),
			Label:     append([]string{}, alt.label...),
			Directors: cp.options[i].directors.texts(e.grammar.symbolTable),
		})
	}
	return entries, nil
}

// ChoicePoints returns the director sets of every choice point in the grammar.
func (e *Engine) ChoicePoints() []*ChoicePoint {
	symTab := e.grammar.symbolTable
	var cps []*ChoicePoint
	for _, cp := range e.directorSet().choicePoints {
		lhs, _ := symTab.ToText(cp.lhs)
		c := &ChoicePoint{
			NonTerminal: lhs,
			Path:        cp.path,
			Kind:        cp.kind,
		}
		for _, opt := range cp.options {
			c.Options = append(c.Options, &Option{
				Path:      opt.path,
				Label:     opt.label,
				Directors: opt.directors.texts(symTab),
			})
		}
		cps = append(cps, c)
	}
	return cps
}

func (e *Engine) lookupNonTerminal(text string) (symbol.Symbol, error) {
	sym, ok := e.grammar.symbolTable.ToSymbol(text)
	if !ok || !sym.IsNonTerminal() {
		return symbol.SymbolNil, &QueryError{
			Cause:  semErrUndefinedNonTerminal,
			Detail: text,
		}
	}
	return sym, nil
}

const queryPath = "query"

func (e *Engine) compileQuery(symbols []string) (Expression, error) {
	expr, vErr := compileSequence(e.grammar.symbolTable, symbols, queryPath)
	if vErr != nil {
		return nil, &QueryError{
			Cause:  vErr.Cause,
			Detail: vErr.Detail,
		}
	}
	return expr, nil
}
