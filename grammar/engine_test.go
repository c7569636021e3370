package grammar

import (
	"errors"
	"testing"

	"github.com/nihei9/ecfg/grammar/symbol"
	"github.com/stretchr/testify/require"
)

func TestEngine_exprGrammar(t *testing.T) {
	teardown := setupTrace(t)
	defer teardown()

	e := exprGrammar().newEngine(t)

	require.True(t, e.IsELL1())
	require.Empty(t, e.Conflicts())

	for _, nt := range []string{"E", "T", "F"} {
		nullable, err := e.CalculateNullable([]string{nt})
		require.NoError(t, err)
		require.False(t, nullable, "non-terminal: %v", nt)

		first, err := e.CalculateFirstSet([]string{nt})
		require.NoError(t, err)
		require.Equal(t, []string{"i", "("}, first, "non-terminal: %v", nt)
	}

	follow := map[string][]string{
		"E": {")", symbol.EOFText},
		"T": {"+", ")", symbol.EOFText},
		"F": {"+", "*", ")", symbol.EOFText},
	}
	for nt, expected := range follow {
		actual, err := e.CalculateFollowSet(nt)
		require.NoError(t, err)
		require.Equal(t, expected, actual, "non-terminal: %v", nt)
	}

	directors, err := e.CalculateDirectorSet("F")
	require.NoError(t, err)
	require.Equal(t, []*DirectorEntry{
		{Path: "F/0", Label: []string{"(", "E", ")"}, Directors: []string{"("}},
		{Path: "F/1", Label: []string{"i"}, Directors: []string{"i"}},
	}, directors)

	directors, err = e.CalculateDirectorSet("E")
	require.NoError(t, err)
	require.Equal(t, []*DirectorEntry{
		{Path: "E/0", Label: []string{"T", `\{`, "+", "T", `\}`}, Directors: []string{"i", "("}},
	}, directors)

	cps := e.ChoicePoints()
	var paths []string
	for _, cp := range cps {
		paths = append(paths, cp.Path)
	}
	require.Equal(t, []string{"E", "E/0/1", "T", "T/0/1", "F"}, paths)
	require.Equal(t, &ChoicePoint{
		NonTerminal: "E",
		Path:        "E/0/1",
		Kind:        ChoiceKindRepetition,
		Options: []*Option{
			{Path: "E/0/1/0", Label: "+ T", Directors: []string{"+"}},
			{Path: "E/0/1", Label: exitLabel, Directors: []string{")", symbol.EOFText}},
		},
	}, cps[1])
}

func TestEngine_ambiguousExprGrammar(t *testing.T) {
	e := ambiguousExprGrammar().newEngine(t)

	require.False(t, e.IsELL1())

	directors, err := e.CalculateDirectorSet("F")
	require.NoError(t, err)
	require.Len(t, directors, 2)
	for _, d := range directors {
		require.Contains(t, d.Directors, "i")
	}

	require.Equal(t, []*Conflict{
		{
			NonTerminal:  "F",
			ChoicePoint:  "F",
			Kind:         ChoiceKindAlternation,
			Alternatives: [2]string{"F/0", "F/1"},
			Labels:       [2]string{"i", "i"},
			Symbols:      []string{"i"},
		},
	}, e.Conflicts())
}

func TestEngine_separateProductionsShareADefinition(t *testing.T) {
	g := exprGrammar()
	g.productions = []string{
		`E ::= T \{ + T \}`,
		`T ::= F \{ * F \}`,
		`F ::= i`,
		`F ::= i`,
	}
	e := g.newEngine(t)

	require.False(t, e.IsELL1())
	directors, err := e.CalculateDirectorSet("F")
	require.NoError(t, err)
	require.Equal(t, []*DirectorEntry{
		{Path: "F/0", Label: []string{"i"}, Directors: []string{"i"}},
		{Path: "F/1", Label: []string{"i"}, Directors: []string{"i"}},
	}, directors)
}

func TestEngine_choicePointsOfDistinctDefinitions(t *testing.T) {
	// A name spelled like a path inside another definition would make two choice points
	// indistinguishable.
	g := &testGrammar{
		terminals:    []string{"x", "p", "q", "r"},
		nonTerminals: []string{"A/0/0", "A"},
		start:        "A",
		productions: []string{
			`A/0/0 ::= p \| q \| r`,
			`A ::= \{ x \}`,
		},
	}
	_, err := NewEngine(g.terminals, g.nonTerminals, g.sources(t), g.start)
	var vErrs ValidationErrors
	require.True(t, errors.As(err, &vErrs), "want validation errors, got: %v", err)
	require.True(t, errors.Is(vErrs[0], semErrInvalidNTName), "want: %v, got: %v", semErrInvalidNTName, vErrs[0])

	g.nonTerminals = []string{"A00", "A"}
	g.productions = []string{
		`A00 ::= p \| q \| r`,
		`A ::= \{ x \} A00`,
	}
	e := g.newEngine(t)
	require.True(t, e.IsELL1())

	directors, err := e.CalculateDirectorSet("A00")
	require.NoError(t, err)
	require.Equal(t, []*DirectorEntry{
		{Path: "A00/0", Label: []string{"p"}, Directors: []string{"p"}},
		{Path: "A00/1", Label: []string{"q"}, Directors: []string{"q"}},
		{Path: "A00/2", Label: []string{"r"}, Directors: []string{"r"}},
	}, directors)

	directors, err = e.CalculateDirectorSet("A")
	require.NoError(t, err)
	require.Equal(t, []*DirectorEntry{
		{Path: "A/0", Label: []string{`\{`, "x", `\}`, "A00"}, Directors: []string{"x", "p", "q", "r"}},
	}, directors)

	cps := e.ChoicePoints()
	require.Len(t, cps, 3)
	require.Equal(t, "A/0/0", cps[2].Path)
	require.Equal(t, ChoiceKindRepetition, cps[2].Kind)
	require.Equal(t, `x`, cps[2].Options[0].Label)
}

func TestEngine_followSetHasEOFOnlyAtTheEndOfADerivation(t *testing.T) {
	g := &testGrammar{
		terminals:    []string{"a", "b"},
		nonTerminals: []string{"S", "A", "U"},
		start:        "S",
		productions: []string{
			`S ::= A b`,
			`A ::= a`,
			`U ::= b`,
		},
	}
	e := g.newEngine(t)

	tests := []struct {
		nonTerminal string
		follow      []string
	}{
		{
			nonTerminal: "S",
			follow:      []string{symbol.EOFText},
		},
		{
			nonTerminal: "A",
			follow:      []string{"b"},
		},
		{
			// U is unreachable from the start symbol.
			nonTerminal: "U",
			follow:      []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.nonTerminal, func(t *testing.T) {
			follow, err := e.CalculateFollowSet(tt.nonTerminal)
			require.NoError(t, err)
			require.Equal(t, tt.follow, follow)
		})
	}
}

func TestEngine_nestedChoicePoints(t *testing.T) {
	// The repetition body ends with an occurrence of a nullable non-terminal, so what
	// follows it is the FIRST of the body and what follows the repetition.
	g := &testGrammar{
		terminals:    []string{"a", "b", "c", "d"},
		nonTerminals: []string{"S", "B"},
		start:        "S",
		productions: []string{
			`S ::= \{ \( a B \| b \) \} c`,
			`B ::= d`,
			`B ::=`,
		},
	}
	e := g.newEngine(t)

	require.True(t, e.IsELL1())

	nullable, err := e.CalculateNullable([]string{"B"})
	require.NoError(t, err)
	require.True(t, nullable)

	follow, err := e.CalculateFollowSet("B")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, follow)

	follow, err = e.CalculateFollowSet("S")
	require.NoError(t, err)
	require.Equal(t, []string{symbol.EOFText}, follow)

	directors, err := e.CalculateDirectorSet("B")
	require.NoError(t, err)
	require.Equal(t, []*DirectorEntry{
		{Path: "B/0", Label: []string{"d"}, Directors: []string{"d"}},
		{Path: "B/1", Label: []string{}, Directors: []string{"a", "b", "c"}},
	}, directors)

	var rep *ChoicePoint
	for _, cp := range e.ChoicePoints() {
		if cp.Kind == ChoiceKindRepetition {
			rep = cp
		}
	}
	require.NotNil(t, rep)
	require.Equal(t, []string{"a", "b"}, rep.Options[0].Directors)
	require.Equal(t, []string{"c"}, rep.Options[1].Directors)
}

func TestEngine_nullableRepetitionBody(t *testing.T) {
	g := &testGrammar{
		terminals:    []string{"a", "c"},
		nonTerminals: []string{"S", "A"},
		start:        "S",
		productions: []string{
			`S ::= \{ A \} c`,
			`A ::= a \|`,
		},
	}
	_, err := NewEngine(g.terminals, g.nonTerminals, g.sources(t), g.start)
	require.Error(t, err, "an empty top-level branch written with a separator is rejected")

	g.productions = []string{
		`S ::= \{ A \} c`,
		`A ::= a`,
		`A ::=`,
	}
	e := g.newEngine(t)

	require.False(t, e.IsELL1())
	conflicts := e.Conflicts()
	require.Len(t, conflicts, 2)

	// Running the body once more and leaving the repetition both accept `c`.
	require.Equal(t, ChoiceKindRepetition, conflicts[0].Kind)
	require.Equal(t, "S/0/0", conflicts[0].ChoicePoint)
	require.Equal(t, [2]string{"S/0/0/0", "S/0/0"}, conflicts[0].Alternatives)
	require.Equal(t, []string{"c"}, conflicts[0].Symbols)

	// The empty alternative of A is selected by FOLLOW(A), which contains FIRST(A).
	require.Equal(t, "A", conflicts[1].ChoicePoint)
	require.Equal(t, []string{"a"}, conflicts[1].Symbols)
}

func TestEngine_adHocQueries(t *testing.T) {
	e := exprGrammar().newEngine(t)

	tests := []struct {
		caption  string
		symbols  []string
		nullable bool
		first    []string
	}{
		{
			caption:  "the empty sequence",
			symbols:  []string{},
			nullable: true,
			first:    []string{},
		},
		{
			caption:  "a repetition",
			symbols:  []string{`\{`, "E", `\}`},
			nullable: true,
			first:    []string{"i", "("},
		},
		{
			caption:  "a repetition followed by a terminal",
			symbols:  []string{`\{`, "+", `\}`, ")"},
			nullable: false,
			first:    []string{"+", ")"},
		},
		{
			caption:  "alternatives",
			symbols:  []string{"*", `\|`, `\{`, "T", `\}`},
			nullable: true,
			first:    []string{"*", "i", "("},
		},
		{
			caption:  "a terminal",
			symbols:  []string{")"},
			nullable: false,
			first:    []string{")"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			nullable, err := e.CalculateNullable(tt.symbols)
			require.NoError(t, err)
			require.Equal(t, tt.nullable, nullable)

			first, err := e.CalculateFirstSet(tt.symbols)
			require.NoError(t, err)
			require.Equal(t, tt.first, first)
		})
	}
}

func TestEngine_queryErrors(t *testing.T) {
	e := exprGrammar().newEngine(t)

	tests := []struct {
		caption string
		query   func() error
		cause   *SemanticError
	}{
		{
			caption: "FOLLOW of an undeclared non-terminal",
			query: func() error {
				_, err := e.CalculateFollowSet("X")
				return err
			},
			cause: semErrUndefinedNonTerminal,
		},
		{
			caption: "FOLLOW of a terminal",
			query: func() error {
				_, err := e.CalculateFollowSet("+")
				return err
			},
			cause: semErrUndefinedNonTerminal,
		},
		{
			caption: "director sets of an undeclared non-terminal",
			query: func() error {
				_, err := e.CalculateDirectorSet("X")
				return err
			},
			cause: semErrUndefinedNonTerminal,
		},
		{
			caption: "nullability of an undefined symbol",
			query: func() error {
				_, err := e.CalculateNullable([]string{"E", "x"})
				return err
			},
			cause: semErrUndefinedSym,
		},
		{
			caption: "FIRST of an unbalanced sequence",
			query: func() error {
				_, err := e.CalculateFirstSet([]string{`\(`, "E"})
				return err
			},
			cause: semErrUnclosedBracket,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			err := tt.query()
			var qErr *QueryError
			require.True(t, errors.As(err, &qErr), "want a query error, got: %v", err)
			require.True(t, errors.Is(err, tt.cause), "want: %v, got: %v", tt.cause, err)
		})
	}

	// The engine stays usable after failed queries.
	require.True(t, e.IsELL1())
	follow, err := e.CalculateFollowSet("E")
	require.NoError(t, err)
	require.Equal(t, []string{")", symbol.EOFText}, follow)
}

func TestEngine_isDeterministic(t *testing.T) {
	e1 := exprGrammar().newEngine(t)
	e2 := exprGrammar().newEngine(t)

	r1, err := e1.Report(EnableDecisionTable())
	require.NoError(t, err)
	r2, err := e2.Report(EnableDecisionTable())
	require.NoError(t, err)
	require.Equal(t, r1, r2)

	e3 := ambiguousExprGrammar().newEngine(t)
	fp3, err := e3.Fingerprint()
	require.NoError(t, err)
	require.NotEqual(t, r1.Fingerprint, fp3)
}

func TestAnalyses_areIdempotent(t *testing.T) {
	e := exprGrammar().newEngine(t)
	g := e.Grammar()
	symTab := g.symbolTable

	nullable := genNullableSet(g)
	first := genFirstSet(g, nullable)
	follow := genFollowSet(g, nullable, first)

	nullable2 := genNullableSet(g)
	first2 := genFirstSet(g, nullable2)
	follow2 := genFollowSet(g, nullable2, first2)

	require.Equal(t, nullable.set, nullable2.set)
	for _, sym := range symTab.NonTerminalSymbols() {
		require.Equal(t, first.findBySymbol(sym).texts(symTab), first2.findBySymbol(sym).texts(symTab))
		f1, ok := follow.findBySymbol(sym)
		require.True(t, ok)
		f2, ok := follow2.findBySymbol(sym)
		require.True(t, ok)
		require.Equal(t, f1.texts(symTab), f2.texts(symTab))
	}

	// Propagating once more over converged tables changes nothing.
	g.eachDefinition(func(def *definition) {
		require.False(t, follow.propagate(def.expr, follow.set[def.lhs].copy(), false))
	})
}
