package grammar

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// testGrammar is a grammar written one production per line as `LHS ::= tokens`.
type testGrammar struct {
	terminals    []string
	nonTerminals []string
	start        string
	productions  []string
}

func (g *testGrammar) sources(t *testing.T) []*ProductionSource {
	t.Helper()

	var prods []*ProductionSource
	for _, p := range g.productions {
		fields := strings.Fields(p)
		if len(fields) < 2 || fields[1] != "::=" {
			t.Fatalf("malformed test production: %v", p)
		}
		prods = append(prods, &ProductionSource{
			LHS: fields[0],
			RHS: fields[2:],
		})
	}
	return prods
}

func (g *testGrammar) newEngine(t *testing.T) *Engine {
	t.Helper()

	e, err := NewEngine(g.terminals, g.nonTerminals, g.sources(t), g.start)
	require.NoError(t, err)
	return e
}

func exprGrammar() *testGrammar {
	return &testGrammar{
		terminals:    []string{"+", "*", "i", "(", ")"},
		nonTerminals: []string{"E", "T", "F"},
		start:        "E",
		productions: []string{
			`E ::= T \{ + T \}`,
			`T ::= F \{ * F \}`,
			`F ::= ( E ) \| i`,
		},
	}
}

func ambiguousExprGrammar() *testGrammar {
	g := exprGrammar()
	g.productions[2] = `F ::= i \| i`
	return g
}

func setupTrace(t *testing.T) func() {
	return gotestingadapter.QuickConfig(t, "ecfg.grammar")
}
