package grammar

import "github.com/nihei9/ecfg/grammar/symbol"

type followSet struct {
	set      map[symbol.Symbol]*termSet
	nullable *nullableSet
	first    *firstSet

	// context holds, for every node of every definition, the terminals that can follow
	// the node. It is filled once the per-non-terminal entries have converged.
	context map[Expression]*termSet
}

func newFollowSet(g *Grammar, nullable *nullableSet, first *firstSet) *followSet {
	flw := &followSet{
		set:      map[symbol.Symbol]*termSet{},
		nullable: nullable,
		first:    first,
		context:  map[Expression]*termSet{},
	}
	g.eachDefinition(func(def *definition) {
		flw.set[def.lhs] = newTermSet()
	})
	flw.set[g.startSymbol].add(symbol.SymbolEOF)
	return flw
}

func (flw *followSet) findBySymbol(sym symbol.Symbol) (*termSet, bool) {
	e, ok := flw.set[sym]
	return e, ok
}

func (flw *followSet) findByExpression(e Expression) (*termSet, bool) {
	ctx, ok := flw.context[e]
	return ctx, ok
}

// propagate pushes follow, the set of terminals that can follow e, down into e's
// occurrences of non-terminals. It reports whether any entry grew.
//
// Inside a sequence, a member is followed by the FIRST of its right neighbour, and also
// by whatever follows the neighbour when the neighbour is nullable. A repetition body is
// followed by its own FIRST, since the repetition may loop, and by whatever follows the
// repetition.
func (flw *followSet) propagate(e Expression, follow *termSet, record bool) bool {
	if record {
		flw.context[e] = follow
	}

	changed := false
	switch e := e.(type) {
	case *SymbolExpr:
		if e.Symbol.IsNonTerminal() {
			changed = flw.set[e.Symbol].merge(follow)
		}
	case *SequenceExpr:
		cur := follow
		for i := len(e.Children) - 1; i >= 0; i-- {
			c := e.Children[i]
			if flw.propagate(c, cur, record) {
				changed = true
			}
			next := flw.first.find(c)
			if flw.nullable.isNullable(c) {
				next.merge(cur)
			}
			cur = next
		}
	case *AlternationExpr:
		for _, br := range e.Branches {
			if flw.propagate(br, follow, record) {
				changed = true
			}
		}
	case *RepetitionExpr:
		bodyFollow := flw.first.find(e.Body)
		bodyFollow.merge(follow)
		changed = flw.propagate(e.Body, bodyFollow, record)
	}
	return changed
}

func genFollowSet(g *Grammar, nullable *nullableSet, first *firstSet) *followSet {
	flw := newFollowSet(g, nullable, first)
	for round := 1; ; round++ {
		more := false
		g.eachDefinition(func(def *definition) {
			if flw.propagate(def.expr, flw.set[def.lhs].copy(), false) {
				more = true
			}
		})
		if !more {
			tracer().Debugf("follow: converged after %v round(s)", round)
			break
		}
	}

	g.eachDefinition(func(def *definition) {
		flw.propagate(def.expr, flw.set[def.lhs].copy(), true)
	})

	return flw
}
