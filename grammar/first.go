package grammar

import "github.com/nihei9/ecfg/grammar/symbol"

type firstSet struct {
	set      map[symbol.Symbol]*termSet
	nullable *nullableSet
}

func newFirstSet(g *Grammar, nullable *nullableSet) *firstSet {
	fst := &firstSet{
		set:      map[symbol.Symbol]*termSet{},
		nullable: nullable,
	}
	g.eachDefinition(func(def *definition) {
		fst.set[def.lhs] = newTermSet()
	})
	return fst
}

func (fst *firstSet) findBySymbol(sym symbol.Symbol) *termSet {
	if sym.IsTerminal() {
		return newTermSet(sym)
	}
	e, ok := fst.set[sym]
	if !ok {
		return newTermSet()
	}
	return e
}

// find returns a fresh set of the terminals that can begin e. The set never contains
// the EOF symbol.
func (fst *firstSet) find(e Expression) *termSet {
	acc := newTermSet()
	fst.accumulate(acc, e)
	return acc
}

func (fst *firstSet) accumulate(acc *termSet, e Expression) {
	switch e := e.(type) {
	case *SymbolExpr:
		acc.merge(fst.findBySymbol(e.Symbol))
	case *SequenceExpr:
		for _, c := range e.Children {
			fst.accumulate(acc, c)
			if !fst.nullable.isNullable(c) {
				return
			}
		}
	case *AlternationExpr:
		for _, br := range e.Branches {
			fst.accumulate(acc, br)
		}
	case *RepetitionExpr:
		fst.accumulate(acc, e.Body)
	}
}

func genFirstSet(g *Grammar, nullable *nullableSet) *firstSet {
	fst := newFirstSet(g, nullable)
	for round := 1; ; round++ {
		more := false
		g.eachDefinition(func(def *definition) {
			if fst.set[def.lhs].merge(fst.find(def.expr)) {
				more = true
			}
		})
		if !more {
			tracer().Debugf("first: converged after %v round(s)", round)
			break
		}
	}
	return fst
}
