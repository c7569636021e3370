package grammar

import "github.com/nihei9/ecfg/grammar/symbol"

type nullableSet struct {
	set map[symbol.Symbol]bool
}

func newNullableSet(g *Grammar) *nullableSet {
	ns := &nullableSet{
		set: map[symbol.Symbol]bool{},
	}
	g.eachDefinition(func(def *definition) {
		ns.set[def.lhs] = false
	})
	return ns
}

func (ns *nullableSet) isNullableSymbol(sym symbol.Symbol) bool {
	if !sym.IsNonTerminal() {
		return false
	}
	return ns.set[sym]
}

// isNullable reports whether e can derive the empty string.
func (ns *nullableSet) isNullable(e Expression) bool {
	switch e := e.(type) {
	case *SymbolExpr:
		return ns.isNullableSymbol(e.Symbol)
	case *SequenceExpr:
		for _, c := range e.Children {
			if !ns.isNullable(c) {
				return false
			}
		}
		return true
	case *AlternationExpr:
		for _, br := range e.Branches {
			if ns.isNullable(br) {
				return true
			}
		}
		return false
	case *RepetitionExpr:
		return true
	}
	return false
}

// genNullableSet iterates until no entry changes. An entry only ever turns from false to
// true, so the loop takes at most as many rounds as there are non-terminals plus one.
func genNullableSet(g *Grammar) *nullableSet {
	ns := newNullableSet(g)
	for round := 1; ; round++ {
		more := false
		g.eachDefinition(func(def *definition) {
			if ns.set[def.lhs] {
				return
			}
			if ns.isNullable(def.expr) {
				ns.set[def.lhs] = true
				more = true
			}
		})
		if !more {
			tracer().Debugf("nullable: converged after %v round(s)", round)
			break
		}
	}
	return ns
}
