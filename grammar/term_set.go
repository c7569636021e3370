package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/nihei9/ecfg/grammar/symbol"
)

// termSet is a set of terminals, possibly including the EOF symbol. Iteration follows
// symbol numbers, i.e., declaration order with the EOF symbol last.
type termSet struct {
	set *treeset.Set
}

func symbolComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(symbol.Symbol)), int(b.(symbol.Symbol)))
}

func newTermSet(syms ...symbol.Symbol) *termSet {
	s := &termSet{
		set: treeset.NewWith(symbolComparator),
	}
	for _, sym := range syms {
		s.set.Add(sym)
	}
	return s
}

func (s *termSet) add(sym symbol.Symbol) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Add(sym)
	return true
}

func (s *termSet) merge(t *termSet) bool {
	if t == nil {
		return false
	}
	changed := false
	it := t.set.Iterator()
	for it.Next() {
		if s.add(it.Value().(symbol.Symbol)) {
			changed = true
		}
	}
	return changed
}

func (s *termSet) contains(sym symbol.Symbol) bool {
	return s.set.Contains(sym)
}

func (s *termSet) hasEOF() bool {
	return s.set.Contains(symbol.SymbolEOF)
}

func (s *termSet) size() int {
	return s.set.Size()
}

func (s *termSet) copy() *termSet {
	c := newTermSet()
	c.merge(s)
	return c
}

func (s *termSet) intersection(t *termSet) *termSet {
	r := newTermSet()
	it := s.set.Iterator()
	for it.Next() {
		sym := it.Value().(symbol.Symbol)
		if t.contains(sym) {
			r.add(sym)
		}
	}
	return r
}

func (s *termSet) symbols() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, s.set.Size())
	for _, v := range s.set.Values() {
		syms = append(syms, v.(symbol.Symbol))
	}
	return syms
}

func (s *termSet) texts(symTab *symbol.SymbolTableReader) []string {
	texts := make([]string, 0, s.set.Size())
	for _, sym := range s.symbols() {
		text, ok := symTab.ToText(sym)
		if !ok {
			continue
		}
		texts = append(texts, text)
	}
	return texts
}
