package grammar

import (
	"strings"

	"github.com/nihei9/ecfg/grammar/symbol"
)

type productionNum uint16

const productionNumMin = productionNum(1)

type production struct {
	num      productionNum
	lhs      symbol.Symbol
	rhs      []string
	branches []*branch
}

func newProduction(lhs symbol.Symbol, rhs []string, branches []*branch) *production {
	return &production{
		lhs:      lhs,
		rhs:      rhs,
		branches: branches,
	}
}

func (p *production) String() string {
	if len(p.rhs) == 0 {
		return "ε"
	}
	return strings.Join(p.rhs, " ")
}

// productionSet keeps productions in authoring order. Productions written the same way
// are kept as separate alternatives; they are told apart by their paths.
type productionSet struct {
	lhs2Prods map[symbol.Symbol][]*production
	prods     []*production
	num       productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*production{},
		num:       productionNumMin,
	}
}

func (ps *productionSet) append(prod *production) {
	prod.num = ps.num
	ps.num++

	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.prods = append(ps.prods, prod)
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*production, bool) {
	if lhs.IsNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAllProductions() []*production {
	return ps.prods
}
