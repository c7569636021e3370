package grammar

import "github.com/nihei9/ecfg/grammar/symbol"

type ChoiceKind string

const (
	ChoiceKindAlternation = ChoiceKind("alternation")
	ChoiceKindRepetition  = ChoiceKind("repetition")
)

// option is one alternative of a choice point. A repetition has two options: the repeat
// option, which has the path of the body, and the exit option, which has the path of the
// repetition itself.
type option struct {
	path      string
	label     string
	directors *termSet
}

type choicePoint struct {
	lhs     symbol.Symbol
	path    string
	kind    ChoiceKind
	options []*option
}

const exitLabel = "exit"

type directorSet struct {
	choicePoints []*choicePoint
	expr2CP      map[Expression]*choicePoint
}

// findByExpression returns the choice point made at an alternation or a repetition.
func (ds *directorSet) findByExpression(e Expression) (*choicePoint, bool) {
	cp, ok := ds.expr2CP[e]
	return cp, ok
}

// genDirectorSet computes the director sets of every choice point of every definition,
// in declaration order and pre-order within a definition.
func genDirectorSet(g *Grammar, nullable *nullableSet, first *firstSet, follow *followSet) *directorSet {
	ds := &directorSet{
		expr2CP: map[Expression]*choicePoint{},
	}
	directors := func(e Expression, ctx *termSet) *termSet {
		d := first.find(e)
		if nullable.isNullable(e) {
			d.merge(ctx)
		}
		return d
	}
	g.eachDefinition(func(def *definition) {
		walkExpression(def.expr, func(e Expression) {
			ctx, ok := follow.findByExpression(e)
			if !ok {
				ctx = newTermSet()
			}

			var cp *choicePoint
			switch e := e.(type) {
			case *AlternationExpr:
				cp = &choicePoint{
					lhs:  def.lhs,
					path: e.Path(),
					kind: ChoiceKindAlternation,
				}
				for _, br := range e.Branches {
					cp.options = append(cp.options, &option{
						path:      br.Path(),
						label:     br.String(),
						directors: directors(br, ctx),
					})
				}
			case *RepetitionExpr:
				cp = &choicePoint{
					lhs:  def.lhs,
					path: e.Path(),
					kind: ChoiceKindRepetition,
					options: []*option{
						{
							path:      e.Body.Path(),
							label:     e.Body.String(),
							directors: directors(e.Body, ctx),
						},
						{
							path:      e.Path(),
							label:     exitLabel,
							directors: ctx.copy(),
						},
					},
				}
			default:
				return
			}
			ds.choicePoints = append(ds.choicePoints, cp)
			ds.expr2CP[e] = cp
		})
	})
	tracer().Debugf("director: %v choice point(s)", len(ds.choicePoints))
	return ds
}
