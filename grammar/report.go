package grammar

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/nihei9/ecfg/grammar/symbol"
	"github.com/nihei9/ecfg/spec"
)

type reportConfig struct {
	decisionTable bool
	compLv        int
}

type ReportOption func(config *reportConfig)

// EnableDecisionTable adds the decision table to a report.
func EnableDecisionTable() ReportOption {
	return func(config *reportConfig) {
		config.decisionTable = true
	}
}

func DecisionTableCompressionLevel(lv int) ReportOption {
	return func(config *reportConfig) {
		config.compLv = lv
	}
}

// Fingerprint identifies the grammar description. Two engines built from the same
// description share it.
func (e *Engine) Fingerprint() (string, error) {
	return structhash.Hash(e.grammar.source, 1)
}

func (e *Engine) Report(opts ...ReportOption) (*spec.Report, error) {
	config := &reportConfig{
		compLv: CompressionLevelMax,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.compLv < CompressionLevelMin || config.compLv > CompressionLevelMax {
		return nil, fmt.Errorf("compression level must be %v to %v: %v", CompressionLevelMin, CompressionLevelMax, config.compLv)
	}

	fp, err := e.Fingerprint()
	if err != nil {
		return nil, err
	}

	symTab := e.grammar.symbolTable
	var nonTerms []*spec.NonTerminal
	var rErr error
	e.grammar.eachDefinition(func(def *definition) {
		if rErr != nil {
			return
		}
		name, _ := symTab.ToText(def.lhs)
		entries, err := e.CalculateDirectorSet(name)
		if err != nil {
			rErr = err
			return
		}
		flw, _ := e.followSet().findBySymbol(def.lhs)

		nt := &spec.NonTerminal{
			Name:       name,
			Definition: definitionString(def),
			Nullable:   e.nullableSet().isNullableSymbol(def.lhs),
			First:      e.firstSet().findBySymbol(def.lhs).texts(symTab),
			Follow:     flw.texts(symTab),
		}
		for _, entry := range entries {
			nt.Alternatives = append(nt.Alternatives, &spec.Alternative{
				Path:      entry.Path,
				Label:     entry.Label,
				Directors: entry.Directors,
			})
		}
		nonTerms = append(nonTerms, nt)
	})
	if rErr != nil {
		return nil, rErr
	}

	var cps []*spec.ChoicePoint
	for _, cp := range e.ChoicePoints() {
		c := &spec.ChoicePoint{
			NonTerminal: cp.NonTerminal,
			Path:        cp.Path,
			Kind:        string(cp.Kind),
		}
		for _, opt := range cp.Options {
			c.Options = append(c.Options, &spec.Option{
				Path:      opt.Path,
				Label:     opt.Label,
				Directors: opt.Directors,
			})
		}
		cps = append(cps, c)
	}

	var conflicts []*spec.Conflict
	for _, c := range e.Conflicts() {
		conflicts = append(conflicts, &spec.Conflict{
			NonTerminal:  c.NonTerminal,
			ChoicePoint:  c.ChoicePoint,
			Kind:         string(c.Kind),
			Alternatives: c.Alternatives,
			Labels:       c.Labels,
			Symbols:      c.Symbols,
		})
	}

	report := &spec.Report{
		Fingerprint:  fp,
		StartSymbol:  e.grammar.StartSymbol(),
		Terminals:    e.grammar.Terminals(),
		NonTerminals: nonTerms,
		ELL1:         len(conflicts) == 0,
		ChoicePoints: cps,
		Conflicts:    conflicts,
	}

	if config.decisionTable {
		tab, err := genDecisionTable(symTab, e.directorSet()).toSpec(config.compLv)
		if err != nil {
			return nil, err
		}
		report.DecisionTable = tab
	}

	tracer().Infof("report: %v non-terminal(s), %v choice point(s), ELL(1): %v", len(nonTerms), len(cps), report.ELL1)

	return report, nil
}

func definitionString(def *definition) string {
	var b strings.Builder
	for i, br := range def.expr.Branches {
		if i > 0 {
			fmt.Fprintf(&b, " %v ", symbol.MetaTokenAlternation)
		}
		fmt.Fprintf(&b, "%v", br)
	}
	return b.String()
}
