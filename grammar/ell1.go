package grammar

import "github.com/nihei9/ecfg/grammar/symbol"

// Conflict is a pair of options of one choice point whose director sets overlap.
type Conflict struct {
	NonTerminal  string     `json:"non_terminal"`
	ChoicePoint  string     `json:"choice_point"`
	Kind         ChoiceKind `json:"kind"`
	Alternatives [2]string  `json:"alternatives"`
	Labels       [2]string  `json:"labels"`
	Symbols      []string   `json:"symbols"`
}

// findConflicts checks every pair of sibling options of every choice point.
func findConflicts(symTab *symbol.SymbolTableReader, ds *directorSet) []*Conflict {
	var conflicts []*Conflict
	for _, cp := range ds.choicePoints {
		lhs, _ := symTab.ToText(cp.lhs)
		for i, a := range cp.options {
			for _, b := range cp.options[i+1:] {
				overlap := a.directors.intersection(b.directors)
				if overlap.size() == 0 {
					continue
				}
				conflicts = append(conflicts, &Conflict{
					NonTerminal:  lhs,
					ChoicePoint:  cp.path,
					Kind:         cp.kind,
					Alternatives: [2]string{a.path, b.path},
					Labels:       [2]string{a.label, b.label},
					Symbols:      overlap.texts(symTab),
				})
			}
		}
	}
	if len(conflicts) > 0 {
		tracer().Infof("ELL(1) check: %v conflict(s)", len(conflicts))
	}
	return conflicts
}
