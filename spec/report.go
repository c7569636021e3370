package spec

// Report is the result of analyzing a grammar.
type Report struct {
	Fingerprint   string         `json:"fingerprint"`
	StartSymbol   string         `json:"start_symbol"`
	Terminals     []string       `json:"terminals"`
	NonTerminals  []*NonTerminal `json:"non_terminals"`
	ELL1          bool           `json:"ell1"`
	ChoicePoints  []*ChoicePoint `json:"choice_points"`
	Conflicts     []*Conflict    `json:"conflicts"`
	DecisionTable *DecisionTable `json:"decision_table,omitempty"`
}

type NonTerminal struct {
	Name         string         `json:"name"`
	Definition   string         `json:"definition"`
	Nullable     bool           `json:"nullable"`
	First        []string       `json:"first"`
	Follow       []string       `json:"follow"`
	Alternatives []*Alternative `json:"alternatives"`
}

type Alternative struct {
	Path      string   `json:"path"`
	Label     []string `json:"label"`
	Directors []string `json:"directors"`
}

type ChoicePoint struct {
	NonTerminal string    `json:"non_terminal"`
	Path        string    `json:"path"`
	Kind        string    `json:"kind"`
	Options     []*Option `json:"options"`
}

type Option struct {
	Path      string   `json:"path"`
	Label     string   `json:"label"`
	Directors []string `json:"directors"`
}

type Conflict struct {
	NonTerminal  string    `json:"non_terminal"`
	ChoicePoint  string    `json:"choice_point"`
	Kind         string    `json:"kind"`
	Alternatives [2]string `json:"alternatives"`
	Labels       [2]string `json:"labels"`
	Symbols      []string  `json:"symbols"`
}

type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

type UniqueEntriesTable struct {
	UniqueEntries             *RowDisplacementTable `json:"unique_entries,omitempty"`
	UncompressedUniqueEntries []int                 `json:"uncompressed_unique_entries,omitempty"`
	RowNums                   []int                 `json:"row_nums"`
	OriginalRowCount          int                   `json:"original_row_count"`
	OriginalColCount          int                   `json:"original_col_count"`
}

// DecisionTable maps a pair of a choice point (row) and a lookahead terminal (column) to
// the 1-based index of the option to take, or 0 when no option applies. Rows follow
// ChoicePoints and columns follow Terminals with `<eof>` appended.
type DecisionTable struct {
	Rows              []string            `json:"rows"`
	Columns           []string            `json:"columns"`
	CompressionLevel  int                 `json:"compression_level"`
	Table             *UniqueEntriesTable `json:"table,omitempty"`
	UncompressedTable []int               `json:"uncompressed_table,omitempty"`
}
