package grammar

import (
	"fmt"

	"github.com/nihei9/ecfg/compressor"
	"github.com/nihei9/ecfg/grammar/symbol"
	"github.com/nihei9/ecfg/spec"
)

const (
	CompressionLevelMin = 0
	CompressionLevelMax = 2
)

const decisionNil = 0

// decisionTable is a choice point × lookahead table of option numbers. When the director
// sets of a choice point overlap, the first option claiming a terminal wins.
type decisionTable struct {
	rows     []string
	cols     []string
	entries  []int
	colCount int
}

func genDecisionTable(symTab *symbol.SymbolTableReader, ds *directorSet) *decisionTable {
	cols := append(symTab.TerminalSymbols(), symbol.SymbolEOF)
	col2Idx := map[symbol.Symbol]int{}
	colTexts := make([]string, len(cols))
	for i, sym := range cols {
		col2Idx[sym] = i
		colTexts[i], _ = symTab.ToText(sym)
	}

	tab := &decisionTable{
		cols:     colTexts,
		entries:  make([]int, len(ds.choicePoints)*len(cols)),
		colCount: len(cols),
	}
	for row, cp := range ds.choicePoints {
		tab.rows = append(tab.rows, cp.path)
		for i, opt := range cp.options {
			for _, sym := range opt.directors.symbols() {
				idx := row*tab.colCount + col2Idx[sym]
				if tab.entries[idx] != decisionNil {
					continue
				}
				tab.entries[idx] = i + 1
			}
		}
	}
	return tab
}

func (t *decisionTable) toSpec(compLv int) (*spec.DecisionTable, error) {
	tab := &spec.DecisionTable{
		Rows:             t.rows,
		Columns:          t.cols,
		CompressionLevel: compLv,
	}
	if len(t.entries) == 0 {
		return tab, nil
	}

	switch compLv {
	case 0:
		tab.UncompressedTable = t.entries
	case 1, 2:
		ueTab := compressor.NewUniqueEntriesTable()
		{
			orig, err := compressor.NewOriginalTable(t.entries, t.colCount)
			if err != nil {
				return nil, err
			}
			err = ueTab.Compress(orig)
			if err != nil {
				return nil, err
			}
		}
		tab.Table = &spec.UniqueEntriesTable{
			RowNums:          ueTab.RowNums,
			OriginalRowCount: ueTab.OriginalRowCount,
			OriginalColCount: ueTab.OriginalColCount,
		}
		if compLv == 1 {
			tab.Table.UncompressedUniqueEntries = ueTab.UniqueEntries
			break
		}

		rdTab := compressor.NewRowDisplacementTable(decisionNil)
		{
			orig, err := compressor.NewOriginalTable(ueTab.UniqueEntries, ueTab.OriginalColCount)
			if err != nil {
				return nil, err
			}
			err = rdTab.Compress(orig)
			if err != nil {
				return nil, err
			}
		}
		tab.Table.UniqueEntries = &spec.RowDisplacementTable{
			OriginalRowCount: rdTab.OriginalRowCount,
			OriginalColCount: rdTab.OriginalColCount,
			EmptyValue:       rdTab.EmptyValue,
			Entries:          rdTab.Entries,
			Bounds:           rdTab.Bounds,
			RowDisplacement:  rdTab.RowDisplacement,
		}
	default:
		return nil, fmt.Errorf("invalid compression level: %v", compLv)
	}
	return tab, nil
}

// LookupDecision returns the 1-based option number a decision table selects for a choice
// point and a lookahead, or 0.
func LookupDecision(tab *spec.DecisionTable, choicePoint, lookahead string) (int, error) {
	row := -1
	for i, r := range tab.Rows {
		if r == choicePoint {
			row = i
			break
		}
	}
	if row < 0 {
		return decisionNil, fmt.Errorf("unknown choice point: %v", choicePoint)
	}
	col := -1
	for i, c := range tab.Columns {
		if c == lookahead {
			col = i
			break
		}
	}
	if col < 0 {
		return decisionNil, fmt.Errorf("unknown terminal: %v", lookahead)
	}

	if tab.Table == nil {
		return tab.UncompressedTable[row*len(tab.Columns)+col], nil
	}
	uniqueRow := tab.Table.RowNums[row]
	if tab.Table.UniqueEntries == nil {
		return tab.Table.UncompressedUniqueEntries[uniqueRow*tab.Table.OriginalColCount+col], nil
	}
	rd := tab.Table.UniqueEntries
	rdTab := &compressor.RowDisplacementTable{
		OriginalRowCount: rd.OriginalRowCount,
		OriginalColCount: rd.OriginalColCount,
		EmptyValue:       rd.EmptyValue,
		Entries:          rd.Entries,
		Bounds:           rd.Bounds,
		RowDisplacement:  rd.RowDisplacement,
	}
	return rdTab.Lookup(uniqueRow, col)
}
