package compressor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// OriginalTable is a row-major table to be compressed.
type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *OriginalTable) row(r int) []int {
	return t.entries[r*t.colCount : (r+1)*t.colCount]
}

type Compressor interface {
	Compress(orig *OriginalTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)
}

var (
	_ Compressor = &UniqueEntriesTable{}
	_ Compressor = &RowDisplacementTable{}
)

// UniqueEntriesTable keeps each distinct row once. Decision tables have many identical
// rows because non-terminals sharing a FIRST set produce the same choices.
type UniqueEntriesTable struct {
	UniqueEntries    []int
	RowNums          []int
	OriginalRowCount int
	OriginalColCount int
}

func NewUniqueEntriesTable() *UniqueEntriesTable {
	return &UniqueEntriesTable{}
}

func (tab *UniqueEntriesTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.UniqueEntries[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueEntriesTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func rowKey(row []int) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

func (tab *UniqueEntriesTable) Compress(orig *OriginalTable) error {
	var uniqueEntries []int
	rowNums := make([]int, orig.rowCount)
	key2RowNum := map[string]int{}
	for r := 0; r < orig.rowCount; r++ {
		row := orig.row(r)
		key := rowKey(row)
		num, ok := key2RowNum[key]
		if !ok {
			num = len(key2RowNum)
			key2RowNum[key] = num
			uniqueEntries = append(uniqueEntries, row...)
		}
		rowNums[r] = num
	}

	tab.UniqueEntries = uniqueEntries
	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount

	return nil
}

// ForbiddenValue marks a slot of Bounds that belongs to no row.
const ForbiddenValue = -1

// RowDisplacementTable overlays sparse rows on one array. Bounds records which row owns
// each slot, so a lookup of an empty cell never reads a value of another row.
type RowDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	RowDisplacement  []int
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

type sparseRow struct {
	num  int
	cols []int
}

func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	rows := make([]*sparseRow, 0, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		sr := &sparseRow{
			num: r,
		}
		for c, v := range orig.row(r) {
			if v != tab.EmptyValue {
				sr.cols = append(sr.cols, c)
			}
		}
		rows = append(rows, sr)
	}
	// Placing dense rows first leaves the gaps for sparse ones.
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].cols) > len(rows[j].cols)
	})

	entries := []int{}
	bounds := []int{}
	grow := func(size int) {
		for len(entries) < size {
			entries = append(entries, tab.EmptyValue)
			bounds = append(bounds, ForbiddenValue)
		}
	}
	fits := func(d int, sr *sparseRow) bool {
		for _, c := range sr.cols {
			if d+c < len(bounds) && bounds[d+c] != ForbiddenValue {
				return false
			}
		}
		return true
	}

	grow(orig.colCount)
	rowDisplacement := make([]int, orig.rowCount)
	next := 0
	for _, sr := range rows {
		if len(sr.cols) == 0 {
			continue
		}
		d := next
		for !fits(d, sr) {
			d++
		}
		grow(d + orig.colCount)
		for _, c := range sr.cols {
			entries[d+c] = orig.row(sr.num)[c]
			bounds[d+c] = sr.num
		}
		rowDisplacement[sr.num] = d
		next = d + 1
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries
	tab.Bounds = bounds
	tab.RowDisplacement = rowDisplacement

	return nil
}
