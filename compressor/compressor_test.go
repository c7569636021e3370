package compressor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressor_Compress(t *testing.T) {
	x := 0 // an empty value

	allCompressors := func() []Compressor {
		return []Compressor{
			NewUniqueEntriesTable(),
			NewRowDisplacementTable(x),
		}
	}

	tests := []struct {
		caption     string
		original    []int
		rowCount    int
		colCount    int
		compressors []Compressor
	}{
		{
			caption: "a dense table",
			original: []int{
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
			},
			rowCount:    3,
			colCount:    5,
			compressors: allCompressors(),
		},
		{
			caption: "an empty table",
			original: []int{
				x, x, x, x, x,
				x, x, x, x, x,
				x, x, x, x, x,
			},
			rowCount:    3,
			colCount:    5,
			compressors: allCompressors(),
		},
		{
			caption: "a table with an empty row",
			original: []int{
				1, 1, 1, 1, 1,
				x, x, x, x, x,
				1, 1, 1, 1, 1,
			},
			rowCount:    3,
			colCount:    5,
			compressors: allCompressors(),
		},
		{
			// Rows are choice points and columns are `+ * i ( ) <eof>`.
			caption: "a decision table",
			original: []int{
				x, x, 1, 1, x, x,
				1, x, x, x, 2, 2,
				x, x, 1, 1, x, x,
				2, 1, x, x, 2, 2,
				x, x, 2, 1, x, x,
			},
			rowCount:    5,
			colCount:    6,
			compressors: allCompressors(),
		},
		{
			caption: "a single column",
			original: []int{
				1,
				x,
				2,
			},
			rowCount:    3,
			colCount:    1,
			compressors: allCompressors(),
		},
	}
	for _, tt := range tests {
		for _, comp := range tt.compressors {
			t.Run(fmt.Sprintf("%v (%T)", tt.caption, comp), func(t *testing.T) {
				dup := append([]int{}, tt.original...)

				orig, err := NewOriginalTable(tt.original, tt.colCount)
				require.NoError(t, err)
				require.NoError(t, comp.Compress(orig))

				rowCount, colCount := comp.OriginalTableSize()
				require.Equal(t, tt.rowCount, rowCount)
				require.Equal(t, tt.colCount, colCount)
				for i := 0; i < tt.rowCount; i++ {
					for j := 0; j < tt.colCount; j++ {
						v, err := comp.Lookup(i, j)
						require.NoError(t, err)
						require.Equal(t, tt.original[i*tt.colCount+j], v, "entry (%v, %v)", i, j)
					}
				}

				// Calling with out-of-range indexes should be an error.
				_, err = comp.Lookup(0, -1)
				require.Error(t, err)
				_, err = comp.Lookup(-1, 0)
				require.Error(t, err)
				_, err = comp.Lookup(rowCount-1, colCount)
				require.Error(t, err)
				_, err = comp.Lookup(rowCount, colCount-1)
				require.Error(t, err)

				// The compressor must not break the original table.
				require.Equal(t, dup, tt.original)
			})
		}
	}
}

func TestUniqueEntriesTable_sharesIdenticalRows(t *testing.T) {
	orig, err := NewOriginalTable([]int{
		0, 1, 1,
		2, 0, 0,
		0, 1, 1,
	}, 3)
	require.NoError(t, err)

	tab := NewUniqueEntriesTable()
	require.NoError(t, tab.Compress(orig))
	require.Equal(t, []int{0, 1, 0}, tab.RowNums)
	require.Equal(t, []int{0, 1, 1, 2, 0, 0}, tab.UniqueEntries)
}

func TestNewOriginalTable_rejectsMalformedTables(t *testing.T) {
	_, err := NewOriginalTable([]int{}, 1)
	require.Error(t, err)
	_, err = NewOriginalTable([]int{1, 2}, 0)
	require.Error(t, err)
	_, err = NewOriginalTable([]int{1, 2, 3}, 2)
	require.Error(t, err)
}
