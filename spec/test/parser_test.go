package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		src   string
		query *Query
		err   bool
	}{
		{
			src:   "ell1",
			query: &Query{Kind: QueryKindELL1, Symbols: []string{}},
		},
		{
			src:   `nullable \{ E \}`,
			query: &Query{Kind: QueryKindNullable, Symbols: []string{`\{`, "E", `\}`}},
		},
		{
			src:   "nullable",
			query: &Query{Kind: QueryKindNullable, Symbols: []string{}},
		},
		{
			src:   "  first  T  + ",
			query: &Query{Kind: QueryKindFirst, Symbols: []string{"T", "+"}},
		},
		{
			src:   "follow E",
			query: &Query{Kind: QueryKindFollow, Symbols: []string{"E"}},
		},
		{
			src:   "director F",
			query: &Query{Kind: QueryKindDirector, Symbols: []string{"F"}},
		},
		{
			src: "",
			err: true,
		},
		{
			src: "ell1 E",
			err: true,
		},
		{
			src: "follow E T",
			err: true,
		},
		{
			src: "director",
			err: true,
		},
		{
			src: "last E",
			err: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			q, err := ParseQuery(tt.src)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.query, q)
		})
	}
}

func TestParseTestCase(t *testing.T) {
	src := `director sets of F
---
director F
---
F/0: (
F/1: i
`
	tc, err := ParseTestCase(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, "director sets of F", tc.Description)
	require.Equal(t, &Query{Kind: QueryKindDirector, Symbols: []string{"F"}}, tc.Query)
	require.Equal(t, []string{"F/0: (", "F/1: i"}, tc.Expected)

	_, err = ParseTestCase(strings.NewReader("caption\n---\nell1\n"))
	require.Error(t, err)

	_, err = ParseTestCase(strings.NewReader("caption\n---\nlast E\n---\ntrue\n"))
	require.Error(t, err)
}

func TestDiffResult(t *testing.T) {
	tests := []struct {
		caption  string
		kind     QueryKind
		expected []string
		actual   []string
		diffs    int
	}{
		{
			caption:  "items are compared as sets",
			kind:     QueryKindFollow,
			expected: []string{"<eof> )"},
			actual:   []string{") <eof>"},
		},
		{
			caption:  "an empty set",
			kind:     QueryKindFirst,
			expected: []string{EmptySet},
			actual:   []string{EmptySet},
		},
		{
			caption:  "a missing item",
			kind:     QueryKindFirst,
			expected: []string{"i ("},
			actual:   []string{"i"},
			diffs:    1,
		},
		{
			caption:  "booleans",
			kind:     QueryKindELL1,
			expected: []string{"true"},
			actual:   []string{"false"},
			diffs:    1,
		},
		{
			caption:  "director sets are keyed by paths",
			kind:     QueryKindDirector,
			expected: []string{"F/0: (", "F/1: i"},
			actual:   []string{"F/0: (", "F/1: ∅"},
			diffs:    1,
		},
		{
			caption:  "director sets in another order",
			kind:     QueryKindDirector,
			expected: []string{"F/1: i", "F/0: ("},
			actual:   []string{"F/0: (", "F/1: i"},
			diffs:    2,
		},
		{
			caption:  "line counts differ",
			kind:     QueryKindDirector,
			expected: []string{"F/0: ("},
			actual:   []string{"F/0: (", "F/1: i"},
			diffs:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			diffs := DiffResult(tt.kind, tt.expected, tt.actual)
			require.Len(t, diffs, tt.diffs)
		})
	}
}
