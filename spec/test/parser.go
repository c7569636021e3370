package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

type QueryKind string

const (
	QueryKindELL1     = QueryKind("ell1")
	QueryKindNullable = QueryKind("nullable")
	QueryKindFirst    = QueryKind("first")
	QueryKindFollow   = QueryKind("follow")
	QueryKindDirector = QueryKind("director")
)

// EmptySet stands for an empty set in query results.
const EmptySet = "∅"

// Query is a question about a grammar, written as a kind followed by symbols:
//
//	first T \{ + T \}
//	follow E
type Query struct {
	Kind    QueryKind
	Symbols []string
}

func (q *Query) String() string {
	if len(q.Symbols) == 0 {
		return string(q.Kind)
	}
	return fmt.Sprintf("%v %v", q.Kind, strings.Join(q.Symbols, " "))
}

func ParseQuery(src string) (*Query, error) {
	fields := strings.Fields(src)
	if len(fields) == 0 {
		return nil, fmt.Errorf("a query is empty")
	}
	q := &Query{
		Kind:    QueryKind(fields[0]),
		Symbols: fields[1:],
	}
	switch q.Kind {
	case QueryKindELL1:
		if len(q.Symbols) != 0 {
			return nil, fmt.Errorf("%v takes no symbols", q.Kind)
		}
	case QueryKindNullable, QueryKindFirst:
	case QueryKindFollow, QueryKindDirector:
		if len(q.Symbols) != 1 {
			return nil, fmt.Errorf("%v takes just one non-terminal", q.Kind)
		}
	default:
		return nil, fmt.Errorf("unknown query: %v", fields[0])
	}
	return q, nil
}

// ResultDiff is a mismatch between an expected and an actual query result.
type ResultDiff struct {
	Key      string
	Expected string
	Actual   string
}

func (d *ResultDiff) String() string {
	if d.Key == "" {
		return fmt.Sprintf("expected '%v' but got '%v'", d.Expected, d.Actual)
	}
	return fmt.Sprintf("%v: expected '%v' but got '%v'", d.Key, d.Expected, d.Actual)
}

type resultLine struct {
	key   string
	items map[string]struct{}
	text  string
}

// parseResultLine reads `[key:] item...`. Only director results carry keys.
func parseResultLine(kind QueryKind, line string) *resultLine {
	r := &resultLine{
		items: map[string]struct{}{},
	}
	body := line
	if kind == QueryKindDirector {
		if i := strings.Index(line, ":"); i >= 0 {
			r.key = strings.TrimSpace(line[:i])
			body = line[i+1:]
		}
	}
	for _, item := range strings.Fields(body) {
		if item == EmptySet {
			continue
		}
		r.items[item] = struct{}{}
	}
	r.text = strings.TrimSpace(body)
	if r.text == "" {
		r.text = EmptySet
	}
	return r
}

func (r *resultLine) equals(s *resultLine) bool {
	if len(r.items) != len(s.items) {
		return false
	}
	for item := range r.items {
		if _, ok := s.items[item]; !ok {
			return false
		}
	}
	return true
}

// DiffResult compares results line by line. Items within a line are compared as sets.
func DiffResult(kind QueryKind, expected, actual []string) []*ResultDiff {
	var diffs []*ResultDiff
	if len(expected) != len(actual) {
		return []*ResultDiff{
			{
				Expected: fmt.Sprintf("%v line(s)", len(expected)),
				Actual:   fmt.Sprintf("%v line(s)", len(actual)),
			},
		}
	}
	for i := range expected {
		exp := parseResultLine(kind, expected[i])
		act := parseResultLine(kind, actual[i])
		if exp.key != act.key || !exp.equals(act) {
			key := exp.key
			if exp.key != act.key {
				key = fmt.Sprintf("%v/%v", exp.key, act.key)
			}
			diffs = append(diffs, &ResultDiff{
				Key:      key,
				Expected: exp.text,
				Actual:   act.text,
			})
		}
	}
	return diffs
}

// TestCase consists of three parts separated by `---` lines: a description, a query,
// and the expected result.
type TestCase struct {
	Description string
	Query       *Query
	Expected    []string
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	q, err := ParseQuery(string(parts[1].buf))
	if err != nil {
		return nil, fmt.Errorf("line %v: %w", parts[0].lineCount+2, err)
	}

	var expected []string
	for _, line := range strings.Split(string(parts[2].buf), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		expected = append(expected, line)
	}

	return &TestCase{
		Description: strings.TrimSpace(string(parts[0].buf)),
		Query:       q,
		Expected:    expected,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var parts []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		parts = append(parts, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	var buf bytes.Buffer
	line := s.Bytes()
	if reDelim.Match(line) {
		// (*bytes.Buffer).Bytes() returns nil if nothing has been written.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return append([]byte{}, buf.Bytes()...), lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return append([]byte{}, buf.Bytes()...), lineCount, nil
}
