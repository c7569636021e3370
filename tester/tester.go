package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/ecfg/grammar"
	tspec "github.com/nihei9/ecfg/spec/test"
)

// Ask runs a query on an engine and renders the answer in the same line format that
// test cases use for their expected results.
func Ask(e *grammar.Engine, q *tspec.Query) ([]string, error) {
	switch q.Kind {
	case tspec.QueryKindELL1:
		return []string{fmt.Sprintf("%v", e.IsELL1())}, nil
	case tspec.QueryKindNullable:
		nullable, err := e.CalculateNullable(q.Symbols)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%v", nullable)}, nil
	case tspec.QueryKindFirst:
		first, err := e.CalculateFirstSet(q.Symbols)
		if err != nil {
			return nil, err
		}
		return []string{FormatSet(first)}, nil
	case tspec.QueryKindFollow:
		follow, err := e.CalculateFollowSet(q.Symbols[0])
		if err != nil {
			return nil, err
		}
		return []string{FormatSet(follow)}, nil
	case tspec.QueryKindDirector:
		entries, err := e.CalculateDirectorSet(q.Symbols[0])
		if err != nil {
			return nil, err
		}
		lines := make([]string, 0, len(entries))
		for _, ent := range entries {
			lines = append(lines, fmt.Sprintf("%v: %v", ent.Path, FormatSet(ent.Directors)))
		}
		return lines, nil
	}
	return nil, fmt.Errorf("unknown query: %v", q.Kind)
}

// FormatSet joins set members with spaces. An empty set is rendered as `∅`.
func FormatSet(items []string) string {
	if len(items) == 0 {
		return tspec.EmptySet
	}
	return strings.Join(items, " ")
}

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.ResultDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		diffLines := make([]string, 0, len(r.Diffs))
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.String())
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases reads a test case file, or every test case file under a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Engine *grammar.Engine
	Cases  []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Engine, c))
	}
	return rs
}

func runTest(e *grammar.Engine, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	actual, err := Ask(e, c.TestCase.Query)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	diffs := tspec.DiffResult(c.TestCase.Query.Kind, c.TestCase.Expected, actual)
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch: %v", c.TestCase.Query),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
