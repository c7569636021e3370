package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/ecfg/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  ecfg test grammar.ecfg test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.start = cmd.Flags().String("start", "", "start symbol (default: the #start directive or the first LHS)")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	e, err := readEngine(args[0], *testFlags.start)
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Engine: e,
		Cases:  cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
