package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nihei9/ecfg/grammar"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	output        *string
	start         *string
	decisionTable *bool
	compression   *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "analyze [<grammar file path>]",
		Short:   "Analyze a grammar and write a report in JSON",
		Example: `  ecfg analyze grammar.ecfg -o report.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runAnalyze,
	}
	analyzeFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	analyzeFlags.start = cmd.Flags().String("start", "", "start symbol (default: the #start directive or the first LHS)")
	analyzeFlags.decisionTable = cmd.Flags().Bool("decision-table", false, "include a decision table in the report")
	analyzeFlags.compression = cmd.Flags().Int("compression-level", grammar.CompressionLevelMax, fmt.Sprintf("compression level of the decision table (%v-%v)", grammar.CompressionLevelMin, grammar.CompressionLevelMax))
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	e, err := readEngine(path, *analyzeFlags.start)
	if err != nil {
		return err
	}

	var opts []grammar.ReportOption
	if *analyzeFlags.decisionTable {
		opts = append(opts, grammar.EnableDecisionTable(), grammar.DecisionTableCompressionLevel(*analyzeFlags.compression))
	}
	report, err := e.Report(opts...)
	if err != nil {
		return fmt.Errorf("Cannot make a report: %w", err)
	}

	var w io.Writer = os.Stdout
	if *analyzeFlags.output != "" {
		f, err := os.OpenFile(*analyzeFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))

	if !report.ELL1 {
		fmt.Fprintf(os.Stderr, "%v conflicts\n", len(report.Conflicts))
	}
	return nil
}
