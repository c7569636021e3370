package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "ecfg",
	Short: "Analyze an extended context-free grammar",
	Long: `ecfg checks whether an extended context-free grammar is ELL(1).
It calculates the nullable property, FIRST, FOLLOW, and director sets,
and reports every choice point whose director sets overlap.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		initTracing(*rootFlags.trace)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

func Execute() error {
	return rootCmd.Execute()
}

// initTracing routes every tracer to a Go logger writing to stderr.
func initTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
}

func tracer() tracing.Trace {
	return tracing.Select("ecfg.grammar")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
