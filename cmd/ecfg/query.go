package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nihei9/ecfg/grammar"
	tspec "github.com/nihei9/ecfg/spec/test"
	"github.com/nihei9/ecfg/tester"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var queryFlags = struct {
	start  *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "query <grammar file path> <query>",
		Short: "Ask a question about a grammar",
		Long: `query answers one of the following questions:
  ell1                 whether the grammar is ELL(1)
  nullable <symbols>   whether the symbols derive the empty string
  first <symbols>      the terminals that can begin the symbols
  follow <NT>          the terminals that can follow a non-terminal
  director <NT>        the director sets of the alternatives of a non-terminal`,
		Example: `  ecfg query grammar.ecfg 'first T \{ + T \}'`,
		Args:    cobra.MinimumNArgs(2),
		RunE:    runQuery,
	}
	queryFlags.start = cmd.Flags().String("start", "", "start symbol (default: the #start directive or the first LHS)")
	queryFlags.format = cmd.Flags().String("format", formatText, "output format [text|json]")
	rootCmd.AddCommand(cmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	switch *queryFlags.format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("invalid format: %v", *queryFlags.format)
	}

	e, err := readEngine(args[0], *queryFlags.start)
	if err != nil {
		return err
	}
	q, err := tspec.ParseQuery(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	if *queryFlags.format == formatJSON {
		v, err := answerValue(e, q)
		if err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%v\n", string(b))
		return nil
	}

	lines, err := tester.Ask(e, q)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

// answerValue returns the answer to a query as a JSON-encodable value.
func answerValue(e *grammar.Engine, q *tspec.Query) (interface{}, error) {
	switch q.Kind {
	case tspec.QueryKindELL1:
		return struct {
			ELL1      bool                `json:"ell1"`
			Conflicts []*grammar.Conflict `json:"conflicts"`
		}{
			ELL1:      e.IsELL1(),
			Conflicts: e.Conflicts(),
		}, nil
	case tspec.QueryKindNullable:
		return e.CalculateNullable(q.Symbols)
	case tspec.QueryKindFirst:
		return e.CalculateFirstSet(q.Symbols)
	case tspec.QueryKindFollow:
		return e.CalculateFollowSet(q.Symbols[0])
	case tspec.QueryKindDirector:
		return e.CalculateDirectorSet(q.Symbols[0])
	}
	return nil, fmt.Errorf("unknown query: %v", q.Kind)
}
