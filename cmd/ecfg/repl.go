package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/ecfg/grammar"
	tspec "github.com/nihei9/ecfg/spec/test"
	"github.com/nihei9/ecfg/tester"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file path>",
		Short:   "Ask questions about a grammar interactively",
		Example: `  ecfg repl grammar.ecfg`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.start = cmd.Flags().String("start", "", "start symbol (default: the #start directive or the first LHS)")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	e, err := readEngine(args[0], *replFlags.start)
	if err != nil {
		return err
	}

	rl, err := readline.New("ecfg> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println(fmt.Sprintf("Loaded %v (start: %v)", args[0], e.Grammar().StartSymbol()))
	tracer().Infof("Quit with <ctrl>D")
	intp := &interp{
		engine: e,
		repl:   rl,
	}
	intp.loop()
	return nil
}

type interp struct {
	engine *grammar.Engine
	repl   *readline.Instance
}

func (intp *interp) loop() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupted
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	fmt.Println("Good bye!")
}

// eval answers one query. Besides queries, `tree` prints every choice point and `quit`
// leaves the loop.
func (intp *interp) eval(line string) (bool, error) {
	switch line {
	case "quit", "exit":
		return true, nil
	case "tree":
		pterm.DefaultTree.WithRoot(choicePointTree(intp.engine)).Render()
		return false, nil
	}

	q, err := tspec.ParseQuery(line)
	if err != nil {
		return false, err
	}
	lines, err := tester.Ask(intp.engine, q)
	if err != nil {
		return false, err
	}
	for _, l := range lines {
		pterm.Println(l)
	}
	return false, nil
}
