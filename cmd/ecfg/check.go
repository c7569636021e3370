package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nihei9/ecfg/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	start *string
	tree  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check [<grammar file path>]",
		Short:   "Check whether a grammar is ELL(1)",
		Example: `  ecfg check grammar.ecfg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCheck,
	}
	checkFlags.start = cmd.Flags().String("start", "", "start symbol (default: the #start directive or the first LHS)")
	checkFlags.tree = cmd.Flags().Bool("tree", false, "print director sets of every choice point")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	e, err := readEngine(path, *checkFlags.start)
	if err != nil {
		return err
	}

	if *checkFlags.tree {
		pterm.DefaultTree.WithRoot(choicePointTree(e)).Render()
	}

	conflicts := e.Conflicts()
	if len(conflicts) == 0 {
		pterm.Info.Println("The grammar is ELL(1).")
		return nil
	}
	for _, c := range conflicts {
		pterm.Error.Println(fmt.Sprintf("%v conflict at %v: %v and %v share %v",
			c.Kind, c.ChoicePoint, c.Labels[0], c.Labels[1], strings.Join(c.Symbols, ", ")))
	}
	return errors.New("The grammar is not ELL(1)")
}

// choicePointTree lays out choice points under their non-terminals, with each option
// followed by its director set.
func choicePointTree(e *grammar.Engine) pterm.TreeNode {
	ll := pterm.LeveledList{}
	var lhs string
	for _, cp := range e.ChoicePoints() {
		if cp.NonTerminal != lhs {
			lhs = cp.NonTerminal
			ll = append(ll, pterm.LeveledListItem{
				Level: 0,
				Text:  lhs,
			})
		}
		ll = append(ll, pterm.LeveledListItem{
			Level: 1,
			Text:  fmt.Sprintf("%v (%v)", cp.Path, cp.Kind),
		})
		for _, opt := range cp.Options {
			ll = append(ll, pterm.LeveledListItem{
				Level: 2,
				Text:  fmt.Sprintf("%v: %v", opt.Label, printSet(opt.Directors)),
			})
		}
	}
	return pterm.NewTreeFromLeveledList(ll)
}
