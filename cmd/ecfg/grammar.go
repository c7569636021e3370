package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/nihei9/ecfg/error"
	"github.com/nihei9/ecfg/grammar"
	"github.com/nihei9/ecfg/spec"
)

// readEngine reads a description file and returns an engine for its grammar. An empty
// path reads the standard input. start overrides the #start directive.
func readEngine(path string, start string) (e *grammar.Engine, retErr error) {
	defer func() {
		var specErrs verr.SpecErrors
		if !errors.As(retErr, &specErrs) {
			return
		}
		for _, err := range specErrs {
			if path != "" {
				err.FilePath = path
				err.SourceName = path
			} else {
				err.SourceName = "stdin"
			}
		}
	}()

	var src io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	ast, err := spec.Parse(src)
	if err != nil {
		var specErr *verr.SpecError
		if errors.As(err, &specErr) {
			return nil, verr.SpecErrors{specErr}
		}
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST:         ast,
		StartSymbol: start,
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return grammar.Analyze(g), nil
}
