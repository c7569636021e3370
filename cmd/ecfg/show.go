package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/nihei9/ecfg/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <report file path>",
		Short:   "Print a report in a readable format",
		Example: `  ecfg show report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	return writeReport(os.Stdout, report)
}

func readReport(path string) (*spec.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}

const reportTemplate = `# Conflicts

{{ printConflictSummary . }}
{{ range .Conflicts -}}
{{ printConflict . }}
{{ end }}
# Terminals

{{ join .Terminals }}

# Non-terminals
{{ range .NonTerminals }}
## {{ .Name }}{{ if eq .Name $.StartSymbol }} (start){{ end }}

{{ .Name }} ::= {{ .Definition }}

nullable: {{ .Nullable }}
first:    {{ printSet .First }}
follow:   {{ printSet .Follow }}

{{ range .Alternatives -}}
{{ printAlternative . }}
{{ end -}}
{{ end }}
# Choice points
{{ range .ChoicePoints }}
## {{ .Path }} ({{ .Kind }})

{{ range .Options -}}
{{ printOption . }}
{{ end -}}
{{ end }}`

func writeReport(w io.Writer, report *spec.Report) error {
	fns := template.FuncMap{
		"printConflictSummary": func(report *spec.Report) string {
			switch len(report.Conflicts) {
			case 0:
				return "No conflict. The grammar is ELL(1)."
			case 1:
				return "1 conflict occurred. The grammar is not ELL(1)."
			default:
				return fmt.Sprintf("%v conflicts occurred. The grammar is not ELL(1).", len(report.Conflicts))
			}
		},
		"printConflict": func(c *spec.Conflict) string {
			return fmt.Sprintf("%v conflict at %v between %v (%v) and %v (%v) on %v",
				c.Kind, c.ChoicePoint, c.Alternatives[0], c.Labels[0], c.Alternatives[1], c.Labels[1], strings.Join(c.Symbols, ", "))
		},
		"join": func(syms []string) string {
			return strings.Join(syms, " ")
		},
		"printSet": printSet,
		"printAlternative": func(alt *spec.Alternative) string {
			label := "ε"
			if len(alt.Label) > 0 {
				label = strings.Join(alt.Label, " ")
			}
			return fmt.Sprintf("%-8v %v\n         director: %v", alt.Path, label, printSet(alt.Directors))
		},
		"printOption": func(opt *spec.Option) string {
			return fmt.Sprintf("%-10v %v\n           director: %v", opt.Path, opt.Label, printSet(opt.Directors))
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, report)
}

func printSet(syms []string) string {
	if len(syms) == 0 {
		return "∅"
	}
	return "{" + strings.Join(syms, ", ") + "}"
}
