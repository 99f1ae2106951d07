package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mealquery/internal/parsetree"
	"github.com/roach88/mealquery/internal/vocab"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	Preset string
}

// AnalyzeResult is the JSON payload of the analyze command. ParseTree is
// nil for a blank query.
type AnalyzeResult struct {
	Query     string               `json:"query"`
	ParseTree *parsetree.ParseTree `json:"parseTree"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze [query]",
		Short: "Show the structure of a query",
		Long: `Analyze a Boolean query and print its parse tree: terms, operators,
whether it uses parentheses or NOT, and an indented structure view.

Examples:
  mealquery analyze "(Italian OR French) AND NOT quick"
  mealquery analyze --preset "Date Night"
  mealquery analyze Chicken AND Rice --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", "", "analyze a preset query by name")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	query, err := resolveQuery(opts.RootOptions, cmd, args, opts.Preset)
	if err != nil {
		return err
	}

	tree := parsetree.Analyze(query)
	return formatter.Render(AnalyzeResult{Query: query, ParseTree: tree}, func(w io.Writer) {
		fmt.Fprintln(w, parsetree.FormatStructure(query))
		if tree == nil {
			return
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Terms:       %s\n", strings.Join(tree.Terms, ", "))
		fmt.Fprintf(w, "Operators:   %s\n", strings.Join(tree.Operators, ", "))
		fmt.Fprintf(w, "Parentheses: %t\n", tree.HasParentheses)
		fmt.Fprintf(w, "NOT:         %t\n", tree.HasNot)
	})
}

// resolveQuery returns the preset query when preset is set, otherwise the
// query given as arguments. Giving both is an error.
func resolveQuery(opts *RootOptions, cmd *cobra.Command, args []string, preset string) (string, error) {
	if preset == "" {
		return queryArg(args), nil
	}
	if len(args) > 0 {
		return "", NewExitError(ExitCommandError, "give either a query or --preset, not both")
	}

	v, err := loadVocabulary(opts, cmd)
	if err != nil {
		return "", err
	}
	p, ok := v.Preset(preset)
	if !ok {
		return "", NewExitError(ExitCommandError,
			fmt.Sprintf("%s: preset not found: %q (available: %s)", ErrCodeNotFound, preset, presetNames(v)))
	}
	return p.Query, nil
}

func presetNames(v *vocab.Vocabulary) string {
	names := make([]string, len(v.Presets))
	for i, p := range v.Presets {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
