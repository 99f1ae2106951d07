package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Statement bool
	Preset    string
}

// TranslateResult is the JSON payload of the translate command.
type TranslateResult struct {
	Query     string `json:"query"`
	Where     string `json:"where"`
	Statement string `json:"statement,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate [query]",
		Short: "Translate a query to a SQL WHERE fragment",
		Long: `Translate a Boolean query into the SQL WHERE fragment shown next to
it. Vocabulary terms become column predicates, everything else is kept
verbatim. The output is for display: it is never escaped or executed.

Examples:
  mealquery translate "Chicken AND NOT quick"
  mealquery translate --statement "(Italian OR French) AND easy"
  mealquery translate --preset Weeknight`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Statement, "statement", false, "print the full SELECT statement")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "translate a preset query by name")

	return cmd
}

func runTranslate(opts *TranslateOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	query, err := resolveQuery(opts.RootOptions, cmd, args, opts.Preset)
	if err != nil {
		return err
	}
	svc, err := newService(opts.RootOptions, cmd, nil)
	if err != nil {
		return err
	}

	result := TranslateResult{Query: query, Where: svc.Translate(query)}
	if opts.Statement {
		result.Statement = svc.Statement(query)
	}

	return formatter.Render(result, func(w io.Writer) {
		if result.Statement != "" {
			fmt.Fprintln(w, result.Statement)
			return
		}
		fmt.Fprintln(w, result.Where)
	})
}
