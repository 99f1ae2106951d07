package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mealquery/internal/search"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Preset string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [query]",
		Short: "Check a query without running it",
		Long: `Check that a query is structurally sound: balanced parentheses, no
empty groups, and every AND, OR and NOT has its operands. Terms outside
the vocabulary and adjacent terms without an operator are reported as
warnings.

Exit codes:
  0 - Query is valid (warnings allowed)
  1 - Query is invalid
  2 - Command error (unknown preset, unreadable vocabulary, etc.)

Examples:
  mealquery validate "(Chicken OR Beef) AND NOT quick"
  mealquery validate "(Chicken OR" --format json`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", "", "validate a preset query by name")

	return cmd
}

func runValidate(opts *ValidateOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	query, err := resolveQuery(opts.RootOptions, cmd, args, opts.Preset)
	if err != nil {
		return err
	}
	svc, err := newService(opts.RootOptions, cmd, nil)
	if err != nil {
		return err
	}

	result := svc.Validate(query)
	formatter.VerboseLog("Validated %q: %d error(s), %d warning(s)", query, len(result.Errors), len(result.Warnings))

	if result.IsValid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// outputValidateSuccess outputs a valid result with its warnings.
func outputValidateSuccess(formatter *OutputFormatter, result search.Validation) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Query valid")
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning: %s\n", w)
	}
	return nil
}

// outputValidationErrors outputs an invalid result.
func outputValidationErrors(formatter *OutputFormatter, result search.Validation) error {
	code := ErrCodeInvalidQuery
	if len(result.Errors) == 0 {
		code = ErrCodeEmptyQuery
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    code,
				Message: result.ErrorMessage,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Invalid query = exit code 1 (validation failure)
		return NewExitError(ExitFailure, result.ErrorMessage)
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Query invalid")
	fmt.Fprintln(formatter.Writer)

	if len(result.Errors) == 0 {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, result.ErrorMessage)
	}
	for _, issue := range result.Errors {
		fmt.Fprintf(formatter.Writer, "  %s\n", issue)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning: %s\n", w)
	}

	// Invalid query = exit code 1 (validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", max(len(result.Errors), 1)))
}
