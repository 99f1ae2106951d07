package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mealquery/internal/search"
	"github.com/roach88/mealquery/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Database string
	Preset   string
	SQL      bool // also print the display statement
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a query against the recipe database",
		Long: `Run a Boolean query against the recipe database and list the
matching recipes. Terms are bound as parameters; the statement printed
with --sql is the display form only.

Exit codes:
  0 - Query ran (even with no results)
  1 - Query is blank or invalid
  2 - Command error (database, vocabulary, etc.)

Examples:
  mealquery search --db recipes.db "Chicken AND Rice"
  mealquery search --db recipes.db --preset Weeknight --format json
  MEALQUERY_DB=recipes.db mealquery search "vegetarian AND NOT quick"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (or MEALQUERY_DB)")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "run a preset query by name")
	cmd.Flags().BoolVar(&opts.SQL, "sql", false, "also print the SQL statement")

	return cmd
}

func runSearch(opts *SearchOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	query, err := resolveQuery(opts.RootOptions, cmd, args, opts.Preset)
	if err != nil {
		return err
	}

	st, err := openStore(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	svc, err := newService(opts.RootOptions, cmd, st)
	if err != nil {
		return err
	}

	resp, err := svc.Search(commandContext(cmd), query)
	if err != nil {
		return searchError(formatter, err)
	}

	return formatter.Render(resp, func(w io.Writer) {
		fmt.Fprintf(w, "%d recipe(s) for %s (%s)\n", resp.ResultCount, resp.Query, resp.ExecutionTime)
		for _, r := range resp.Results {
			fmt.Fprintf(w, "  %s%s\n", r.Name, recipeLabels(r))
		}
		for _, warning := range resp.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
		if opts.SQL {
			fmt.Fprintln(w)
			fmt.Fprintln(w, resp.GeneratedSQL)
		}
	})
}

// searchError maps service errors to output and exit codes.
func searchError(formatter *OutputFormatter, err error) error {
	var queryErr *search.QueryError
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		_ = formatter.Error(ErrCodeEmptyQuery, err.Error(), nil)
		return WrapExitError(ExitFailure, "search failed", err)
	case errors.As(err, &queryErr):
		_ = formatter.Error(ErrCodeInvalidQuery, err.Error(), queryErr.Issues)
		return WrapExitError(ExitFailure, "search failed", err)
	default:
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "search failed", err)
	}
}

// recipeLabels renders " [Category, Area]" for the recipe, or "" when it
// has neither.
func recipeLabels(r store.Recipe) string {
	var labels []string
	for _, l := range []string{r.Category, r.Area} {
		if l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return " [" + strings.Join(labels, ", ") + "]"
}

// openStore opens the database named by --db or MEALQUERY_DB, creating it
// if needed.
func openStore(opts *RootOptions, cmd *cobra.Command) (*store.Store, error) {
	path := opts.setting(cmd, "db")
	if path == "" {
		return nil, NewExitError(ExitCommandError, "database path is required (--db or MEALQUERY_DB)")
	}

	slog.Debug("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: failed to open database", ErrCodeDatabase), err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// commandContext returns the command's context, or Background when the
// command was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
