package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/mealquery/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportSummary is the JSON payload of the import command.
type ImportSummary struct {
	File     string   `json:"file"`
	IDs      []string `json:"ids"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Total    int      `json:"total"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <recipes.yaml>",
		Short: "Load recipes into the database",
		Long: `Load recipes from a YAML file with a top-level "recipes" list into the
database, creating it if needed. All recipes are written in one
transaction. Recipes without an id get a generated one; recipes whose id
is already stored are skipped, so importing a file twice is harmless.

Example:
  mealquery import --db recipes.db ./recipes.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (or MEALQUERY_DB)")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("recipe file not found: %s", path), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("recipe file not found: %s", path))
	}

	recipes, err := store.LoadRecipes(path)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load recipes", err)
	}
	formatter.VerboseLog("Loaded %d recipe(s) from %s", len(recipes), path)

	st, err := openStore(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	result, err := st.ImportRecipes(commandContext(cmd), recipes)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "import failed", err)
	}
	slog.Info("recipes imported", "file", path, "inserted", result.Inserted, "skipped", result.Skipped)

	summary := ImportSummary{
		File:     path,
		IDs:      result.IDs,
		Inserted: result.Inserted,
		Skipped:  result.Skipped,
		Total:    len(recipes),
	}
	return formatter.Render(summary, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Imported %d recipe(s) from %s (%d skipped)\n", summary.Inserted, path, summary.Skipped)
	})
}
