package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/mealquery/internal/api"
	"github.com/roach88/mealquery/internal/search"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Database string
	Addr     string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recipe query HTTP API",
		Long: `Serve the recipe query API under /api/recipes until interrupted.

Endpoints:
  GET  /api/recipes/dropdown-options
  POST /api/recipes/search
  GET  /api/recipes/validate?query=...
  GET  /api/recipes/presets
  GET  /api/recipes/{id}

Example:
  mealquery serve --db recipes.db --addr :8080`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (or MEALQUERY_DB)")
	cmd.Flags().StringVar(&opts.Addr, "addr", defaultAddr, "listen address (or MEALQUERY_ADDR)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	st, err := openStore(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	v, err := loadVocabulary(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	logger := slog.Default()
	svc := search.New(st, search.WithVocabulary(v), search.WithLogger(logger))

	// Stop on Ctrl-C or SIGTERM, or when the parent context ends (tests).
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := opts.setting(cmd, "addr")
	fmt.Fprintf(cmd.OutOrStdout(), "Serving recipe API on %s. Press Ctrl-C to stop.\n", addr)

	if err := api.ListenAndServe(ctx, addr, api.NewRouter(svc, logger)); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitCommandError, "server error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
