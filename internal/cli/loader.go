package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/mealquery/internal/search"
	"github.com/roach88/mealquery/internal/vocab"
)

// Error codes for CLI output.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeInvalidQuery = "E002" // Query failed structural validation
	ErrCodeEmptyQuery   = "E003" // Blank query
	ErrCodeVocabulary   = "E004" // Vocabulary file could not be loaded
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeDatabase     = "E006" // Database open/read/write failed
	ErrCodeInvalidFlag  = "E007" // Flag value rejected
	ErrCodeWriteFailed  = "E008" // File write error
)

const (
	envPrefix   = "MEALQUERY"
	defaultAddr = ":8080"
)

// newConfig returns the settings layer shared by all commands. Explicit
// flags win over MEALQUERY_* environment variables, which win over the
// config file.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("addr", defaultAddr)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func (o *RootOptions) config() *viper.Viper {
	if o.v == nil {
		o.v = newConfig()
	}
	return o.v
}

// loadConfig reads the --config file, if any.
func (o *RootOptions) loadConfig(cmd *cobra.Command) error {
	v := o.config()
	if o.Config == "" {
		return nil
	}
	v.SetConfigFile(o.Config)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", o.Config, err)
	}
	return nil
}

// setting resolves a flag of cmd through the config layer.
func (o *RootOptions) setting(cmd *cobra.Command, name string) string {
	v := o.config()
	// Rebind on every lookup: several commands declare the same flag name.
	if f := cmd.Flags().Lookup(name); f != nil {
		_ = v.BindPFlag(name, f)
	}
	return v.GetString(name)
}

// loadVocabulary returns the vocabulary named by --vocab (or
// MEALQUERY_VOCAB, or the config file), falling back to the built-in one.
func loadVocabulary(opts *RootOptions, cmd *cobra.Command) (*vocab.Vocabulary, error) {
	path := opts.setting(cmd, "vocab")
	if path == "" {
		return vocab.Default(), nil
	}

	v, err := vocab.LoadFile(path)
	if err != nil {
		var loadErr *vocab.LoadError
		if errors.As(err, &loadErr) {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: failed to load vocabulary", ErrCodeVocabulary), loadErr)
		}
		return nil, WrapExitError(ExitCommandError, "failed to load vocabulary", err)
	}
	return v, nil
}

// newService builds a search service over the configured vocabulary. recipes
// may be nil for commands that never execute queries.
func newService(opts *RootOptions, cmd *cobra.Command, recipes search.Recipes) (*search.Service, error) {
	v, err := loadVocabulary(opts, cmd)
	if err != nil {
		return nil, err
	}
	return search.New(recipes, search.WithVocabulary(v)), nil
}

// queryArg returns the query given as arguments, joined by spaces so that
// unquoted queries work too.
func queryArg(args []string) string {
	return strings.Join(args, " ")
}
