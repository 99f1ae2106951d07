package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List preset queries",
		Long: `List the ready-made queries. Any of them can be passed by name to
analyze, translate, validate or search with --preset.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			v, err := loadVocabulary(rootOpts, cmd)
			if err != nil {
				return err
			}
			return formatter.Render(v.Presets, func(w io.Writer) {
				for i, p := range v.Presets {
					if i > 0 {
						fmt.Fprintln(w)
					}
					fmt.Fprintln(w, p.Name)
					if p.Description != "" {
						fmt.Fprintf(w, "  %s\n", p.Description)
					}
					fmt.Fprintf(w, "  %s\n", p.Query)
				}
			})
		},
	}
}
