package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/mealquery/internal/parsetree"
	"github.com/roach88/mealquery/internal/selection"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Cuisines           []string
	ExcludeCuisines    []string
	CuisineOp          string
	Ingredients        []string
	ExcludeIngredients []string
	IngredientOp       string
	Diets              []string
	DietOp             string
	Quick              bool
	Easy               bool
	Tree               bool // also print the parse tree
	SQL                bool // also print the display statement
}

// BuildResult is the JSON payload of the build command.
type BuildResult struct {
	Selection *selection.State     `json:"selection"`
	Query     string               `json:"query"`
	ParseTree *parsetree.ParseTree `json:"parseTree,omitempty"`
	SQL       string               `json:"sql,omitempty"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Synthesize a query from filter selections",
		Long: `Build the canonical Boolean query for a set of filter selections.

Included cuisines, ingredients and diets are grouped with their operator,
quick and easy are appended, and exclusions become NOT clauses.

Examples:
  mealquery build --cuisine Italian --cuisine French --ingredient Chicken
  mealquery build --diet vegetarian --quick --exclude-ingredient Mushrooms
  mealquery build --ingredient Chicken,Rice --ingredient-op OR --tree --sql`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Cuisines, "cuisine", nil, "cuisine to include (repeatable)")
	cmd.Flags().StringSliceVar(&opts.ExcludeCuisines, "exclude-cuisine", nil, "cuisine to exclude (repeatable)")
	cmd.Flags().StringVar(&opts.CuisineOp, "cuisine-op", string(selection.Or), "operator joining included cuisines (AND|OR)")
	cmd.Flags().StringSliceVar(&opts.Ingredients, "ingredient", nil, "ingredient to include (repeatable)")
	cmd.Flags().StringSliceVar(&opts.ExcludeIngredients, "exclude-ingredient", nil, "ingredient to exclude (repeatable)")
	cmd.Flags().StringVar(&opts.IngredientOp, "ingredient-op", string(selection.And), "operator joining included ingredients (AND|OR)")
	cmd.Flags().StringSliceVar(&opts.Diets, "diet", nil, "diet keyword, e.g. vegetarian (repeatable)")
	cmd.Flags().StringVar(&opts.DietOp, "diet-op", string(selection.And), "operator joining diets (AND|OR)")
	cmd.Flags().BoolVar(&opts.Quick, "quick", false, "only quick recipes")
	cmd.Flags().BoolVar(&opts.Easy, "easy", false, "only easy recipes")
	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "also print the parse tree")
	cmd.Flags().BoolVar(&opts.SQL, "sql", false, "also print the SQL statement")

	return cmd
}

func runBuild(opts *BuildOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	state, err := opts.state()
	if err != nil {
		var invalid *selection.InvalidValueError
		if errors.As(err, &invalid) {
			_ = formatter.Error(ErrCodeInvalidFlag, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "invalid selection", err)
	}

	query := selection.Synthesize(state)
	result := BuildResult{Selection: state, Query: query}

	if opts.Tree {
		result.ParseTree = parsetree.Analyze(query)
	}
	if opts.SQL {
		svc, err := newService(opts.RootOptions, cmd, nil)
		if err != nil {
			return err
		}
		result.SQL = svc.Statement(query)
	}

	return formatter.Render(result, func(w io.Writer) {
		if query == "" {
			fmt.Fprintln(w, "No filters selected.")
		} else {
			fmt.Fprintln(w, query)
		}
		if opts.Tree {
			fmt.Fprintln(w)
			fmt.Fprintln(w, parsetree.FormatStructure(query))
		}
		if opts.SQL && result.SQL != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, result.SQL)
		}
	})
}

// state turns the flags into a selection. Operators are validated even
// when their group is empty.
func (o *BuildOptions) state() (*selection.State, error) {
	s := selection.New()

	cuisineOp, err := selection.ParseOperator(o.CuisineOp)
	if err != nil {
		return nil, fmt.Errorf("--cuisine-op: %w", err)
	}
	ingredientOp, err := selection.ParseOperator(o.IngredientOp)
	if err != nil {
		return nil, fmt.Errorf("--ingredient-op: %w", err)
	}
	dietOp, err := selection.ParseOperator(o.DietOp)
	if err != nil {
		return nil, fmt.Errorf("--diet-op: %w", err)
	}

	s.Cuisines.SetOperator(cuisineOp)
	s.Ingredients.SetOperator(ingredientOp)
	s.SetDietOperator(dietOp)

	for _, c := range o.Cuisines {
		s.Cuisines.AddTo(selection.Include, c)
	}
	for _, c := range o.ExcludeCuisines {
		s.Cuisines.AddTo(selection.Exclude, c)
	}
	for _, i := range o.Ingredients {
		s.Ingredients.AddTo(selection.Include, i)
	}
	for _, i := range o.ExcludeIngredients {
		s.Ingredients.AddTo(selection.Exclude, i)
	}
	for _, d := range o.Diets {
		s.AddDiet(d)
	}
	s.SetQuick(o.Quick)
	s.SetEasy(o.Easy)

	return s, nil
}
