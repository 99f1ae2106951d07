package harness

import (
	"github.com/roach88/mealquery/internal/parsetree"
	"github.com/roach88/mealquery/internal/queryir"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass indicates overall scenario success.
	// True if all expectations match.
	Pass bool `json:"pass"`

	// Query is the query the scenario ran: synthesized, preset or literal.
	Query string `json:"query"`

	// Tree is nil for a blank query.
	Tree *parsetree.ParseTree `json:"parseTree,omitempty"`

	// Where is the display WHERE fragment.
	Where string `json:"where"`

	// Validation is the structural check of the execution path.
	Validation queryir.ValidationResult `json:"validation"`

	// Results holds the names of the matched recipes, in result order.
	// Nil when the scenario has no recipes.
	Results []string `json:"results,omitempty"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
