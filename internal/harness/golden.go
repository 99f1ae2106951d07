package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/mealquery/internal/parsetree"
)

// Snapshot renders a result as the text stored in golden files: the query,
// validation issues, matched recipes, the parse tree structure and the
// WHERE fragment.
func Snapshot(result *Result) []byte {
	var buf strings.Builder

	fmt.Fprintf(&buf, "query: %q\n", result.Query)
	fmt.Fprintf(&buf, "valid: %t\n", result.Validation.IsValid)
	for _, issue := range result.Validation.Errors {
		fmt.Fprintf(&buf, "error: %s\n", issue)
	}
	for _, issue := range result.Validation.Warnings {
		fmt.Fprintf(&buf, "warning: %s\n", issue)
	}
	if result.Results != nil {
		fmt.Fprintf(&buf, "results: %d\n", len(result.Results))
		for _, name := range result.Results {
			fmt.Fprintf(&buf, "  - %s\n", name)
		}
	}
	buf.WriteString("\n")
	buf.WriteString(parsetree.FormatStructure(result.Query))
	buf.WriteString("\n\nWHERE ")
	buf.WriteString(result.Where)
	buf.WriteString("\n")

	return []byte(buf.String())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares the given result's snapshot against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Snapshot(result))
}
