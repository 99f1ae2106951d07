package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Field    string // Expectation key, e.g. "where"
	Expected string // Human-readable expected value
	Actual   string // Human-readable actual value
	Query    string // Query under test, for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "  Query: %q", e.Query)
	return buf.String()
}

// EvaluateExpectations checks every expectation present in expect against
// result and returns one error per mismatch, in field order.
func EvaluateExpectations(result *Result, expect Expectation) []error {
	var errs []error
	fail := func(field, expected, actual string) {
		errs = append(errs, &AssertionError{Field: field, Expected: expected, Actual: actual, Query: result.Query})
	}

	terms, operators := []string{}, []string{}
	var hasParens, hasNot bool
	if result.Tree != nil {
		terms, operators = result.Tree.Terms, result.Tree.Operators
		hasParens, hasNot = result.Tree.HasParentheses, result.Tree.HasNot
	}

	if expect.Query != nil && *expect.Query != result.Query {
		fail("query", fmt.Sprintf("%q", *expect.Query), fmt.Sprintf("%q", result.Query))
	}
	if expect.Terms != nil && !slices.Equal(expect.Terms, terms) {
		fail("terms", formatList(expect.Terms), formatList(terms))
	}
	if expect.Operators != nil && !slices.Equal(expect.Operators, operators) {
		fail("operators", formatList(expect.Operators), formatList(operators))
	}
	if expect.HasParentheses != nil && *expect.HasParentheses != hasParens {
		fail("has_parentheses", fmt.Sprint(*expect.HasParentheses), fmt.Sprint(hasParens))
	}
	if expect.HasNot != nil && *expect.HasNot != hasNot {
		fail("has_not", fmt.Sprint(*expect.HasNot), fmt.Sprint(hasNot))
	}
	if expect.Where != nil && *expect.Where != result.Where {
		fail("where", fmt.Sprintf("%q", *expect.Where), fmt.Sprintf("%q", result.Where))
	}
	if expect.Valid != nil && *expect.Valid != result.Validation.IsValid {
		actual := fmt.Sprint(result.Validation.IsValid)
		if len(result.Validation.Errors) > 0 {
			actual += " (" + result.Validation.Errors[0].String() + ")"
		}
		fail("valid", fmt.Sprint(*expect.Valid), actual)
	}
	if expect.Results != nil && !slices.Equal(expect.Results, result.Results) {
		fail("results", formatList(expect.Results), formatList(result.Results))
	}

	return errs
}

func formatList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
