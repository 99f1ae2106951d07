package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kw(text string, pos int) Keyword { return Keyword{Text: text, Pos: pos} }

func area(text string, pos int) Equals {
	return Equals{Term: Term{Text: text, Pos: pos}, Table: "areas", Column: "a.AreaName", Value: text, Scope: ScopeRecipe}
}

func tag(text string, pos int) TagMatch {
	return TagMatch{Term: Term{Text: text, Pos: pos}, Value: text}
}

func codes(issues []Issue) []string {
	out := []string{}
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestValidate_WellFormed(t *testing.T) {
	// (Italian OR French) AND NOT Thai
	expr := Expr{Nodes: []Node{
		kw("(", 0), area("Italian", 1), kw("OR", 9), area("French", 12), kw(")", 18),
		kw("AND", 20), kw("NOT", 24), area("Thai", 28),
	}}

	result := Validate(expr)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_Empty(t *testing.T) {
	result := Validate(Expr{})
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{IssueEmpty}, codes(result.Errors))
}

func TestValidate_StructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  []string
	}{
		{
			name:  "leading binary operator",
			nodes: []Node{kw("AND", 0), area("Thai", 4)},
			want:  []string{IssueMisplacedOp},
		},
		{
			name:  "double operator",
			nodes: []Node{area("Thai", 0), kw("AND", 5), kw("OR", 9), area("Greek", 12)},
			want:  []string{IssueMisplacedOp},
		},
		{
			name:  "trailing operator",
			nodes: []Node{area("Thai", 0), kw("OR", 5)},
			want:  []string{IssueMissingOperand},
		},
		{
			name:  "dangling not",
			nodes: []Node{area("Thai", 0), kw("AND", 5), kw("NOT", 9)},
			want:  []string{IssueMissingOperand},
		},
		{
			name:  "unclosed group",
			nodes: []Node{kw("(", 0), area("Thai", 1)},
			want:  []string{IssueUnbalancedParen},
		},
		{
			name:  "unexpected close",
			nodes: []Node{area("Thai", 0), kw(")", 4)},
			want:  []string{IssueUnbalancedParen},
		},
		{
			name:  "empty group",
			nodes: []Node{kw("(", 0), kw(")", 1)},
			want:  []string{IssueEmptyGroup},
		},
		{
			name:  "operator before close",
			nodes: []Node{kw("(", 0), area("Thai", 1), kw("OR", 6), kw(")", 9)},
			want:  []string{IssueMissingOperand},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(Expr{Nodes: tt.nodes})
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.want, codes(result.Errors))
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	// Olive Oil AND romantic
	expr := Expr{Nodes: []Node{
		tag("Olive", 0), tag("Oil", 6), kw("AND", 10), tag("romantic", 14),
	}}

	result := Validate(expr)

	assert.True(t, result.IsValid, "warnings do not invalidate")
	assert.Equal(t,
		[]string{IssueUnclassifiedTerm, IssueImplicitAnd, IssueUnclassifiedTerm, IssueUnclassifiedTerm},
		codes(result.Warnings))
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, 0, result.Warnings[0].Pos)
}

func TestIssue_String(t *testing.T) {
	assert.Equal(t, "unexpected_x at 3: boom", Issue{Code: "unexpected_x", Message: "boom", Pos: 3}.String())
	assert.Equal(t, "empty_query: none", Issue{Code: "empty_query", Message: "none", Pos: -1}.String())
}

func TestExpr_Predicates(t *testing.T) {
	expr := Expr{Nodes: []Node{area("Thai", 0), kw("OR", 5), tag("spicy", 8)}}

	preds := expr.Predicates()
	require.Len(t, preds, 2)
	assert.Equal(t, "Thai", preds[0].Source().Text)
	assert.Equal(t, "spicy", preds[1].Source().Text)
}
