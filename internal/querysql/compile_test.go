package querysql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealquery/internal/queryir"
)

func compileQuery(t *testing.T, query string) (string, []any, error) {
	t.Helper()
	return NewSQLCompiler().Compile(NewClassifier(nil).Classify(query))
}

func TestCompile_Empty(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(queryir.Expr{})
	require.NoError(t, err)
	assert.Equal(t, "1 = 1", sql)
	assert.Nil(t, params)
}

func TestCompile_GroupAndNot(t *testing.T) {
	sql, params, err := compileQuery(t, "(Italian OR French) AND NOT quick")
	require.NoError(t, err)

	assert.Equal(t,
		"((COALESCE(a.AreaName, '') = ? COLLATE NOCASE) OR (COALESCE(a.AreaName, '') = ? COLLATE NOCASE)) AND NOT (r.CookTimeMinutes <= 30)",
		sql)
	assert.Equal(t, []any{"Italian", "French"}, params)
}

func TestCompile_IngredientsUseExists(t *testing.T) {
	sql, params, err := compileQuery(t, "Chicken AND Rice")
	require.NoError(t, err)

	want := "EXISTS (SELECT 1 FROM RecipeIngredients ri JOIN Ingredients i ON ri.IngredientId = i.Id " +
		`WHERE ri.RecipeId = r.Id AND i.IngredientName LIKE ? ESCAPE '\')`
	assert.Equal(t, want+" AND "+want, sql)
	assert.Equal(t, []any{"%Chicken%", "%Rice%"}, params)
}

func TestCompile_TagMatch(t *testing.T) {
	sql, params, err := compileQuery(t, "brunch")
	require.NoError(t, err)

	assert.Equal(t, `(r.Tags LIKE ? ESCAPE '\')`, sql)
	assert.Equal(t, []any{"%,brunch,%"}, params)
}

func TestCompile_ImplicitAnd(t *testing.T) {
	sql, params, err := compileQuery(t, "Thai quick")
	require.NoError(t, err)
	assert.Equal(t, "(COALESCE(a.AreaName, '') = ? COLLATE NOCASE) AND (r.CookTimeMinutes <= 30)", sql)
	assert.Equal(t, []any{"Thai"}, params)

	sql, _, err = compileQuery(t, "Thai NOT quick")
	require.NoError(t, err)
	assert.Equal(t, "(COALESCE(a.AreaName, '') = ? COLLATE NOCASE) AND NOT (r.CookTimeMinutes <= 30)", sql)

	sql, _, err = compileQuery(t, "(easy) (quick)")
	require.NoError(t, err)
	assert.Equal(t, "((r.DifficultyLevel = 'Easy')) AND ((r.CookTimeMinutes <= 30))", sql)
}

func TestCompile_NeverInterpolates(t *testing.T) {
	sql, params, err := compileQuery(t, "Robert');DROP AND Thai")
	require.NoError(t, err)

	assert.NotContains(t, sql, "DROP")
	assert.NotContains(t, sql, "Robert")
	assert.Equal(t, []any{"%,Robert');DROP,%", "Thai"}, params)
	assert.Equal(t, 2, strings.Count(sql, "?"))
}

func TestCompile_EscapesLikeWildcards(t *testing.T) {
	_, params, err := compileQuery(t, "100%_juice")
	require.NoError(t, err)
	assert.Equal(t, []any{`%,100\%\_juice,%`}, params)
}

func TestCompile_Invalid(t *testing.T) {
	tests := []struct {
		query string
		code  string
	}{
		{"AND Thai", queryir.IssueMisplacedOp},
		{"Thai OR", queryir.IssueMissingOperand},
		{"(Thai", queryir.IssueUnbalancedParen},
		{"Thai)", queryir.IssueUnbalancedParen},
		{"()", queryir.IssueEmptyGroup},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			sql, params, err := compileQuery(t, tt.query)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidExpr)
			assert.Contains(t, err.Error(), tt.code)
			assert.Empty(t, sql)
			assert.Nil(t, params)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
