package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealquery/internal/parsetree"
)

func runBuildCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewBuildCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "single_cuisine",
			args: []string{"--cuisine", "Thai"},
			want: "Thai\n",
		},
		{
			name: "all_slots",
			args: []string{
				"--cuisine", "Italian", "--cuisine", "French",
				"--ingredient", "Chicken",
				"--diet", "vegetarian",
				"--quick", "--easy",
				"--exclude-cuisine", "Thai",
				"--exclude-ingredient", "Mushrooms,Peppers",
			},
			want: "(Italian OR French) AND Chicken AND vegetarian AND quick AND easy AND NOT Thai AND NOT (Mushrooms OR Peppers)\n",
		},
		{
			name: "operators",
			args: []string{
				"--ingredient", "Chicken,Beef", "--ingredient-op", "or",
				"--cuisine", "Italian,French", "--cuisine-op", "AND",
				"--diet", "vegan", "--diet", "gluten_free", "--diet-op", "OR",
			},
			want: "(Italian AND French) AND (Chicken OR Beef) AND (vegan OR gluten_free)\n",
		},
		{
			name: "exclusion_wins_over_inclusion",
			args: []string{"--cuisine", "Thai", "--exclude-cuisine", "Thai"},
			want: "NOT Thai\n",
		},
		{
			name: "empty",
			args: nil,
			want: "No filters selected.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runBuildCommand(t, "text", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBuildCommand_TreeAndSQL(t *testing.T) {
	out, err := runBuildCommand(t, "text", "--cuisine", "Thai", "--quick", "--tree", "--sql")
	require.NoError(t, err)

	assert.Contains(t, out, "Thai AND quick\n")
	assert.Contains(t, out, parsetree.FormatStructure("Thai AND quick"))
	assert.Contains(t, out, "SELECT r.*, c.CategoryName, a.AreaName\n")
	assert.Contains(t, out, "WHERE a.AreaName = 'Thai' AND r.CookTimeMinutes <= 30\n")
}

func TestBuildCommand_JSON(t *testing.T) {
	out, err := runBuildCommand(t, "json", "--ingredient", "Chicken", "--ingredient", "Rice", "--tree")
	require.NoError(t, err)

	var result BuildResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "(Chicken AND Rice)", result.Query)
	assert.Equal(t, []string{"Chicken", "Rice"}, result.Selection.Ingredients.Include)
	require.NotNil(t, result.ParseTree)
	assert.Equal(t, []string{"Chicken", "Rice"}, result.ParseTree.Terms)
	assert.Empty(t, result.SQL)
}

func TestBuildCommand_InvalidOperator(t *testing.T) {
	out, err := runBuildCommand(t, "text", "--ingredient", "Chicken", "--ingredient-op", "XOR")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]")
	assert.Contains(t, out, `--ingredient-op: invalid operator "XOR"`)
}

func TestBuildCommand_RejectsArgs(t *testing.T) {
	_, err := runBuildCommand(t, "text", "Chicken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
