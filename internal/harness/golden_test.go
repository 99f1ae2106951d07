package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario under testdata/scenarios and compares
// each snapshot with its golden file.
func TestScenarios(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario failed:\n%v", result.Errors)
		})
	}
}

func TestSnapshot(t *testing.T) {
	result, err := Run(&Scenario{
		Name:   "snap",
		Query:  "Thai brunch",
		Expect: Expectation{Valid: boolPtr(true)},
	})
	require.NoError(t, err)

	want := `query: "Thai brunch"
valid: true
warning: implicit_and at 5: "brunch" follows an operand; treated as AND
warning: unclassified_term at 5: "brunch" is not in any vocabulary table; matched against tags

Query Structure:

└── Thai brunch

WHERE a.AreaName = 'Thai' brunch
`
	assert.Equal(t, want, string(Snapshot(result)))
}
