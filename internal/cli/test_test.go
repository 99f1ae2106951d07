package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	passingScenario = `name: thai_quick
description: Area and flag predicates
query: "Thai AND quick"
expect:
  terms: [Thai, quick]
  where: "a.AreaName = 'Thai' AND r.CookTimeMinutes <= 30"
  valid: true
`
	failingScenario = `name: wrong_where
description: Expects the wrong fragment
query: "Thai"
expect:
  where: "a.AreaName = 'Italian'"
`
)

func runTestCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	return runCommand(t, NewTestCommand(&RootOptions{Format: format}), args...)
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runTestCommand(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := runTestCommand(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := runTestCommand(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := runTestCommand(t, "json", t.TempDir())
	require.NoError(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Scenarios)
}

func TestTestCommandPassingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "thai_quick.yaml", passingScenario)

	out, err := runTestCommand(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ thai_quick\n")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "thai_quick.yaml", passingScenario)
	writeFile(t, dir, "wrong_where.yaml", failingScenario)

	out, err := runTestCommand(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, result.Scenarios, 2)
	failed := result.Scenarios[1]
	assert.Equal(t, "wrong_where", failed.Name)
	assert.Equal(t, "Thai", failed.Query)
	require.Len(t, failed.Errors, 1)
	assert.Contains(t, failed.Errors[0], "Assertion failed: where")
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "typo.yaml", "name: typo\ndescription: d\nquery: quick\nexpects:\n  valid: true\n")

	out, err := runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ typo.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "thai_quick.yaml", passingScenario)
	writeFile(t, dir, "wrong_where.yaml", failingScenario)

	out, err := runTestCommand(t, "text", dir, "--filter", "thai*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "wrong_where")

	_, err = runTestCommand(t, "text", dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandGoldenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "thai_quick.yaml", passingScenario)
	goldenPath := filepath.Join(dir, "golden", "thai_quick.golden")

	out, err := runTestCommand(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ thai_quick (golden updated)")

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `query: "Thai AND quick"`)
	assert.Contains(t, string(golden), "WHERE a.AreaName = 'Thai' AND r.CookTimeMinutes <= 30\n")

	// Unchanged output matches the golden file.
	_, err = runTestCommand(t, "text", dir)
	require.NoError(t, err)

	// A stale golden file fails the scenario even though its expectations hold.
	require.NoError(t, os.WriteFile(goldenPath, []byte("stale\n"), 0644))
	out, err = runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	scenariosDir := filepath.Join("..", "harness", "testdata", "scenarios")
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		t.Skip("harness scenarios not found")
	}

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scenariosDir})

	require.NoError(t, cmd.Execute(), buf.String())

	var result TestResult
	decodeResponse(t, buf.String(), &result)
	assert.Equal(t, result.Total, result.Passed)
	assert.Zero(t, result.Failed)
}
