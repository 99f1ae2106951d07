package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mealquery/internal/search"
	"github.com/roach88/mealquery/internal/store"
	"github.com/roach88/mealquery/internal/testutil"
)

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.ImportRecipes(context.Background(), []store.Recipe{
		{ID: "r1", Name: "Pad Thai", Area: "Thai", Ingredients: []string{"Rice", "Lime"}, CookTimeMinutes: 20},
		{ID: "r2", Name: "Lasagne", Area: "Italian", Category: "Pasta", Ingredients: []string{"Beef", "Cheese"}, CookTimeMinutes: 90},
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := search.New(st,
		search.WithClock(testutil.NewStepClock(time.Millisecond)),
		search.WithLogger(logger),
	)
	return NewRouter(svc, logger)
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestUnknownRoute(t *testing.T) {
	h := setupTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/other", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDropdownOptions(t *testing.T) {
	h := setupTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/recipes/dropdown-options", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decode[map[string][]string](t, rr)
	assert.Contains(t, body["areas"], "Thai")
	assert.Contains(t, body["categories"], "Pasta")
	assert.Contains(t, body["ingredients"], "Chicken")
}

func TestSearch(t *testing.T) {
	h := setupTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/recipes/search", `{"query": "Thai OR Pasta"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decode[map[string]any](t, rr)
	assert.Equal(t, "Thai OR Pasta", body["query"])
	assert.Equal(t, float64(2), body["resultCount"])
	assert.Equal(t, "1ms", body["executionTime"])
	assert.Contains(t, body["generatedSQL"], "WHERE a.AreaName = 'Thai' OR c.CategoryName = 'Pasta'")

	results := body["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "Lasagne", results[0].(map[string]any)["name"])

	tree := body["parseTree"].(map[string]any)
	assert.Equal(t, "BooleanQuery", tree["type"])
	assert.Equal(t, []any{"Thai", "Pasta"}, tree["terms"])
}

func TestSearch_BadRequests(t *testing.T) {
	h := setupTestRouter(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"query":`, "invalid request body"},
		{"empty", `{"query": "  "}`, "query is required"},
		{"invalid", `{"query": "Thai AND"}`, "invalid query: missing_operand: query ends with an operator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/recipes/search", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.want, decode[map[string]string](t, rr)["error"])
		})
	}
}

func TestValidate(t *testing.T) {
	h := setupTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/recipes/validate?query="+url.QueryEscape("(Thai OR Italian) AND NOT quick"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[map[string]any](t, rr)
	assert.Equal(t, true, body["isValid"])
	assert.NotContains(t, body, "errorMessage")
	assert.Equal(t, true, body["parseTree"].(map[string]any)["hasNot"])

	rr = do(t, h, http.MethodGet, "/api/recipes/validate?query="+url.QueryEscape("(Thai"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode[map[string]any](t, rr)
	assert.Equal(t, false, body["isValid"])
	assert.Equal(t, "invalid query: unbalanced_paren at 0: unclosed (", body["errorMessage"])
}

func TestPresets(t *testing.T) {
	h := setupTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/recipes/presets", "")
	require.Equal(t, http.StatusOK, rr.Code)

	presets := decode[[]map[string]string](t, rr)
	require.Len(t, presets, 3)
	assert.Equal(t, "Weeknight", presets[1]["name"])
	assert.Equal(t, "(quick OR easy) AND (chicken OR pasta) AND NOT (nuts OR shellfish)", presets[1]["query"])
}

func TestRecipe(t *testing.T) {
	h := setupTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/recipes/r1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	recipe := decode[store.Recipe](t, rr)
	assert.Equal(t, "Pad Thai", recipe.Name)
	assert.Equal(t, []string{"Rice", "Lime"}, recipe.Ingredients)

	rr = do(t, h, http.MethodGet, "/api/recipes/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "recipe not found", decode[map[string]string](t, rr)["error"])
}

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	var logs strings.Builder
	h := &handler{logger: slog.New(slog.NewTextHandler(&logs, nil))}

	rr := httptest.NewRecorder()
	h.writeJSON(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logs.String(), "encode response failed")
	assert.Contains(t, logs.String(), "unsupported type")
}
