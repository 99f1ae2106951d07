package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/mealquery/internal/parsetree"
	"github.com/roach88/mealquery/internal/queryir"
	"github.com/roach88/mealquery/internal/querysql"
	"github.com/roach88/mealquery/internal/search"
	"github.com/roach88/mealquery/internal/selection"
	"github.com/roach88/mealquery/internal/store"
	"github.com/roach88/mealquery/internal/testutil"
	"github.com/roach88/mealquery/internal/vocab"
)

// Harness runs scenarios against one vocabulary.
type Harness struct {
	vocab      *vocab.Vocabulary
	translator *querysql.Translator
	classifier *querysql.Classifier
	logger     *slog.Logger
}

// New creates a Harness. A nil v uses vocab.Default.
func New(v *vocab.Vocabulary) *Harness {
	if v == nil {
		v = vocab.Default()
	}
	return &Harness{
		vocab:      v,
		translator: querysql.NewTranslator(v),
		classifier: querysql.NewClassifier(v),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
}

// Run executes a scenario with the built-in vocabulary.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Resolve the query from the selection, preset or literal
// 2. Analyze and translate it
// 3. Validate the execution path
// 4. If the scenario has recipes, search a fresh in-memory store
// 5. Check expectations
//
// An error is returned only when the scenario cannot run; failed
// expectations are reported in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	query, err := h.resolveQuery(scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Query = query
	result.Tree = parsetree.Analyze(query)
	result.Where = h.translator.Translate(query)
	result.Validation = queryir.Validate(h.classifier.Classify(query))

	if len(scenario.Recipes) > 0 {
		names, err := h.search(scenario, query)
		if err != nil {
			return nil, fmt.Errorf("failed to execute search: %w", err)
		}
		result.Results = names
	}

	for _, err := range EvaluateExpectations(result, scenario.Expect) {
		result.AddError(err.Error())
	}
	return result, nil
}

func (h *Harness) resolveQuery(scenario *Scenario) (string, error) {
	switch {
	case scenario.Selection != nil:
		state, err := scenario.Selection.State()
		if err != nil {
			return "", fmt.Errorf("invalid selection: %w", err)
		}
		return selection.Synthesize(state), nil
	case scenario.Preset != "":
		p, ok := h.vocab.Preset(scenario.Preset)
		if !ok {
			return "", fmt.Errorf("unknown preset %q", scenario.Preset)
		}
		return p.Query, nil
	default:
		return scenario.Query, nil
	}
}

// search imports the scenario's recipes into a fresh in-memory store and
// returns the names of the recipes query matches. A query the search
// service rejects matches nothing.
func (h *Harness) search(scenario *Scenario, query string) ([]string, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if _, err := st.ImportRecipes(ctx, scenario.Recipes); err != nil {
		return nil, err
	}

	svc := search.New(st,
		search.WithVocabulary(h.vocab),
		search.WithClock(testutil.NewStepClock(time.Millisecond)),
		search.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.Name)),
		search.WithLogger(h.logger),
	)

	resp, err := svc.Search(ctx, query)
	if errors.Is(err, search.ErrEmptyQuery) || errors.Is(err, search.ErrInvalidQuery) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, len(resp.Results))
	for i, r := range resp.Results {
		names[i] = r.Name
	}
	return names, nil
}
