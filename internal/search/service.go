package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/mealquery/internal/parsetree"
	"github.com/roach88/mealquery/internal/queryir"
	"github.com/roach88/mealquery/internal/querysql"
	"github.com/roach88/mealquery/internal/store"
	"github.com/roach88/mealquery/internal/vocab"
)

var (
	// ErrEmptyQuery is returned for a blank query.
	ErrEmptyQuery = errors.New("query is required")

	// ErrInvalidQuery is wrapped by QueryError.
	ErrInvalidQuery = errors.New("invalid query")
)

// QueryError reports the structural errors that stop a query from
// executing.
type QueryError struct {
	Query  string
	Issues []queryir.Issue
}

func (e *QueryError) Error() string {
	if len(e.Issues) == 0 {
		return ErrInvalidQuery.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidQuery, e.Issues[0])
}

func (e *QueryError) Unwrap() error {
	return ErrInvalidQuery
}

// Recipes is the store the service reads from. *store.Store implements it.
type Recipes interface {
	SearchRecipes(ctx context.Context, where string, params []any) ([]store.Recipe, error)
	GetRecipe(ctx context.Context, id string) (store.Recipe, error)
}

// Response is the result of Search.
type Response struct {
	Query         string               `json:"query"`
	Results       []store.Recipe       `json:"results"`
	ParseTree     *parsetree.ParseTree `json:"parseTree"`
	ExecutionTime string               `json:"executionTime"`
	ResultCount   int                  `json:"resultCount"`
	GeneratedSQL  string               `json:"generatedSQL"`
	Warnings      []queryir.Issue      `json:"warnings,omitempty"`
}

// Validation is the result of Validate.
type Validation struct {
	Query        string               `json:"query"`
	IsValid      bool                 `json:"isValid"`
	ErrorMessage string               `json:"errorMessage,omitempty"`
	ParseTree    *parsetree.ParseTree `json:"parseTree,omitempty"`
	Errors       []queryir.Issue      `json:"errors,omitempty"`
	Warnings     []queryir.Issue      `json:"warnings,omitempty"`
}

// Service runs queries against a recipe store.
// A Service is safe for concurrent use.
type Service struct {
	recipes    Recipes
	vocab      *vocab.Vocabulary
	translator *querysql.Translator
	classifier *querysql.Classifier
	compiler   *querysql.SQLCompiler
	clock      Clock
	ids        IDGenerator
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithVocabulary replaces the built-in vocabulary.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return func(s *Service) { s.vocab = v }
}

// WithClock sets the clock used to measure execution time.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithIDGenerator sets the request ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service reading from recipes. recipes may be nil for
// services that only validate and translate.
func New(recipes Recipes, opts ...Option) *Service {
	s := &Service{
		recipes: recipes,
		clock:   systemClock{},
		ids:     UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.vocab == nil {
		s.vocab = vocab.Default()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.translator = querysql.NewTranslator(s.vocab)
	s.classifier = querysql.NewClassifier(s.vocab)
	s.compiler = querysql.NewSQLCompiler()
	return s
}

// Search executes query and returns the matching recipes together with
// the parse tree and the display statement.
//
// A blank query returns ErrEmptyQuery. A structurally invalid query
// returns a *QueryError wrapping ErrInvalidQuery.
func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if s.recipes == nil {
		return nil, errors.New("search: no recipe store configured")
	}

	log := s.logger.With("request_id", s.ids.Generate())
	start := s.clock.Now()

	tokens := parsetree.Tokenize(query)
	expr := s.classifier.ClassifyTokens(query, tokens)
	result := queryir.Validate(expr)
	if !result.IsValid {
		log.Debug("query rejected", "query", query, "errors", len(result.Errors))
		return nil, &QueryError{Query: query, Issues: result.Errors}
	}

	where, params, err := s.compiler.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	log.Debug("query compiled", "where", where, "params", len(params))

	recipes, err := s.recipes.SearchRecipes(ctx, where, params)
	if err != nil {
		log.Error("search failed", "query", query, "error", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	elapsed := s.clock.Now().Sub(start)
	log.Info("search completed",
		"query", query,
		"results", len(recipes),
		"elapsed", elapsed,
	)

	return &Response{
		Query:         query,
		Results:       recipes,
		ParseTree:     parsetree.Analyze(query),
		ExecutionTime: elapsed.String(),
		ResultCount:   len(recipes),
		GeneratedSQL:  s.translator.Statement(query),
		Warnings:      result.Warnings,
	}, nil
}

// Validate checks query without executing it.
func (s *Service) Validate(query string) Validation {
	v := Validation{Query: query}
	if strings.TrimSpace(query) == "" {
		v.ErrorMessage = ErrEmptyQuery.Error()
		return v
	}

	v.ParseTree = parsetree.Analyze(query)
	result := queryir.Validate(s.classifier.Classify(query))
	v.IsValid = result.IsValid
	v.Errors = result.Errors
	v.Warnings = result.Warnings
	if !result.IsValid {
		v.ErrorMessage = (&QueryError{Query: query, Issues: result.Errors}).Error()
	}
	return v
}

// Translate returns the display WHERE fragment for query.
func (s *Service) Translate(query string) string {
	return s.translator.Translate(query)
}

// Statement returns the display statement for query, or "" when blank.
func (s *Service) Statement(query string) string {
	return s.translator.Statement(query)
}

// Recipe returns one recipe. Unknown IDs return an error wrapping
// store.ErrNotFound.
func (s *Service) Recipe(ctx context.Context, id string) (store.Recipe, error) {
	if s.recipes == nil {
		return store.Recipe{}, errors.New("recipe: no recipe store configured")
	}
	return s.recipes.GetRecipe(ctx, id)
}

// Options returns the dropdown options.
func (s *Service) Options() vocab.Options {
	return s.vocab.Options
}

// Presets returns the preset queries.
func (s *Service) Presets() []vocab.Preset {
	return s.vocab.Presets
}
