package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mealquery/internal/selection"
	"github.com/roach88/mealquery/internal/store"
)

// Scenario defines a query scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Exactly one of Selection, Query and Preset provides the query.
	Selection *SelectionSpec `yaml:"selection,omitempty"`
	Query     string         `yaml:"query,omitempty"`
	Preset    string         `yaml:"preset,omitempty"`

	// Recipes are imported into a fresh store before the query runs.
	// Required by Expect.Results.
	Recipes []store.Recipe `yaml:"recipes,omitempty"`

	Expect Expectation `yaml:"expect"`
}

// GroupSpec is the YAML form of a selection.Group.
type GroupSpec struct {
	Include  []string `yaml:"include,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
	Operator string   `yaml:"operator,omitempty"`
}

// SelectionSpec is the YAML form of a selection.State.
type SelectionSpec struct {
	Cuisines     GroupSpec `yaml:"cuisines,omitempty"`
	Ingredients  GroupSpec `yaml:"ingredients,omitempty"`
	Diets        []string  `yaml:"diets,omitempty"`
	DietOperator string    `yaml:"diet_operator,omitempty"`
	Quick        bool      `yaml:"quick,omitempty"`
	Easy         bool      `yaml:"easy,omitempty"`
}

// Expectation lists the checked outputs. A nil field is not checked.
type Expectation struct {
	Query          *string  `yaml:"query,omitempty"`
	Terms          []string `yaml:"terms,omitempty"`
	Operators      []string `yaml:"operators,omitempty"`
	HasParentheses *bool    `yaml:"has_parentheses,omitempty"`
	HasNot         *bool    `yaml:"has_not,omitempty"`
	Where          *string  `yaml:"where,omitempty"`
	Valid          *bool    `yaml:"valid,omitempty"`
	Results        []string `yaml:"results,omitempty"`
}

func (e Expectation) empty() bool {
	return e.Query == nil && e.Terms == nil && e.Operators == nil &&
		e.HasParentheses == nil && e.HasNot == nil && e.Where == nil &&
		e.Valid == nil && e.Results == nil
}

// State builds the selection state described by s. Groups start from the
// defaults of selection.New; values are added in file order.
func (s *SelectionSpec) State() (*selection.State, error) {
	st := selection.New()

	if err := applyGroup(&st.Cuisines, s.Cuisines, "cuisines"); err != nil {
		return nil, err
	}
	if err := applyGroup(&st.Ingredients, s.Ingredients, "ingredients"); err != nil {
		return nil, err
	}
	for _, d := range s.Diets {
		st.AddDiet(d)
	}
	if s.DietOperator != "" {
		op, err := selection.ParseOperator(s.DietOperator)
		if err != nil {
			return nil, fmt.Errorf("diet_operator: %w", err)
		}
		st.SetDietOperator(op)
	}
	st.SetQuick(s.Quick)
	st.SetEasy(s.Easy)
	return st, nil
}

func applyGroup(g *selection.Group, spec GroupSpec, field string) error {
	if spec.Operator != "" {
		op, err := selection.ParseOperator(spec.Operator)
		if err != nil {
			return fmt.Errorf("%s.operator: %w", field, err)
		}
		g.SetOperator(op)
	}
	for _, v := range spec.Include {
		g.AddTo(selection.Include, v)
	}
	for _, v := range spec.Exclude {
		g.AddTo(selection.Exclude, v)
	}
	return nil
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every .yaml and .yml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	sources := 0
	if s.Selection != nil {
		sources++
	}
	if s.Query != "" {
		sources++
	}
	if s.Preset != "" {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of selection, query or preset is required")
	}

	if s.Expect.empty() {
		return fmt.Errorf("expect must check at least one field")
	}

	if s.Expect.Results != nil && len(s.Recipes) == 0 {
		return fmt.Errorf("expect.results requires recipes")
	}

	for i, r := range s.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("recipes[%d]: name is required", i)
		}
	}

	return nil
}
