package selection

import (
	"fmt"
	"slices"
	"strings"
)

// Operator combines the values of an included group.
type Operator string

const (
	And Operator = "AND"
	Or  Operator = "OR"
)

// Mode selects which list of a group receives new values.
type Mode string

const (
	Include Mode = "include"
	Exclude Mode = "exclude"
)

// InvalidValueError reports an operator or mode that is not recognized.
type InvalidValueError struct {
	Kind  string // "operator" or "mode"
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

// ParseOperator parses "and"/"or" in any case.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(And):
		return And, nil
	case string(Or):
		return Or, nil
	}
	return "", &InvalidValueError{Kind: "operator", Value: s}
}

// ParseMode parses "include"/"exclude" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Include):
		return Include, nil
	case string(Exclude):
		return Exclude, nil
	}
	return "", &InvalidValueError{Kind: "mode", Value: s}
}

// Group is an include/exclude pair of ordered, disjoint value lists.
type Group struct {
	Include  []string `json:"include"`
	Exclude  []string `json:"exclude"`
	Mode     Mode     `json:"mode"`
	Operator Operator `json:"operator"`
}

// Add puts value into the list selected by g.Mode.
func (g *Group) Add(value string) {
	g.AddTo(g.Mode, value)
}

// AddTo puts value into the given list and removes it from the other one.
// Blank values are ignored and a value already present is not duplicated.
func (g *Group) AddTo(mode Mode, value string) {
	if value == "" {
		return
	}
	list, other := g.lists(mode)
	*other = remove(*other, value)
	if !slices.Contains(*list, value) {
		*list = append(*list, value)
	}
}

// Remove deletes value from the given list.
func (g *Group) Remove(mode Mode, value string) {
	list, _ := g.lists(mode)
	*list = remove(*list, value)
}

// SetMode changes which list Add targets.
func (g *Group) SetMode(mode Mode) {
	g.Mode = mode
}

// SetOperator changes how included values are combined.
func (g *Group) SetOperator(op Operator) {
	g.Operator = op
}

// Clear empties both lists. Mode and operator are kept.
func (g *Group) Clear() {
	g.Include = nil
	g.Exclude = nil
}

func (g *Group) lists(mode Mode) (list, other *[]string) {
	if mode == Exclude {
		return &g.Exclude, &g.Include
	}
	return &g.Include, &g.Exclude
}

func remove(values []string, value string) []string {
	return slices.DeleteFunc(values, func(v string) bool { return v == value })
}

// State is the structured filter being composed. It is never persisted.
type State struct {
	Cuisines     Group    `json:"cuisines"`
	Ingredients  Group    `json:"ingredients"`
	Diets        []string `json:"diets"`
	DietOperator Operator `json:"dietOperator"`
	Quick        bool     `json:"quick"`
	Easy         bool     `json:"easy"`
}

// New returns an empty State with the default operators: cuisines are
// OR-combined, ingredients and diets AND-combined.
func New() *State {
	return &State{
		Cuisines:     Group{Mode: Include, Operator: Or},
		Ingredients:  Group{Mode: Include, Operator: And},
		DietOperator: And,
	}
}

// AddDiet appends a diet unless it is blank or already selected.
func (s *State) AddDiet(diet string) {
	if diet == "" || slices.Contains(s.Diets, diet) {
		return
	}
	s.Diets = append(s.Diets, diet)
}

// RemoveDiet deletes a diet.
func (s *State) RemoveDiet(diet string) {
	s.Diets = remove(s.Diets, diet)
}

// SetDietOperator changes how diets are combined.
func (s *State) SetDietOperator(op Operator) {
	s.DietOperator = op
}

// SetQuick toggles the quick flag.
func (s *State) SetQuick(quick bool) {
	s.Quick = quick
}

// SetEasy toggles the easy flag.
func (s *State) SetEasy(easy bool) {
	s.Easy = easy
}

// Clear drops every selection. Modes and operators are kept.
func (s *State) Clear() {
	s.Cuisines.Clear()
	s.Ingredients.Clear()
	s.Diets = nil
	s.Quick = false
	s.Easy = false
}

// IsEmpty reports whether nothing is selected.
func (s *State) IsEmpty() bool {
	return len(s.Cuisines.Include) == 0 && len(s.Cuisines.Exclude) == 0 &&
		len(s.Ingredients.Include) == 0 && len(s.Ingredients.Exclude) == 0 &&
		len(s.Diets) == 0 && !s.Quick && !s.Easy
}
