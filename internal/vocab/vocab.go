// Package vocab holds the vocabulary tables used to classify query terms,
// the dropdown options offered to clients, and the preset queries.
//
// Tables are ordered. Classification runs them first to last, and the order
// decides which table claims a term that appears in more than one of them
// (vegetarian is both a category and a diet flag).
package vocab

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind selects the predicate shape a table produces.
type Kind string

const (
	// KindEquals produces "<column> = '<term>'".
	KindEquals Kind = "equals"
	// KindLike produces "<column> LIKE '%<term>%'".
	KindLike Kind = "like"
	// KindFixed produces "<column> <op> <value>" whatever the term.
	KindFixed Kind = "fixed"
)

// Scope tells the executing compiler which rows a table's column lives on.
type Scope string

const (
	ScopeRecipe     Scope = "recipe"
	ScopeIngredient Scope = "ingredient"
)

// Table maps a list of terms to one predicate template.
type Table struct {
	Name   string   `json:"name" yaml:"name"`
	Kind   Kind     `json:"kind" yaml:"kind"`
	Column string   `json:"column" yaml:"column"`
	Terms  []string `json:"terms" yaml:"terms"`
	Scope  Scope    `json:"scope,omitempty" yaml:"scope,omitempty"`

	// Op and Value are used by KindFixed only. Value is SQL text
	// (e.g. "1", "30", "'Easy'") and comes from configuration, never
	// from a query.
	Op    string `json:"op,omitempty" yaml:"op,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Matches reports whether term is one of the table's terms, ignoring case.
func (t Table) Matches(term string) bool {
	return slices.ContainsFunc(t.Terms, func(v string) bool {
		return strings.EqualFold(v, term)
	})
}

// Template renders the display predicate for term.
func (t Table) Template(term string) string {
	switch t.Kind {
	case KindLike:
		return fmt.Sprintf("%s LIKE '%%%s%%'", t.Column, term)
	case KindFixed:
		return fmt.Sprintf("%s %s %s", t.Column, t.Op, t.Value)
	default:
		return fmt.Sprintf("%s = '%s'", t.Column, term)
	}
}

// Options are the dropdown lists offered to clients.
type Options struct {
	Categories  []string `json:"categories" yaml:"categories"`
	Areas       []string `json:"areas" yaml:"areas"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Diets       []string `json:"diets,omitempty" yaml:"diets,omitempty"`
}

// Preset is a named, ready-made query.
type Preset struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Query       string `json:"query" yaml:"query"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Vocabulary is the read-only configuration shared by the translator,
// the classifier and the API.
type Vocabulary struct {
	Tables  []Table  `json:"tables" yaml:"tables"`
	Options Options  `json:"options" yaml:"options"`
	Presets []Preset `json:"presets" yaml:"presets"`
}

// Table returns the table with the given name.
func (v *Vocabulary) Table(name string) (Table, bool) {
	for _, t := range v.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Classify returns the first table, in order, that contains term.
func (v *Vocabulary) Classify(term string) (Table, bool) {
	for _, t := range v.Tables {
		if t.Matches(term) {
			return t, true
		}
	}
	return Table{}, false
}

// Preset returns the preset with the given name, ignoring case.
func (v *Vocabulary) Preset(name string) (Preset, bool) {
	for _, p := range v.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Validate checks that every table is usable.
func (v *Vocabulary) Validate() error {
	seen := make(map[string]bool, len(v.Tables))
	for i, t := range v.Tables {
		if t.Name == "" {
			return fmt.Errorf("tables[%d]: name is required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("tables[%d]: duplicate table %q", i, t.Name)
		}
		seen[t.Name] = true
		if t.Column == "" {
			return fmt.Errorf("tables[%d] %s: column is required", i, t.Name)
		}
		if len(t.Terms) == 0 {
			return fmt.Errorf("tables[%d] %s: terms list is required and must be non-empty", i, t.Name)
		}
		for j, term := range t.Terms {
			if strings.TrimSpace(term) == "" {
				return fmt.Errorf("tables[%d] %s: terms[%d] is blank", i, t.Name, j)
			}
		}
		switch t.Kind {
		case KindEquals, KindLike:
		case KindFixed:
			if t.Op == "" || t.Value == "" {
				return fmt.Errorf("tables[%d] %s: fixed tables need op and value", i, t.Name)
			}
		default:
			return fmt.Errorf("tables[%d] %s: unknown kind %q", i, t.Name, t.Kind)
		}
		switch t.Scope {
		case "", ScopeRecipe, ScopeIngredient:
		default:
			return fmt.Errorf("tables[%d] %s: unknown scope %q", i, t.Name, t.Scope)
		}
	}
	for i, p := range v.Presets {
		if p.Name == "" || strings.TrimSpace(p.Query) == "" {
			return fmt.Errorf("presets[%d]: name and query are required", i)
		}
	}
	return nil
}

// normalize NFC-normalizes every term and option so that composed and
// decomposed spellings compare equal.
func (v *Vocabulary) normalize() {
	for i := range v.Tables {
		nfc(v.Tables[i].Terms)
		if v.Tables[i].Scope == "" {
			v.Tables[i].Scope = ScopeRecipe
		}
	}
	nfc(v.Options.Categories)
	nfc(v.Options.Areas)
	nfc(v.Options.Ingredients)
	nfc(v.Options.Diets)
}

func nfc(values []string) {
	for i, s := range values {
		values[i] = norm.NFC.String(strings.TrimSpace(s))
	}
}
