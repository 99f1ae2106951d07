package store

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recipe is one stored recipe. The first eight fields serialize with the
// keys web clients already read; the rest are the attributes the keyword
// predicates filter on.
type Recipe struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Thumbnail    string   `json:"thumbnail" yaml:"thumbnail"`
	Category     string   `json:"category" yaml:"category"`
	Area         string   `json:"area" yaml:"area"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Tags         []string `json:"tags" yaml:"tags"`

	Vegetarian      bool   `json:"isVegetarian" yaml:"vegetarian"`
	Vegan           bool   `json:"isVegan" yaml:"vegan"`
	GlutenFree      bool   `json:"isGlutenFree" yaml:"gluten_free"`
	CookTimeMinutes int    `json:"cookTimeMinutes" yaml:"cook_time_minutes"`
	Difficulty      string `json:"difficultyLevel" yaml:"difficulty"`
}

// recipeFile is the YAML layout read by LoadRecipes.
type recipeFile struct {
	Recipes []Recipe `yaml:"recipes"`
}

// LoadRecipes reads a YAML file with a top-level "recipes" list.
// Unknown fields are rejected.
func LoadRecipes(path string) ([]Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file recipeFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("load recipes %s: %w", path, err)
	}
	return file.Recipes, nil
}

// encodeTags stores tags as ",tag1,tag2," so that LIKE '%,tag,%' matches
// whole tags only. Commas inside a tag are dropped.
func encodeTags(tags []string) string {
	var b strings.Builder
	b.WriteByte(',')
	for _, t := range tags {
		t = strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		if t == "" {
			continue
		}
		b.WriteString(t)
		b.WriteByte(',')
	}
	return b.String()
}

// decodeTags is the inverse of encodeTags. It never returns nil.
func decodeTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(strings.Trim(s, ","), ",") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
