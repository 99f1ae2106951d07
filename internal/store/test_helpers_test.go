package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRecipes is a small fixture set covering every filter attribute.
func testRecipes() []Recipe {
	return []Recipe{
		{
			ID: "r-teriyaki", Name: "Teriyaki Chicken", Category: "Chicken", Area: "Japanese",
			Ingredients: []string{"Chicken", "Rice", "Soy Sauce"}, Tags: []string{"Meat", "Quick"},
			CookTimeMinutes: 25, Difficulty: "Easy",
		},
		{
			ID: "r-risotto", Name: "Mushroom Risotto", Category: "Vegetarian", Area: "Italian",
			Ingredients: []string{"Rice", "Mushrooms", "Butter"}, Tags: []string{"Comfort"},
			Vegetarian: true, GlutenFree: true, CookTimeMinutes: 45, Difficulty: "Medium",
		},
		{
			ID: "r-curry", Name: "Green Curry", Category: "Chicken", Area: "Thai",
			Ingredients: []string{"Chicken", "Lime", "Coconut Milk"}, Tags: []string{"Spicy", "Curry"},
			CookTimeMinutes: 30, Difficulty: "Medium",
		},
		{
			ID: "r-salad", Name: "Avocado Salad", Category: "Vegan", Area: "Mexican",
			Ingredients: []string{"Avocado", "Lime"}, Tags: nil,
			Vegetarian: true, Vegan: true, GlutenFree: true, CookTimeMinutes: 10, Difficulty: "Easy",
		},
	}
}

// seedStore creates a store holding testRecipes.
func seedStore(t *testing.T) *Store {
	t.Helper()
	s := createTestStore(t)
	_, err := s.ImportRecipes(context.Background(), testRecipes())
	require.NoError(t, err)
	return s
}
