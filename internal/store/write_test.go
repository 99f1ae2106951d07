package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportRecipes(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	result, err := s.ImportRecipes(ctx, testRecipes())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, []string{"r-teriyaki", "r-risotto", "r-curry", "r-salad"}, result.IDs)

	n, err := s.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestImportRecipes_Idempotent(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	result, err := s.ImportRecipes(ctx, testRecipes())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 4, result.Skipped)

	n, err := s.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestImportRecipes_GeneratesUUIDv7(t *testing.T) {
	s := createTestStore(t)

	id, err := s.InsertRecipe(context.Background(), Recipe{Name: "Toast"})
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestImportRecipes_RequiresName(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.ImportRecipes(ctx, []Recipe{{ID: "ok", Name: "Fine"}, {ID: "bad", Name: "  "}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipe 1: name is required")

	// The whole batch rolls back.
	n, err := s.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestImportRecipes_SharesLookupRows(t *testing.T) {
	s := seedStore(t)

	var areas, ingredients int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM Areas`).Scan(&areas))
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM Ingredients`).Scan(&ingredients))

	assert.Equal(t, 4, areas)
	// Chicken, Rice, Soy Sauce, Mushrooms, Butter, Lime, Coconut Milk, Avocado
	assert.Equal(t, 8, ingredients)
}

func TestImportRecipes_CaseInsensitiveLookups(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.ImportRecipes(ctx, []Recipe{
		{ID: "a", Name: "A", Area: "Thai", Ingredients: []string{"Lime"}},
		{ID: "b", Name: "B", Area: "THAI", Ingredients: []string{"lime"}},
	})
	require.NoError(t, err)

	var areas int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM Areas`).Scan(&areas))
	assert.Equal(t, 1, areas)

	b, err := s.GetRecipe(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Thai", b.Area)
	assert.Equal(t, []string{"Lime"}, b.Ingredients)
}

func TestEncodeTags(t *testing.T) {
	assert.Equal(t, ",", encodeTags(nil))
	assert.Equal(t, ",Meat,Quick,", encodeTags([]string{"Meat", " ", "Quick "}))
	assert.Equal(t, ",ab,", encodeTags([]string{"a,b"}))

	assert.Equal(t, []string{}, decodeTags(","))
	assert.Equal(t, []string{"Meat", "Quick"}, decodeTags(",Meat,Quick,"))
}
