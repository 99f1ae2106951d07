package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// recipeSelect lists the columns scanRecipe reads, joined the way the
// compiled WHERE clauses expect: r for recipes, c for categories, a for
// areas. Ingredient predicates bring their own EXISTS sub-select.
const recipeSelect = `
	SELECT r.Id, r.Name, r.Thumbnail,
	       COALESCE(c.CategoryName, ''), COALESCE(a.AreaName, ''),
	       r.Instructions, r.Tags,
	       r.IsVegetarian, r.IsVegan, r.IsGlutenFree,
	       r.CookTimeMinutes, r.DifficultyLevel
	FROM Recipes r
	LEFT JOIN Categories c ON r.CategoryId = c.Id
	LEFT JOIN Areas a ON r.AreaId = a.Id`

// ingredientBatch bounds the number of ? placeholders per IN list.
const ingredientBatch = 500

// SearchRecipes returns the recipes matching where, a WHERE clause without
// the WHERE keyword whose ? placeholders are bound to params.
// A blank clause matches every recipe.
//
// Results are ordered by name, then ID. Returns an empty slice (not nil)
// when nothing matches.
func (s *Store) SearchRecipes(ctx context.Context, where string, params []any) ([]Recipe, error) {
	if strings.TrimSpace(where) == "" {
		where = "1 = 1"
	}

	query := recipeSelect + "\n\tWHERE " + where + "\n\tORDER BY r.Name ASC, r.Id COLLATE BINARY ASC"
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}

	recipes := []Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("search recipes: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	// Close before the ingredient query: the pool holds one connection.
	rows.Close()

	if err := s.attachIngredients(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a single recipe by ID.
// Returns an error wrapping ErrNotFound if the ID does not exist.
func (s *Store) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	row := s.db.QueryRowContext(ctx, recipeSelect+"\n\tWHERE r.Id = ?", id)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Recipe{}, fmt.Errorf("get recipe: %w", err)
	}

	recipes := []Recipe{r}
	if err := s.attachIngredients(ctx, recipes); err != nil {
		return Recipe{}, err
	}
	return recipes[0], nil
}

// CountRecipes returns the number of stored recipes.
func (s *Store) CountRecipes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Recipes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return n, nil
}

// attachIngredients fills Ingredients of each recipe in ingredient order.
func (s *Store) attachIngredients(ctx context.Context, recipes []Recipe) error {
	index := make(map[string]int, len(recipes))
	for i := range recipes {
		recipes[i].Ingredients = []string{}
		index[recipes[i].ID] = i
	}

	for start := 0; start < len(recipes); start += ingredientBatch {
		end := min(start+ingredientBatch, len(recipes))
		args := make([]any, 0, end-start)
		for _, r := range recipes[start:end] {
			args = append(args, r.ID)
		}

		query := `
			SELECT ri.RecipeId, i.IngredientName
			FROM RecipeIngredients ri
			JOIN Ingredients i ON ri.IngredientId = i.Id
			WHERE ri.RecipeId IN (?` + strings.Repeat(", ?", len(args)-1) + `)
			ORDER BY ri.RecipeId COLLATE BINARY ASC, ri.Position ASC`
		if err := s.readIngredients(ctx, query, args, recipes, index); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) readIngredients(ctx context.Context, query string, args []any, recipes []Recipe, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID, name string
		if err := rows.Scan(&recipeID, &name); err != nil {
			return fmt.Errorf("scan ingredient: %w", err)
		}
		i := index[recipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate ingredients: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (Recipe, error) {
	var (
		r    Recipe
		tags string
	)
	err := s.Scan(
		&r.ID, &r.Name, &r.Thumbnail,
		&r.Category, &r.Area,
		&r.Instructions, &tags,
		&r.Vegetarian, &r.Vegan, &r.GlutenFree,
		&r.CookTimeMinutes, &r.Difficulty,
	)
	if err != nil {
		return Recipe{}, err
	}
	r.Tags = decodeTags(tags)
	return r, nil
}
