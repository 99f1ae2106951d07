package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ImportResult reports what ImportRecipes did.
type ImportResult struct {
	// IDs holds the ID of every input recipe, in input order, including
	// generated ones.
	IDs      []string
	Inserted int
	Skipped  int
}

// ImportRecipes inserts recipes in a single transaction.
// Recipes without an ID get a UUIDv7. A recipe whose ID already exists is
// skipped, so importing the same file twice is a no-op.
//
// Categories, areas and ingredients are created on first use and matched
// case-insensitively afterwards.
func (s *Store) ImportRecipes(ctx context.Context, recipes []Recipe) (ImportResult, error) {
	result := ImportResult{IDs: make([]string, 0, len(recipes))}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import recipes: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for i, r := range recipes {
		if strings.TrimSpace(r.Name) == "" {
			return ImportResult{}, fmt.Errorf("import recipes: recipe %d: name is required", i)
		}
		if r.ID == "" {
			r.ID = uuid.Must(uuid.NewV7()).String()
		}

		inserted, err := insertRecipe(ctx, tx, r)
		if err != nil {
			return ImportResult{}, fmt.Errorf("import recipes: recipe %q: %w", r.Name, err)
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
		result.IDs = append(result.IDs, r.ID)
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("import recipes: %w", err)
	}
	return result, nil
}

// InsertRecipe inserts one recipe and returns its ID.
func (s *Store) InsertRecipe(ctx context.Context, r Recipe) (string, error) {
	result, err := s.ImportRecipes(ctx, []Recipe{r})
	if err != nil {
		return "", err
	}
	return result.IDs[0], nil
}

// insertRecipe reports false when a recipe with the same ID already exists.
func insertRecipe(ctx context.Context, tx *sql.Tx, r Recipe) (bool, error) {
	categoryID, err := lookupID(ctx, tx, "Categories", "CategoryName", r.Category)
	if err != nil {
		return false, err
	}
	areaID, err := lookupID(ctx, tx, "Areas", "AreaName", r.Area)
	if err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO Recipes
		(Id, Name, Thumbnail, CategoryId, AreaId, Instructions, Tags,
		 IsVegetarian, IsVegan, IsGlutenFree, CookTimeMinutes, DifficultyLevel)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(Id) DO NOTHING
	`,
		r.ID,
		strings.TrimSpace(r.Name),
		r.Thumbnail,
		categoryID,
		areaID,
		r.Instructions,
		encodeTags(r.Tags),
		r.Vegetarian,
		r.Vegan,
		r.GlutenFree,
		r.CookTimeMinutes,
		strings.TrimSpace(r.Difficulty),
	)
	if err != nil {
		return false, fmt.Errorf("insert recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert recipe: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	for pos, name := range r.Ingredients {
		ingredientID, err := lookupID(ctx, tx, "Ingredients", "IngredientName", name)
		if err != nil {
			return false, err
		}
		if !ingredientID.Valid {
			continue
		}
		// Repeated ingredients keep their first position.
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO RecipeIngredients (RecipeId, IngredientId, Position)
			VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING
		`, r.ID, ingredientID.Int64, pos); err != nil {
			return false, fmt.Errorf("insert ingredient %q: %w", name, err)
		}
	}
	return true, nil
}

// lookupID returns the row ID for name in a lookup table, creating the row
// if needed. A blank name yields a NULL ID.
//
// table and column are package constants, never user input.
func lookupID(ctx context.Context, tx *sql.Tx, table, column, name string) (sql.NullInt64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return sql.NullInt64{}, nil
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?) ON CONFLICT(%s) DO NOTHING`, table, column, column)
	if _, err := tx.ExecContext(ctx, insert, name); err != nil {
		return sql.NullInt64{}, fmt.Errorf("insert %s %q: %w", table, name, err)
	}

	var id sql.NullInt64
	query := fmt.Sprintf(`SELECT Id FROM %s WHERE %s = ?`, table, column)
	if err := tx.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return sql.NullInt64{}, fmt.Errorf("lookup %s %q: %w", table, name, err)
	}
	return id, nil
}
