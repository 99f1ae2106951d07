// Package store provides SQLite-backed storage for recipes.
//
// The schema mirrors the recipe database the query vocabulary targets:
//   - Recipes: one row per recipe, with the diet flags, cook time and
//     difficulty the keyword predicates test
//   - Categories, Areas: lookup tables joined as c and a
//   - Ingredients, RecipeIngredients: the ingredient list of each recipe
//
// # Search
//
// SearchRecipes executes a WHERE clause produced by querysql.SQLCompiler.
// The clause is trusted SQL with ? placeholders; user text only ever
// arrives through params.
//
// Results are ordered deterministically: ORDER BY r.Name, r.Id COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
