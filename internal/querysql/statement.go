package querysql

// DisplayStatement embeds a WHERE fragment in the statement shown to users
// next to their query. It is never executed.
func DisplayStatement(where string) string {
	return "SELECT r.*, c.CategoryName, a.AreaName\n" +
		"FROM Recipes r\n" +
		"LEFT JOIN Categories c ON r.CategoryId = c.Id\n" +
		"LEFT JOIN Areas a ON r.AreaId = a.Id\n" +
		"LEFT JOIN RecipeIngredients ri ON r.Id = ri.RecipeId\n" +
		"LEFT JOIN Ingredients i ON ri.IngredientId = i.Id\n" +
		"WHERE " + where +
		"\nGROUP BY r.Id\nORDER BY r.Name;"
}
