package vocab

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default returns the built-in vocabulary. Each call returns a fresh copy.
func Default() *Vocabulary {
	v := &Vocabulary{
		Tables: []Table{
			{
				Name:   "areas",
				Kind:   KindEquals,
				Column: "a.AreaName",
				Terms: []string{
					"american", "british", "canadian", "chinese", "croatian", "dutch",
					"egyptian", "filipino", "french", "greek", "indian", "irish",
					"italian", "jamaican", "japanese", "kenyan", "malaysian", "mexican",
					"moroccan", "polish", "portuguese", "russian", "spanish", "thai",
					"tunisian", "turkish", "ukrainian", "vietnamese",
				},
			},
			{
				Name:   "ingredients",
				Kind:   KindLike,
				Column: "i.IngredientName",
				Scope:  ScopeIngredient,
				Terms: []string{
					"chicken", "salmon", "beef", "pork", "avocado", "lime", "rice",
					"onions", "garlic", "tomatoes", "potatoes", "carrots", "mushrooms",
					"peppers", "cheese", "butter",
				},
			},
			{
				Name:   "categories",
				Kind:   KindEquals,
				Column: "c.CategoryName",
				Terms: []string{
					"breakfast", "dessert", "goat", "lamb", "miscellaneous", "pasta",
					"seafood", "side", "starter", "vegan", "vegetarian",
				},
			},
			{Name: "vegetarian", Kind: KindFixed, Column: "r.IsVegetarian", Op: "=", Value: "1", Terms: []string{"vegetarian"}},
			{Name: "vegan", Kind: KindFixed, Column: "r.IsVegan", Op: "=", Value: "1", Terms: []string{"vegan"}},
			{Name: "gluten_free", Kind: KindFixed, Column: "r.IsGlutenFree", Op: "=", Value: "1", Terms: []string{"gluten_free"}},
			{Name: "quick", Kind: KindFixed, Column: "r.CookTimeMinutes", Op: "<=", Value: "30", Terms: []string{"quick"}},
			{Name: "easy", Kind: KindFixed, Column: "r.DifficultyLevel", Op: "=", Value: "'Easy'", Terms: []string{"easy"}},
		},
		Options: Options{
			Categories: []string{
				"Beef", "Breakfast", "Chicken", "Dessert", "Goat", "Lamb", "Miscellaneous",
				"Pasta", "Pork", "Seafood", "Side", "Starter", "Vegan", "Vegetarian",
			},
			Areas: []string{
				"American", "British", "Canadian", "Chinese", "Croatian", "Dutch", "Egyptian",
				"Filipino", "French", "Greek", "Indian", "Irish", "Italian", "Jamaican",
				"Japanese", "Kenyan", "Malaysian", "Mexican", "Moroccan", "Polish",
				"Portuguese", "Russian", "Spanish", "Thai", "Tunisian", "Turkish",
				"Ukrainian", "Vietnamese",
			},
			Ingredients: []string{
				"Chicken", "Salmon", "Beef", "Pork", "Avocado", "Lime", "Rice", "Onions",
				"Garlic", "Tomatoes", "Potatoes", "Carrots", "Mushrooms", "Peppers",
				"Cheese", "Butter", "Olive Oil", "Salt", "Black Pepper", "Paprika",
			},
			Diets: []string{"vegetarian", "vegan", "gluten_free", "dairy_free", "low_carb", "keto"},
		},
		Presets: []Preset{
			{
				Name:        "Date Night",
				Description: "Elegant romantic dinner",
				Query:       "(italian OR french) AND (elegant OR romantic) AND NOT quick",
				Icon:        "💕",
			},
			{
				Name:        "Weeknight",
				Description: "Quick family dinner",
				Query:       "(quick OR easy) AND (chicken OR pasta) AND NOT (nuts OR shellfish)",
				Icon:        "⚡",
			},
			{
				Name:        "Healthy",
				Description: "Nutritious and mindful",
				Query:       "(vegetarian OR vegan) AND (low_carb OR keto) AND (quick OR meal_prep)",
				Icon:        "🥗",
			},
		},
	}
	v.normalize()
	return v
}

// Label turns a diet keyword into display text: "gluten_free" becomes
// "Gluten free".
func Label(keyword string) string {
	words := strings.Split(keyword, "_")
	if words[0] == "" {
		return keyword
	}
	// Casers are stateful; one per call.
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}
