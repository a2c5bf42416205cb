// Package models defines core data structures for recipes, products, carts, and suggestions.
package models

// RecipeRecord is one parsed row of the recipe dataset. Records are created
// once at catalog load time and are immutable afterwards.
type RecipeRecord struct {
	Name            string `json:"name"`
	Cuisine         string `json:"cuisine,omitempty"`
	IngredientsRaw  string `json:"ingredients_name,omitempty"`
	QuantitiesRaw   string `json:"ingredients_quantity,omitempty"`
	PrepTimeMinutes string `json:"prep_time,omitempty"`
	CookTimeMinutes string `json:"cook_time,omitempty"`
	Description     string `json:"description,omitempty"`
	// Extra holds dataset columns not covered by the typed fields, so the
	// loader tolerates schema drift without losing data.
	Extra map[string]string `json:"-"`
}

// TitleSuggestion is one autocomplete candidate for a partial dish query.
type TitleSuggestion struct {
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Score   int    `json:"score"`
}
