package models

// IngredientEntry is one ingredient parsed out of a recipe's ingredient text.
type IngredientEntry struct {
	DisplayName  string `json:"name"`
	BaseName     string `json:"base_name"`
	QuantityText string `json:"quantity"`
}

// MatchedIngredient is an ingredient entry resolved against the product list.
// Resolution is guaranteed: Found is always true and BestMatch is never nil.
type MatchedIngredient struct {
	IngredientEntry
	Found             bool       `json:"found"`
	AvailableProducts []*Product `json:"available_products"`
	BestMatch         *Product   `json:"best_match"`
}

// SuggestionResult is the orchestrator's output for one dish query.
// On failure Success is false and Message carries a user-facing explanation;
// the remaining fields are only populated on success.
type SuggestionResult struct {
	Success        bool                `json:"success"`
	Message        string              `json:"message,omitempty"`
	DishName       string              `json:"dish_name,omitempty"`
	RecipeName     string              `json:"recipe_name,omitempty"`
	Cuisine        string              `json:"cuisine,omitempty"`
	PrepTime       string              `json:"prep_time,omitempty"`
	CookTime       string              `json:"cook_time,omitempty"`
	Description    string              `json:"description,omitempty"`
	Ingredients    []MatchedIngredient `json:"ingredients,omitempty"`
	AvailableCount int                 `json:"available_count"`
	TotalCount     int                 `json:"total_count"`
}
