// Package resolver converts structured ingredients into placeholder catalog
// entries so an ingredient list flows into the same cart data model as real
// scanned products.
package resolver

import (
	"fmt"

	"github.com/b4ubuy/pantry/internal/models"
)

// Placeholder defaults. Resolution is guaranteed: every ingredient gets a
// placeholder, so the shopping screens never show an unresolved ingredient.
const (
	DefaultBrand          = "Fresh"
	DefaultQuantity       = "1 unit"
	DefaultCategory       = "Ingredients"
	DefaultCountry        = "India"
	DefaultStores         = "Available in store"
	DefaultNutritionGrade = "d"
)

// Resolve produces one matched ingredient per entry. There is no not-found
// outcome at this layer: every entry gets a synthetic best match carrying the
// fields the rest of the system expects from a real product.
func Resolve(entries []models.IngredientEntry) []models.MatchedIngredient {
	out := make([]models.MatchedIngredient, 0, len(entries))
	for i, entry := range entries {
		placeholder := Placeholder(entry, i)
		out = append(out, models.MatchedIngredient{
			IngredientEntry:   entry,
			Found:             true,
			AvailableProducts: []*models.Product{placeholder},
			BestMatch:         placeholder,
		})
	}
	return out
}

// Placeholder builds the synthetic product for one ingredient. The quantity
// falls back to "1 unit" when the recipe carried none.
func Placeholder(entry models.IngredientEntry, index int) *models.Product {
	quantity := entry.QuantityText
	if quantity == "" {
		quantity = DefaultQuantity
	}
	return &models.Product{
		Name:           entry.DisplayName,
		Brand:          DefaultBrand,
		Quantity:       quantity,
		Category:       DefaultCategory,
		Country:        DefaultCountry,
		Stores:         DefaultStores,
		NutritionGrade: DefaultNutritionGrade,
		Code:           fmt.Sprintf("mock_%d", index),
		Mock:           true,
	}
}
