// Package ingredients parses structured ingredient entries out of a recipe's
// raw ingredient and quantity text fields.
package ingredients

import (
	"regexp"
	"strings"

	"github.com/b4ubuy/pantry/internal/models"
)

// Quantity phrases are separated by runs of two or more whitespace
// characters, unlike ingredient names which are comma separated.
var quantitySplit = regexp.MustCompile(`\s{2,}`)

// Extract splits a recipe's ingredient text into structured entries.
// Quantities are aligned to ingredient names positionally by index; when the
// quantity sequence is shorter, the remaining entries get an empty quantity.
// The two fields are delimited independently in the dataset, so alignment is
// best effort only. A recipe without ingredient text yields an empty result.
func Extract(rec models.RecipeRecord) []models.IngredientEntry {
	if rec.IngredientsRaw == "" {
		return nil
	}

	var quantities []string
	if rec.QuantitiesRaw != "" {
		for _, q := range quantitySplit.Split(rec.QuantitiesRaw, -1) {
			quantities = append(quantities, strings.TrimSpace(q))
		}
	}

	var entries []models.IngredientEntry
	for i, phrase := range strings.Split(rec.IngredientsRaw, ",") {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" {
			continue
		}
		display := strings.TrimSpace(stripParens(phrase))
		var quantity string
		if i < len(quantities) {
			quantity = quantities[i]
		}
		entries = append(entries, models.IngredientEntry{
			DisplayName:  display,
			BaseName:     NormalizeBaseName(display),
			QuantityText: quantity,
		})
	}
	return entries
}

func stripParens(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '(' || r == ')' {
			return -1
		}
		return r
	}, s)
}
