package dishsearch

import (
	"sort"
	"strings"

	"github.com/b4ubuy/pantry/internal/models"
)

// Autocomplete limits and scores.
const (
	maxSuggestions     = 8
	minQueryLen        = 2
	suggestScorePrefix = 10
	suggestScoreOther  = 5
)

// Autocomplete returns up to eight title suggestions for a partial dish
// query using substring containment. Queries shorter than two characters
// yield nothing. Recipes without a cuisine are labeled "International".
func Autocomplete(query string, records []models.RecipeRecord) []models.TitleSuggestion {
	term := strings.ToLower(strings.TrimSpace(query))
	if len(term) < minQueryLen || len(records) == 0 {
		return nil
	}

	var suggestions []models.TitleSuggestion
	for _, rec := range records {
		name := strings.ToLower(rec.Name)
		if !strings.Contains(name, term) {
			continue
		}
		score := suggestScoreOther
		if strings.HasPrefix(name, term) {
			score = suggestScorePrefix
		}
		cuisine := rec.Cuisine
		if cuisine == "" {
			cuisine = "International"
		}
		suggestions = append(suggestions, models.TitleSuggestion{
			Name:    rec.Name,
			Cuisine: cuisine,
			Score:   score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
