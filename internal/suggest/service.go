// Package suggest composes catalog loading, dish search, ingredient
// extraction, and placeholder resolution into one suggestion operation.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/b4ubuy/pantry/internal/dishsearch"
	"github.com/b4ubuy/pantry/internal/ingredients"
	"github.com/b4ubuy/pantry/internal/models"
	"github.com/b4ubuy/pantry/internal/recipes"
	"github.com/b4ubuy/pantry/internal/resolver"
	"go.uber.org/zap"
)

const loadFailedMessage = "Recipe database failed to load. Please check the data source and try again."

// Service is the suggestion orchestrator. It owns the recipe catalog cache;
// the catalog is loaded lazily on the first suggestion.
type Service struct {
	catalog *recipes.Catalog
	logger  *zap.Logger
}

// NewService creates a suggestion service. The logger may be nil.
func NewService(catalog *recipes.Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, logger: logger}
}

// Catalog returns the underlying recipe catalog, for cache invalidation.
func (s *Service) Catalog() *recipes.Catalog {
	return s.catalog
}

// Suggest resolves a free-text dish name to the best matching recipe and its
// ingredient list as placeholder products. Failures never escape as errors:
// every branch terminates in a SuggestionResult, with Success false and a
// user-facing message on the failure paths.
func (s *Service) Suggest(ctx context.Context, dishName string) models.SuggestionResult {
	records, err := s.catalog.GetOrLoad(ctx)
	if err != nil {
		s.logger.Error("recipe catalog load failed", zap.Error(err))
		return models.SuggestionResult{Success: false, Message: loadFailedMessage}
	}
	if len(records) == 0 {
		return models.SuggestionResult{Success: false, Message: loadFailedMessage}
	}

	matches := dishsearch.Search(dishName, records)
	if len(matches) == 0 {
		s.logger.Debug("no recipes matched", zap.String("dish", dishName))
		return models.SuggestionResult{
			Success: false,
			Message: noMatchMessage(dishName, records),
		}
	}

	best := matches[0].Record
	s.logger.Debug("using recipe",
		zap.String("dish", dishName),
		zap.String("recipe", best.Name),
		zap.Float64("score", matches[0].Score),
		zap.String("tier", matches[0].Tier.String()))

	extracted := ingredients.Extract(best)
	matched := resolver.Resolve(extracted)

	return models.SuggestionResult{
		Success:        true,
		DishName:       dishName,
		RecipeName:     best.Name,
		Cuisine:        best.Cuisine,
		PrepTime:       best.PrepTimeMinutes,
		CookTime:       best.CookTimeMinutes,
		Description:    best.Description,
		Ingredients:    matched,
		AvailableCount: len(matched),
		TotalCount:     len(matched),
	}
}

// Titles returns autocomplete candidates for a partial dish query. It never
// triggers a catalog load: before the catalog has loaded, or for queries
// under two characters, the result is silently empty.
func (s *Service) Titles(ctx context.Context, partial string) []models.TitleSuggestion {
	records, loaded := s.catalog.Cached()
	if !loaded {
		return nil
	}
	return dishsearch.Autocomplete(partial, records)
}

func noMatchMessage(dishName string, records []models.RecipeRecord) string {
	samples := make([]string, 0, 3)
	for _, rec := range records {
		samples = append(samples, rec.Name)
		if len(samples) == 3 {
			break
		}
	}
	return fmt.Sprintf("No recipes found for %q. Try searching for: %s",
		dishName, strings.Join(samples, ", "))
}
