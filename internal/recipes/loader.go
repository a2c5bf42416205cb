package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/b4ubuy/pantry/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrCatalogUnavailable means the dataset could not be retrieved.
	ErrCatalogUnavailable = errors.New("recipe catalog unavailable")
	// ErrCatalogEmpty means the dataset parsed but yielded no usable records.
	ErrCatalogEmpty = errors.New("recipe catalog empty")
)

// Column names the loader binds to typed RecipeRecord fields. Anything else
// lands in Extra.
const (
	colName        = "name"
	colCuisine     = "cuisine"
	colIngredients = "ingredients_name"
	colQuantities  = "ingredients_quantity"
	colPrepTime    = "prep_time (in mins)"
	colCookTime    = "cook_time (in mins)"
	colDescription = "description"
)

// Catalog is the cached recipe catalog. The dataset is fetched and parsed at
// most once per process unless Invalidate is called; concurrent callers of
// GetOrLoad serialize behind the first load and observe its result.
type Catalog struct {
	source Source
	logger *zap.Logger

	mu      sync.Mutex
	loaded  bool
	records []models.RecipeRecord
}

// NewCatalog creates a catalog over the given source. The logger may be nil.
func NewCatalog(source Source, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{source: source, logger: logger}
}

// GetOrLoad returns the cached records, loading them on first call.
// On any load failure the cache is reset so a later call retries instead of
// wedging in a failed state.
func (c *Catalog) GetOrLoad(ctx context.Context) ([]models.RecipeRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.records, nil
	}

	records, err := c.load(ctx)
	if err != nil {
		c.records = nil
		c.loaded = false
		return nil, err
	}
	c.records = records
	c.loaded = true
	return c.records, nil
}

// Cached returns the current records without triggering a load.
func (c *Catalog) Cached() ([]models.RecipeRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records, c.loaded
}

// Invalidate clears the cache so the next GetOrLoad re-reads the dataset.
// Called by the dataset watcher when the underlying file changes.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.records = nil
}

func (c *Catalog) load(ctx context.Context) ([]models.RecipeRecord, error) {
	rows, err := c.source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: dataset has no data rows", ErrCatalogEmpty)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(strings.Trim(h, `"`))
	}

	var records []models.RecipeRecord
	skipped := 0
	for i, row := range rows[1:] {
		if len(row) < 2 {
			c.logger.Warn("skipping malformed recipe row",
				zap.Int("row", i+1),
				zap.Int("fields", len(row)),
				zap.Int("expected", len(headers)))
			skipped++
			continue
		}
		rec := zipRecord(headers, row)
		if rec.Name == "" {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	c.logger.Info("recipe catalog loaded",
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped))

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no valid records after parsing", ErrCatalogEmpty)
	}
	return records, nil
}

// zipRecord pairs header names with row fields by position. A short row
// leaves the remaining columns empty.
func zipRecord(headers []string, row []string) models.RecipeRecord {
	rec := models.RecipeRecord{}
	for i, header := range headers {
		var value string
		if i < len(row) {
			value = strings.TrimSpace(strings.Trim(row[i], `"`))
		}
		switch header {
		case colName:
			rec.Name = value
		case colCuisine:
			rec.Cuisine = value
		case colIngredients:
			rec.IngredientsRaw = value
		case colQuantities:
			rec.QuantitiesRaw = value
		case colPrepTime:
			rec.PrepTimeMinutes = value
		case colCookTime:
			rec.CookTimeMinutes = value
		case colDescription:
			rec.Description = value
		default:
			if value != "" {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[header] = value
			}
		}
	}
	return rec
}
