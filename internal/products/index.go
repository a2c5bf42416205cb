package products

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/b4ubuy/pantry/internal/models"
)

// indexDoc is the flattened product shape stored in the keyword index.
type indexDoc struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
}

// Index is the keyword search index over the product list, backing the
// shopping screen's free-text search box.
type Index struct {
	index bleve.Index
}

// NewIndex creates or opens a Bleve index at path. An empty path builds an
// in-memory index, which is also what the tests use.
func NewIndex(path string) (*Index, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize, no stemming, so "oats" only
	// matches products that actually say oats.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	docMapping.AddFieldMappingsAt("brand", textFieldMapping)
	docMapping.AddFieldMappingsAt("category", textFieldMapping)
	im.AddDocumentMapping("product", docMapping)
	im.DefaultType = "product"
	im.DefaultMapping = docMapping

	if path == "" {
		index, err := bleve.NewMemOnly(im)
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory index: %w", err)
		}
		return &Index{index: index}, nil
	}

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open product index: %w", openErr)
		}
		return &Index{index: index}, nil
	}
	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create product index: %w", err)
	}
	return &Index{index: index}, nil
}

// IndexProducts indexes the given products in one batch, keyed by identity.
// Re-indexing an identity overwrites the previous entry, so the index stays
// consistent with the store's merge semantics.
func (ix *Index) IndexProducts(ctx context.Context, list []*models.Product) error {
	batch := ix.index.NewBatch()
	for _, p := range list {
		doc := indexDoc{Name: p.Name, Brand: p.Brand, Category: p.Category}
		if err := batch.Index(Identity(p.Name, p.Brand), doc); err != nil {
			return fmt.Errorf("failed to batch product: %w", err)
		}
	}
	return ix.index.Batch(batch)
}

// Search runs a match query across name, brand, and category and returns up
// to limit product identities ordered by relevance.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]string, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := ix.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("product search failed: %w", err)
	}
	ids := make([]string, len(results.Hits))
	for i, hit := range results.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

// DocCount returns the number of indexed products.
func (ix *Index) DocCount() (uint64, error) {
	return ix.index.DocCount()
}

// Close closes the index.
func (ix *Index) Close() error {
	return ix.index.Close()
}
