package products

import (
	"context"
	"testing"

	"github.com/b4ubuy/pantry/internal/models"
)

func TestIndex_SearchByNameBrandCategory(t *testing.T) {
	ix, err := NewIndex("")
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	defer ix.Close()

	list := []*models.Product{
		{Name: "Rolled Oats", Brand: "Quaker", Category: "Staples & Grains"},
		{Name: "Amul Butter", Brand: "Amul", Category: "Dairy"},
		{Name: "Masala Chips", Brand: "Lays", Category: "Snacks"},
	}
	if err := ix.IndexProducts(context.Background(), list); err != nil {
		t.Fatalf("IndexProducts: %v", err)
	}

	count, err := ix.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 docs, got %d", count)
	}

	tests := []struct {
		query  string
		wantID string
	}{
		{"oats", Identity("Rolled Oats", "Quaker")},
		{"amul", Identity("Amul Butter", "Amul")},
		{"snacks", Identity("Masala Chips", "Lays")},
	}
	for _, tt := range tests {
		ids, err := ix.Search(context.Background(), tt.query, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		if len(ids) == 0 || ids[0] != tt.wantID {
			t.Errorf("Search(%q) = %v, want first %q", tt.query, ids, tt.wantID)
		}
	}
}

func TestIndex_ReindexOverwrites(t *testing.T) {
	ix, err := NewIndex("")
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	defer ix.Close()

	p := &models.Product{Name: "Paneer", Brand: "Fresh", Category: "Ingredients"}
	ctx := context.Background()
	if err := ix.IndexProducts(ctx, []*models.Product{p}); err != nil {
		t.Fatalf("IndexProducts: %v", err)
	}
	if err := ix.IndexProducts(ctx, []*models.Product{p}); err != nil {
		t.Fatalf("IndexProducts again: %v", err)
	}
	count, err := ix.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 doc after reindex, got %d", count)
	}
}
