package products

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/b4ubuy/pantry/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "pantry.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_MergeIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := &models.Product{Name: "Tomatoes", Brand: "Fresh", Category: "Ingredients", NutritionGrade: "d", Mock: true}
	added, err := store.Merge(ctx, p)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !added {
		t.Error("first merge should insert")
	}

	// Same identity under a different spelling must not duplicate.
	again, err := store.Merge(ctx, &models.Product{Name: "tomatoes ", Brand: "Fresh"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if again {
		t.Error("second merge with colliding identity must be a no-op")
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 product, got %d", n)
	}
}

func TestStore_GetAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	items := []*models.Product{
		{Name: "Amul Butter", Brand: "Amul", Category: "Dairy", NutritionGrade: "e",
			Extra: map[string]string{"has_milk": "1"}},
		{Name: "paneer", Brand: "Fresh", Category: "Ingredients", Mock: true},
	}
	for _, p := range items {
		if _, err := store.Merge(ctx, p); err != nil {
			t.Fatalf("Merge: %v", err)
		}
	}

	got, err := store.Get(ctx, Identity("Amul Butter", "Amul"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Name != "Amul Butter" || got.Extra["has_milk"] != "1" {
		t.Errorf("Get = %+v", got)
	}

	missing, err := store.Get(ctx, "no_such_identity")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown identity, got %+v", missing)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
	if list[0].Name != "Amul Butter" || list[1].Name != "paneer" {
		t.Errorf("insertion order not preserved: %q, %q", list[0].Name, list[1].Name)
	}
	if !list[1].Mock {
		t.Error("mock flag not persisted")
	}
}
