package ingredients

import (
	"testing"

	"github.com/b4ubuy/pantry/internal/models"
)

func TestExtract(t *testing.T) {
	rec := models.RecipeRecord{
		Name:           "Paneer Do Pyaza",
		IngredientsRaw: "paneer, onions, green chillies",
		QuantitiesRaw:  "200 g  2 large  3",
	}
	entries := Extract(rec)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []models.IngredientEntry{
		{DisplayName: "paneer", BaseName: "paneer", QuantityText: "200 g"},
		{DisplayName: "onions", BaseName: "onion", QuantityText: "2 large"},
		{DisplayName: "green chillies", BaseName: "green chili", QuantityText: "3"},
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestExtract_NoIngredients(t *testing.T) {
	entries := Extract(models.RecipeRecord{Name: "Plain Rice"})
	if len(entries) != 0 {
		t.Errorf("expected empty result, got %#v", entries)
	}
}

func TestExtract_QuantityShortfall(t *testing.T) {
	rec := models.RecipeRecord{
		IngredientsRaw: "rice, salt, water",
		QuantitiesRaw:  "2 cups",
	}
	entries := Extract(rec)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].QuantityText != "2 cups" {
		t.Errorf("first quantity = %q", entries[0].QuantityText)
	}
	if entries[1].QuantityText != "" || entries[2].QuantityText != "" {
		t.Errorf("missing quantities must be empty, got %q / %q",
			entries[1].QuantityText, entries[2].QuantityText)
	}
}

func TestExtract_StripsParensAndEmptyPhrases(t *testing.T) {
	rec := models.RecipeRecord{
		IngredientsRaw: "paneer (cubed), , ghee",
		QuantitiesRaw:  "200 g  1 tbsp  2 tsp",
	}
	entries := Extract(rec)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].DisplayName != "paneer cubed" {
		t.Errorf("parens not stripped: %q", entries[0].DisplayName)
	}
	// Alignment is positional over the raw comma split, so ghee keeps the
	// quantity at its original index even though the middle phrase was empty.
	if entries[1].DisplayName != "ghee" || entries[1].QuantityText != "2 tsp" {
		t.Errorf("entry = %+v", entries[1])
	}
}

func TestExtract_SingleSpaceDoesNotSplitQuantities(t *testing.T) {
	rec := models.RecipeRecord{
		IngredientsRaw: "milk",
		QuantitiesRaw:  "1 litre full cream",
	}
	entries := Extract(rec)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].QuantityText != "1 litre full cream" {
		t.Errorf("quantity = %q", entries[0].QuantityText)
	}
}

func TestNormalizeBaseName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plural mapping", "Tomatoes", "tomato"},
		{"mapping inside phrase", "2 ripe tomatoes diced", "tomato"},
		{"multi-word mapping", "Green Chillies", "green chili"},
		{"mapping order, specific first", "dry red chillies", "red chili"},
		{"oil collapses", "Olive Oil", "oil"},
		{"garam masala keeps two words", "garam masala powder", "garam masala"},
		{"stopword skipped", "fresh ginger", "ginger"},
		{"several stopwords", "dried ground cinnamon", "cinnamon"},
		{"all stopwords falls back to first", "fresh dried", "fresh"},
		{"plain word", "salt", "salt"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeBaseName(tt.in); got != tt.want {
				t.Errorf("NormalizeBaseName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeBaseName_Idempotent(t *testing.T) {
	for _, in := range []string{"Tomatoes", "fresh ginger", "salt"} {
		once := NormalizeBaseName(in)
		if twice := NormalizeBaseName(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
