package products

import (
	"sort"
	"strings"

	"github.com/b4ubuy/pantry/internal/models"
)

// Filter narrows the product list the way the shopping screen does: one
// category, diet labels that must all be present, allergens that must all be
// absent, and an optional nutrition cutoff.
type Filter struct {
	Category  string   `json:"category,omitempty"`
	Diets     []string `json:"diets,omitempty"`
	Allergens []string `json:"allergens,omitempty"`
	NutriMax  bool     `json:"nutrimax,omitempty"`
}

// Apply filters the product list. With NutriMax set, only grades a and b
// survive and grade-a products sort first (stable within a grade).
func (f *Filter) Apply(list []*models.Product) []*models.Product {
	out := make([]*models.Product, 0, len(list))
	for _, p := range list {
		if f.Category != "" && f.Category != "All" && p.Category != f.Category {
			continue
		}
		if !f.matchesDiets(p) || !f.excludesAllergens(p) {
			continue
		}
		if f.NutriMax {
			grade := NutriGrade(p)
			if grade != "a" && grade != "b" {
				continue
			}
		}
		out = append(out, p)
	}
	if f.NutriMax {
		sort.SliceStable(out, func(i, j int) bool {
			return NutriGrade(out[i]) == "a" && NutriGrade(out[j]) != "a"
		})
	}
	return out
}

func (f *Filter) matchesDiets(p *models.Product) bool {
	if len(f.Diets) == 0 {
		return true
	}
	labels := strings.ToLower(p.Labels)
	for _, diet := range f.Diets {
		if !strings.Contains(labels, strings.ToLower(diet)) {
			return false
		}
	}
	return true
}

// excludesAllergens checks the per-allergen marker columns: a product is
// kept only if none of the requested has_<allergen> columns is "1".
func (f *Filter) excludesAllergens(p *models.Product) bool {
	for _, allergen := range f.Allergens {
		if p.Extra["has_"+allergen] == "1" {
			return false
		}
	}
	return true
}
