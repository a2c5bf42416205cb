package products

import (
	"fmt"
	"os"
	"strings"

	"github.com/b4ubuy/pantry/internal/models"
	"github.com/b4ubuy/pantry/internal/tabular"
	"go.uber.org/zap"
)

// Product dataset column names (openfoodfacts-style export).
const (
	colProductName = "product_name_en"
	colBrands      = "brands"
	colQuantity    = "quantity"
	colCategory    = "category"
	colCountries   = "countries_en"
	colStores      = "stores"
	colNutriGrade  = "off:nutriscore_grade"
	colLabels      = "labels"
	colCode        = "code"
)

// LoadCatalog parses the product dataset file. Rows without a product name
// are skipped. The logger may be nil.
func LoadCatalog(path string, logger *zap.Logger) ([]*models.Product, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product dataset: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("product dataset %s has no data rows", path)
	}
	headers := tabular.ParseLine(strings.TrimRight(lines[0], "\r"))

	var out []*models.Product
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p := zipProduct(headers, tabular.ParseLine(line))
		if p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	logger.Info("product catalog loaded", zap.Int("products", len(out)), zap.String("path", path))
	return out, nil
}

func zipProduct(headers []string, fields []string) *models.Product {
	var p models.Product
	for i, header := range headers {
		var value string
		if i < len(fields) {
			value = fields[i]
		}
		switch header {
		case colProductName:
			p.Name = value
		case colBrands:
			p.Brand = value
		case colQuantity:
			p.Quantity = value
		case colCategory:
			p.Category = value
		case colCountries:
			p.Country = value
		case colStores:
			p.Stores = value
		case colNutriGrade:
			p.NutritionGrade = value
		case colLabels:
			p.Labels = value
		case colCode:
			p.Code = value
		default:
			if value != "" {
				if p.Extra == nil {
					p.Extra = make(map[string]string)
				}
				p.Extra[header] = value
			}
		}
	}
	return &p
}

// NutriGrade returns the product's nutrition grade, defaulting to "d" when
// the dataset value is missing, unknown, or not applicable.
func NutriGrade(p *models.Product) string {
	grade := strings.ToLower(strings.TrimSpace(p.NutritionGrade))
	if grade == "" || grade == "unknown" || grade == "not-applicable" {
		return "d"
	}
	return grade
}
