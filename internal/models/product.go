package models

// Product is one entry of the shared product list. Real catalog rows and
// synthetic ingredient placeholders share this shape and one identity keyspace.
type Product struct {
	Name           string            `json:"product_name_en"`
	Brand          string            `json:"brands"`
	Quantity       string            `json:"quantity,omitempty"`
	Category       string            `json:"category,omitempty"`
	Country        string            `json:"countries_en,omitempty"`
	Stores         string            `json:"stores,omitempty"`
	NutritionGrade string            `json:"nutriscore_grade,omitempty"`
	Labels         string            `json:"labels,omitempty"`
	Code           string            `json:"code,omitempty"`
	Mock           bool              `json:"mock_product,omitempty"`
	Extra          map[string]string `json:"-"`
}
