package models

// AnalyzeCartRequest is the request body sent to the cart analysis endpoint.
type AnalyzeCartRequest struct {
	Items   []string `json:"items"`
	Persona string   `json:"persona"`
}

// AnalyzedItem is one cart item with a health label attached by the analysis
// service. Label is one of green, amber, orange, red.
type AnalyzedItem struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

// Alternative is a healthier-swap suggestion for one analyzed item.
type Alternative struct {
	OriginalName    string `json:"original_name"`
	ReplacementName string `json:"replacement_name"`
	Advantage       string `json:"advantage"`
}

// CartAnalysis is the analysis endpoint's response.
type CartAnalysis struct {
	Items          []AnalyzedItem `json:"items"`
	Alternatives   []Alternative  `json:"alternatives"`
	SwappedCart    []string       `json:"swapped_cart,omitempty"`
	ImprovementPct int            `json:"improvement_pct"`
	Narrative      string         `json:"narrative,omitempty"`
}
