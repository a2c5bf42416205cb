// Package insights is the client for the remote cart-analysis service.
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/b4ubuy/pantry/internal/models"
)

// DefaultPersona is used when the caller does not pick one.
const DefaultPersona = "standard"

// Client calls the cart-analysis endpoint. Only the request/response contract
// is owned here; the analysis internals live on the remote side.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

// NewClient creates a client for the analysis service at baseURL.
// The logger may be nil.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{client: client, logger: logger}
}

// AnalyzeCart sends the cart's item names and a persona tag and returns the
// health labels and substitution suggestions. Failures are returned to the
// caller; the analysis feature degrades, the process does not.
func (c *Client) AnalyzeCart(ctx context.Context, items []string, persona string) (*models.CartAnalysis, error) {
	if len(items) == 0 {
		return &models.CartAnalysis{}, nil
	}
	if persona == "" {
		persona = DefaultPersona
	}

	var analysis models.CartAnalysis
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(models.AnalyzeCartRequest{Items: items, Persona: persona}).
		SetResult(&analysis).
		Post("/api/analyze-cart")
	if err != nil {
		return nil, fmt.Errorf("cart analysis request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cart analysis returned status %d", resp.StatusCode())
	}

	c.logger.Debug("cart analyzed",
		zap.Int("items", len(analysis.Items)),
		zap.Int("alternatives", len(analysis.Alternatives)),
		zap.Int("improvement_pct", analysis.ImprovementPct))
	return &analysis, nil
}

// FlaggedItems returns the analyzed items whose label marks them for a
// healthier-swap banner.
func FlaggedItems(analysis *models.CartAnalysis) []models.AnalyzedItem {
	var flagged []models.AnalyzedItem
	for _, item := range analysis.Items {
		switch strings.ToLower(item.Label) {
		case "red", "amber", "orange":
			flagged = append(flagged, item)
		}
	}
	return flagged
}

// AlternativeFor finds the substitution suggested for one item name,
// matching case-insensitively. Returns nil when the service offered none.
func AlternativeFor(analysis *models.CartAnalysis, name string) *models.Alternative {
	for i := range analysis.Alternatives {
		if strings.EqualFold(analysis.Alternatives[i].OriginalName, name) {
			return &analysis.Alternatives[i]
		}
	}
	return nil
}
