package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chatbot/internal/config"
	"chatbot/internal/model"

	"go.uber.org/zap"
)

// CatalogClient fetches and locally filters product records from the
// external catalog service. Every call re-fetches the listing; there is
// no caching.
type CatalogClient struct {
	baseURL    string
	listLimit  int
	matchLimit int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(cfg *config.CatalogConfig, logger *zap.Logger) *CatalogClient {
	return &CatalogClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		listLimit:  cfg.ListLimit,
		matchLimit: cfg.MatchLimit,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

// ListAll fetches up to limit records from the listing endpoint in one
// call. limit <= 0 uses the configured default. Upstream failures are
// returned, not retried.
func (c *CatalogClient) ListAll(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = c.listLimit
	}

	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var listing model.ProductListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	c.logger.Debug("catalog listing fetched", zap.Int("count", len(listing.Products)))
	return listing.Products, nil
}

// FindByName fetches the full listing and filters case-insensitively for
// products whose title, description, or category contains name. Upstream
// order is preserved; at most limit matches are returned.
func (c *CatalogClient) FindByName(ctx context.Context, name string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = c.matchLimit
	}

	products, err := c.ListAll(ctx, 0)
	if err != nil {
		return nil, err
	}

	name = strings.ToLower(strings.TrimSpace(name))

	matches := make([]model.Product, 0, limit)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), name) ||
			strings.Contains(strings.ToLower(p.Description), name) ||
			(p.Category != nil && strings.Contains(strings.ToLower(*p.Category), name)) {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}

	c.logger.Debug("catalog name search",
		zap.String("name", name),
		zap.Int("matches", len(matches)))
	return matches, nil
}

// FilterByRating fetches the full listing and retains products whose
// rating is present and at least minRating, preserving upstream order and
// returning at most limit
func (c *CatalogClient) FilterByRating(ctx context.Context, minRating float64, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = c.matchLimit
	}

	products, err := c.ListAll(ctx, 0)
	if err != nil {
		return nil, err
	}

	matches := make([]model.Product, 0, limit)
	for _, p := range products {
		if p.Rating != nil && *p.Rating >= minRating {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}

	c.logger.Debug("catalog rating filter",
		zap.Float64("minRating", minRating),
		zap.Int("matches", len(matches)))
	return matches, nil
}
