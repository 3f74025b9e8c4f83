package service

import (
	"context"
	"encoding/json"
	"fmt"

	"chatbot/internal/model"

	"go.uber.org/zap"
)

// defaultMinRating is used when a rating_filter intent carries no usable
// min_rating criterion
const defaultMinRating = 4.0

// noDataSentinel is embedded as the product data when the catalog lookup
// produced nothing, so the model declines politely instead of inventing
const noDataSentinel = `[{"message": "No relevant product data found."}]`

// ProductFinder is the slice of the catalog client the composer needs
type ProductFinder interface {
	FindByName(ctx context.Context, name string, limit int) ([]model.Product, error)
	FilterByRating(ctx context.Context, minRating float64, limit int) ([]model.Product, error)
}

// Ensure CatalogClient implements ProductFinder
var _ ProductFinder = (*CatalogClient)(nil)

// ResponseComposer gathers product data for an extracted intent and asks
// the completion service to phrase a short reply
type ResponseComposer struct {
	catalog     ProductFinder
	completion  CompletionClient
	temperature float32
	logger      *zap.Logger
}

// NewResponseComposer creates a new response composer
func NewResponseComposer(catalog ProductFinder, completion CompletionClient, temperature float64, logger *zap.Logger) *ResponseComposer {
	return &ResponseComposer{
		catalog:     catalog,
		completion:  completion,
		temperature: float32(temperature),
		logger:      logger,
	}
}

// Compose fetches product data matching the intent, then generates a
// concise natural-language reply. Upstream failures propagate to the
// caller; there is no local retry.
func (c *ResponseComposer) Compose(ctx context.Context, result *model.IntentResult, userMessage string) (string, error) {
	products, err := c.gatherProducts(ctx, result)
	if err != nil {
		return "", fmt.Errorf("gather product data: %w", err)
	}

	productJSON := noDataSentinel
	if len(products) > 0 {
		encoded, err := json.Marshal(products)
		if err != nil {
			return "", fmt.Errorf("serialize product data: %w", err)
		}
		productJSON = string(encoded)
	}

	prompt := buildReplyPrompt(userMessage, productJSON)

	reply, err := c.completion.Complete(ctx, prompt, CompletionOptions{
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	c.logger.Debug("reply composed",
		zap.String("intent", string(result.Intent)),
		zap.Int("products", len(products)))
	return reply, nil
}

// gatherProducts selects the catalog lookup strategy for the intent.
// Intents without a lookup (unknown, category_query, missing entity)
// return no data.
func (c *ResponseComposer) gatherProducts(ctx context.Context, result *model.IntentResult) ([]model.Product, error) {
	switch result.Intent {
	case model.IntentPriceQuery, model.IntentAvailability, model.IntentReviewRequest:
		if result.Entity != nil {
			return c.catalog.FindByName(ctx, *result.Entity, 0)
		}
	case model.IntentRatingFilter:
		return c.catalog.FilterByRating(ctx, result.MinRating(defaultMinRating), 0)
	}
	return nil, nil
}

// buildReplyPrompt embeds the user message and serialized product data in
// a prompt asking for a short factual reply
func buildReplyPrompt(userMessage, productJSON string) string {
	return fmt.Sprintf(`You are an e-commerce chatbot assistant.
Given the user's message and the product data, provide a **concise, human-readable response** in 1-2 sentences.

- Include the following information if available:
  - product name
  - price
  - rating
  - shipping or warranty info
- Do NOT include extra commentary or greetings.
- If no product data is found, politely say that you don't have information on this product.

User message: "%s"

Product data (JSON): %s`, userMessage, productJSON)
}
