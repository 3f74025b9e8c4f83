package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"chatbot/internal/model"
	"chatbot/internal/utils"

	"go.uber.org/zap"
)

// intentAttempts is the total number of model calls allowed per message
// before falling back to the local parser. No backoff between attempts.
const intentAttempts = 2

// IntentExtractor turns a raw user message into a structured IntentResult.
// The primary path asks the completion service for a strict JSON
// classification; on any failure, unparseable output, or an unknown
// classification, the deterministic local parser decides instead.
// Analyze never returns an error.
type IntentExtractor struct {
	completion CompletionClient
	fallback   *LocalParser
	maxTokens  int
	logger     *zap.Logger
}

// NewIntentExtractor creates a new intent extractor. completion may be nil,
// in which case every message goes through the local parser.
func NewIntentExtractor(completion CompletionClient, maxTokens int, logger *zap.Logger) *IntentExtractor {
	return &IntentExtractor{
		completion: completion,
		fallback:   NewLocalParser(),
		maxTokens:  maxTokens,
		logger:     logger,
	}
}

// Analyze classifies the message. The result always has a valid intent,
// a trimmed non-empty entity or nil, and criteria that is either nil or a
// JSON object with a numeric min_rating when present.
func (e *IntentExtractor) Analyze(ctx context.Context, message string) *model.IntentResult {
	if e.completion != nil && e.completion.IsEnabled() {
		result, err := e.analyzeWithModel(ctx, message)
		switch {
		case err != nil:
			e.logger.Warn("model intent extraction failed, using local parser",
				zap.Error(err))
		case result.Intent != model.IntentUnknown:
			return result
		default:
			e.logger.Debug("model returned unknown intent, using local parser")
		}
	}

	return e.fallback.Parse(message)
}

// analyzeWithModel runs the primary path: prompt the completion service
// with deterministic sampling, then parse and normalize its output
func (e *IntentExtractor) analyzeWithModel(ctx context.Context, message string) (*model.IntentResult, error) {
	prompt := buildIntentPrompt(message)

	var raw string
	var err error
	for attempt := 0; attempt < intentAttempts; attempt++ {
		raw, err = e.completion.Complete(ctx, prompt, CompletionOptions{
			Temperature: 0,
			MaxTokens:   e.maxTokens,
		})
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("completion failed after %d attempts: %w", intentAttempts, err)
	}

	var parsed rawIntent
	if err := utils.ParseModelJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("model output not parseable: %w", err)
	}

	return normalizeIntent(parsed.toResult()), nil
}

// rawIntent is the loosely-typed shape of the model's JSON answer. Entity
// and criteria are interface{} so a model that returns the wrong type for
// one key doesn't reject the whole object.
type rawIntent struct {
	Intent   string      `json:"intent"`
	Entity   interface{} `json:"entity"`
	Criteria interface{} `json:"criteria"`
}

func (r rawIntent) toResult() *model.IntentResult {
	result := &model.IntentResult{Intent: model.Intent(r.Intent)}

	if s, ok := r.Entity.(string); ok {
		result.Entity = &s
	}
	if m, ok := r.Criteria.(map[string]interface{}); ok {
		result.Criteria = m
	}

	return result
}

// normalizeIntent clamps the result to the IntentResult invariants in
// place and returns it. It is idempotent.
func normalizeIntent(r *model.IntentResult) *model.IntentResult {
	if !r.Intent.Valid() {
		r.Intent = model.IntentUnknown
	}

	if r.Entity != nil {
		trimmed := strings.TrimSpace(*r.Entity)
		if trimmed == "" {
			r.Entity = nil
		} else {
			r.Entity = &trimmed
		}
	}

	if r.Criteria != nil {
		if raw, ok := r.Criteria["min_rating"]; ok {
			r.Criteria["min_rating"] = coerceRating(raw)
		}
	}

	return r
}

// coerceRating converts a min_rating value to a finite float64, or nil
// when it can't be
func coerceRating(raw interface{}) interface{} {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		value = parsed
	default:
		return nil
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return value
}

// buildIntentPrompt embeds the user message in a strict JSON-only
// classification prompt with few-shot examples
func buildIntentPrompt(message string) string {
	return fmt.Sprintf(`You are an intent and entity extraction assistant for an e-commerce chatbot.
Given the user's message below, output a single JSON object ONLY (no explanation, no extra text).
The JSON must have exactly these keys: "intent", "entity", "criteria".

- "intent" must be one of:
  "price_query", "availability", "rating_filter", "review_request", "category_query", "unknown"
- "entity" must be a product name or category string (or null)
- "criteria" must be a JSON object for additional filters (or null)
  e.g. { "min_rating": 4 }

Return examples (JSON only):

Input: "What's the price of iPhone?"
Output:
{
  "intent": "price_query",
  "entity": "iPhone",
  "criteria": null
}

Input: "Show me electronics with ratings above 4"
Output:
{
  "intent": "rating_filter",
  "entity": "electronics",
  "criteria": { "min_rating": 4 }
}

Input: "Do you have any laptops?"
Output:
{
  "intent": "availability",
  "entity": "laptops",
  "criteria": null
}

Now analyze this message and return JSON only:
Message: "%s"`, message)
}
