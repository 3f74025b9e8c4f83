package service

import (
	"regexp"
	"strconv"
	"strings"

	"chatbot/internal/model"
)

// Pattern rules for the deterministic parser, tried in priority order.
// Rules are mutually exclusive by construction order, not by content.
var (
	priceRe        = regexp.MustCompile(`(?:price of|price for|how much is|what(?:'s| is) the price of)\s+([\w\s\-]+)\??`)
	ratingRe       = regexp.MustCompile(`rating(?:s)? (?:above|over|greater than|>=)\s*(\d+(?:\.\d+)?)`)
	ratingEntityRe = regexp.MustCompile(`(?:show me|list|find)\s+([\w\s]+?)\s+(?:with|having|that have)\s+rating`)
	availabilityRe = regexp.MustCompile(`(?:do you have|have any|in stock|available)\s+(?:any\s+)?([\w\s\-]+)\??`)
	reviewRe       = regexp.MustCompile(`(?:reviews?|opinions?) (?:for|about)\s+([\w\s\-]+)`)
	categoryRe     = regexp.MustCompile(`(?:show me|list|find|browse)\s+([\w\s]+)`)
)

// knownCategories gates the category rule: a browse-style phrase only counts
// as a category query when it mentions one of these
var knownCategories = []string{
	"electronics", "fragrances", "groceries", "laptops",
	"smartphones", "skincare", "home",
}

// LocalParser is the deterministic intent parser used when the model path
// is unavailable or inconclusive. It guarantees a structurally valid result
// for any input.
type LocalParser struct{}

// NewLocalParser creates a new local parser
func NewLocalParser() *LocalParser {
	return &LocalParser{}
}

// Parse matches the lower-cased message against the pattern rules in fixed
// priority order and returns the first match, or an unknown result
func (p *LocalParser) Parse(message string) *model.IntentResult {
	text := strings.ToLower(strings.TrimSpace(message))

	// 1. Price query: "price of X", "how much is X"
	if m := priceRe.FindStringSubmatch(text); m != nil {
		return &model.IntentResult{
			Intent: model.IntentPriceQuery,
			Entity: entityPtr(m[1]),
		}
	}

	// 2. Rating filter: "ratings above 4", optionally "show me <category>
	//    with rating above 4"
	if m := ratingRe.FindStringSubmatch(text); m != nil {
		minRating, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			result := &model.IntentResult{
				Intent:   model.IntentRatingFilter,
				Criteria: map[string]interface{}{"min_rating": minRating},
			}
			if cm := ratingEntityRe.FindStringSubmatch(text); cm != nil {
				result.Entity = entityPtr(cm[1])
			}
			return result
		}
	}

	// 3. Availability: "do you have X", "any X in stock"
	if m := availabilityRe.FindStringSubmatch(text); m != nil {
		return &model.IntentResult{
			Intent: model.IntentAvailability,
			Entity: entityPtr(m[1]),
		}
	}

	// 4. Review request: "reviews for X", "opinions about X"
	if m := reviewRe.FindStringSubmatch(text); m != nil {
		return &model.IntentResult{
			Intent: model.IntentReviewRequest,
			Entity: entityPtr(m[1]),
		}
	}

	// 5. Category query: "show me electronics", gated on known categories
	if m := categoryRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		for _, category := range knownCategories {
			if strings.Contains(candidate, category) {
				return &model.IntentResult{
					Intent: model.IntentCategoryQuery,
					Entity: entityPtr(candidate),
				}
			}
		}
	}

	return &model.IntentResult{Intent: model.IntentUnknown}
}

// entityPtr trims the captured entity and returns nil if nothing remains
func entityPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
