package model

// Intent is the coarse classification of what the user wants
type Intent string

const (
	IntentPriceQuery    Intent = "price_query"
	IntentAvailability  Intent = "availability"
	IntentRatingFilter  Intent = "rating_filter"
	IntentReviewRequest Intent = "review_request"
	IntentCategoryQuery Intent = "category_query"
	IntentUnknown       Intent = "unknown"
)

// Valid reports whether the intent is one of the recognized values
func (i Intent) Valid() bool {
	switch i {
	case IntentPriceQuery, IntentAvailability, IntentRatingFilter,
		IntentReviewRequest, IntentCategoryQuery, IntentUnknown:
		return true
	}
	return false
}

// IntentResult represents the parsed intent from a user message
type IntentResult struct {
	Intent   Intent                 `json:"intent"`
	Entity   *string                `json:"entity"`
	Criteria map[string]interface{} `json:"criteria"`
}

// MinRating returns criteria["min_rating"] if present and numeric,
// otherwise the given default
func (r *IntentResult) MinRating(defaultValue float64) float64 {
	if r.Criteria == nil {
		return defaultValue
	}
	if v, ok := r.Criteria["min_rating"].(float64); ok {
		return v
	}
	return defaultValue
}
