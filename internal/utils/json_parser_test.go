package utils

import (
	"reflect"
	"testing"
)

func TestParseModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "pure JSON",
			input: `{"intent": "price_query", "entity": "iphone"}`,
			want: map[string]interface{}{
				"intent": "price_query",
				"entity": "iphone",
			},
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"intent": "availability", "entity": "laptops"}` + "\n```",
			want: map[string]interface{}{
				"intent": "availability",
				"entity": "laptops",
			},
		},
		{
			name: "bare code fence",
			input: "```\n" +
				`{"intent": "unknown"}` + "\n```",
			want: map[string]interface{}{
				"intent": "unknown",
			},
		},
		{
			name:  "JSON with surrounding prose",
			input: `Sure! Here is the classification: {"intent": "review_request", "entity": "airpods"} Hope that helps.`,
			want: map[string]interface{}{
				"intent": "review_request",
				"entity": "airpods",
			},
		},
		{
			name:  "braces inside string values",
			input: `Result: {"entity": "weird {product} name", "criteria": null}`,
			want: map[string]interface{}{
				"entity":   "weird {product} name",
				"criteria": nil,
			},
		},
		{
			name:  "nested object",
			input: `{"intent": "rating_filter", "criteria": {"min_rating": 4}}`,
			want: map[string]interface{}{
				"intent": "rating_filter",
				"criteria": map[string]interface{}{
					"min_rating": float64(4),
				},
			},
		},
		{
			name:    "no JSON at all",
			input:   "I could not produce a classification for that message.",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			input:   `{"intent": "price_query"`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseModelJSON(tt.input, &got)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModelJSON() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseModelJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object at start",
			input: `{"a": 1} trailing`,
			want:  `{"a": 1}`,
		},
		{
			name:  "object mid-text",
			input: `prefix {"a": {"b": 2}} suffix`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "escaped quotes",
			input: `{"a": "say \"hi\""}`,
			want:  `{"a": "say \"hi\""}`,
		},
		{
			name:  "no object",
			input: "nothing here",
			want:  "",
		},
		{
			name:  "unbalanced",
			input: `{"a": 1`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstJSONObject(tt.input); got != tt.want {
				t.Errorf("firstJSONObject() = %q, want %q", got, tt.want)
			}
		})
	}
}
