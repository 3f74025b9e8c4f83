package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatbot/internal/config"

	"go.uber.org/zap"
)

const completionFixture = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"choices": [
		{"index": 0, "message": {"role": "assistant", "content": "  The iPhone 9 costs $549.  "}, "finish_reason": "stop"}
	]
}`

func newTestGroq(t *testing.T, capture *[]byte) *GroqClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*capture = body
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionFixture))
	}))
	t.Cleanup(server.Close)

	return NewGroqClient(&config.GroqConfig{
		APIKey:  "test-key",
		APIBase: server.URL,
		Model:   "llama-3.1-8b-instant",
		Timeout: 5,
		Enabled: true,
	}, zap.NewNop())
}

func TestGroqClient_Complete(t *testing.T) {
	var body []byte
	client := newTestGroq(t, &body)

	reply, err := client.Complete(context.Background(), "classify this", CompletionOptions{
		Temperature: 0.5,
		MaxTokens:   300,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if reply != "The iPhone 9 costs $549." {
		t.Errorf("reply = %q, want trimmed fixture content", reply)
	}

	var req map[string]interface{}
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("outbound body not JSON: %v", err)
	}
	if req["model"] != "llama-3.1-8b-instant" {
		t.Errorf("model = %v", req["model"])
	}
	if req["temperature"] != 0.5 {
		t.Errorf("temperature = %v, want 0.5", req["temperature"])
	}
	if req["max_tokens"] != float64(300) {
		t.Errorf("max_tokens = %v, want 300", req["max_tokens"])
	}
}

func TestGroqClient_ZeroTemperatureReachesWire(t *testing.T) {
	// A literal 0 would be dropped by the request struct's omitempty tag,
	// silently handing sampling to the provider default
	var body []byte
	client := newTestGroq(t, &body)

	_, err := client.Complete(context.Background(), "classify this", CompletionOptions{
		Temperature: 0,
		MaxTokens:   300,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	var req map[string]interface{}
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("outbound body not JSON: %v", err)
	}

	raw, ok := req["temperature"]
	if !ok {
		t.Fatalf("outbound body has no temperature field: %s", body)
	}
	temperature, ok := raw.(float64)
	if !ok {
		t.Fatalf("temperature = %v, want a number", raw)
	}
	if temperature > 1e-6 {
		t.Errorf("temperature = %v, want effectively zero", temperature)
	}
}
