package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatbot/internal/model"
	"chatbot/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fixedCompletion returns a canned reply for every prompt. Disabled so the
// intent extractor always takes the local parser.
type fixedCompletion struct {
	reply string
	err   error
}

func (f *fixedCompletion) Complete(ctx context.Context, prompt string, opts service.CompletionOptions) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fixedCompletion) IsEnabled() bool { return false }

// fixedFinder serves the same products for every lookup
type fixedFinder struct {
	products []model.Product
	err      error
}

func (f *fixedFinder) FindByName(ctx context.Context, name string, limit int) ([]model.Product, error) {
	return f.products, f.err
}

func (f *fixedFinder) FilterByRating(ctx context.Context, minRating float64, limit int) ([]model.Product, error) {
	return f.products, f.err
}

func newChatRouter(completion service.CompletionClient, finder service.ProductFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)

	extractor := service.NewIntentExtractor(completion, 300, zap.NewNop())
	composer := service.NewResponseComposer(finder, completion, 0.5, zap.NewNop())

	router := gin.New()
	router.POST("/api/chat/", NewChatHandler(extractor, composer).Chat)
	return router
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_Chat(t *testing.T) {
	rating := 4.69
	router := newChatRouter(
		&fixedCompletion{reply: "The iPhone 9 costs $549 and is rated 4.69."},
		&fixedFinder{products: []model.Product{{
			ID:     1,
			Title:  "iPhone 9",
			Price:  549,
			Rating: &rating,
		}}},
	)

	w := postChat(router, `{"message": "What's the price of iPhone?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response body not JSON: %v", err)
	}
	if resp.Response != "The iPhone 9 costs $549 and is rated 4.69." {
		t.Errorf("response = %q", resp.Response)
	}
}

func TestChatHandler_MissingMessage(t *testing.T) {
	router := newChatRouter(&fixedCompletion{reply: "unused"}, &fixedFinder{})

	w := postChat(router, `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestChatHandler_ComposerFailure(t *testing.T) {
	router := newChatRouter(
		&fixedCompletion{err: errors.New("completion unavailable")},
		&fixedFinder{},
	)

	w := postChat(router, `{"message": "What's the price of iPhone?"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not JSON: %v", err)
	}
	if !strings.Contains(body["detail"], "completion unavailable") {
		t.Errorf("detail = %q, want original failure text", body["detail"])
	}
}

func TestChatHandler_CatalogFailure(t *testing.T) {
	router := newChatRouter(
		&fixedCompletion{reply: "unused"},
		&fixedFinder{err: errors.New("catalog returned status 502")},
	)

	w := postChat(router, `{"message": "What's the price of iPhone?"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "catalog returned status 502") {
		t.Errorf("body = %q, want original failure text", w.Body.String())
	}
}
