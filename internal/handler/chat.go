package handler

import (
	"net/http"

	"chatbot/internal/model"
	"chatbot/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles conversational HTTP requests
type ChatHandler struct {
	extractor *service.IntentExtractor
	composer  *service.ResponseComposer
}

// NewChatHandler creates a new chat handler
func NewChatHandler(extractor *service.IntentExtractor, composer *service.ResponseComposer) *ChatHandler {
	return &ChatHandler{
		extractor: extractor,
		composer:  composer,
	}
}

// Chat handles POST /api/chat/
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Intent extraction never fails; the composer's upstream calls can
	result := h.extractor.Analyze(ctx, req.Message)

	reply, err := h.composer.Compose(ctx, result, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Response: reply})
}
