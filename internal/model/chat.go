package model

// ChatRequest is the inbound body for POST /api/chat/
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the generated reply
type ChatResponse struct {
	Response string `json:"response"`
}
