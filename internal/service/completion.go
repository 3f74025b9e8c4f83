package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"chatbot/internal/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// CompletionOptions controls sampling for a single completion call
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int
}

// CompletionClient is the interface for text-completion providers
type CompletionClient interface {
	// Complete submits a single-turn prompt and returns the generated text
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// Ensure GroqClient implements CompletionClient
var _ CompletionClient = (*GroqClient)(nil)

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint
type GroqClient struct {
	client  *openai.Client
	model   string
	enabled bool
	logger  *zap.Logger
}

// NewGroqClient creates a completion client for the configured endpoint
func NewGroqClient(cfg *config.GroqConfig, logger *zap.Logger) *GroqClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIBase != "" {
		clientConfig.BaseURL = cfg.APIBase
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	}

	return &GroqClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// IsEnabled returns whether an API key was configured
func (c *GroqClient) IsEnabled() bool {
	return c.enabled
}

// Complete submits the prompt as a single user message and returns the
// trimmed content of the first choice
func (c *GroqClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	// ChatCompletionRequest.Temperature is omitempty, so a literal 0 would
	// never reach the wire and the provider would sample at its own
	// default. Substitute the smallest nonzero value to pin sampling.
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("completion received",
		zap.String("model", c.model),
		zap.Int("length", len(content)))

	return content, nil
}
