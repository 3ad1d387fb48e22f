package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/generation"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/metrics"
)

// LLMConfig configures the chat-completion client
type LLMConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	// HTTPClient overrides the transport; nil uses the library default
	HTTPClient *http.Client
}

// LLMClient implements generation.TextGenerator over an OpenAI-compatible
// chat-completions endpoint.
type LLMClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewLLMClient creates a new LLM client
func NewLLMClient(cfg LLMConfig) *LLMClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	return &LLMClient{
		client:    openai.NewClientWithConfig(oc),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete sends prompt as a single user message and returns the first choice
func (c *LLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		MaxTokens: c.maxTokens,
	})
	metrics.RecordLLMRequest(time.Since(start))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", generation.ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", generation.ErrEmptyCompletion
	}
	return text, nil
}
