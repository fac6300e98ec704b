package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrNoAPIKey      = errors.New("llm api key not configured")
	ErrEmptyResponse = errors.New("llm returned no text")
)

const (
	completionTemperature = 0.7
	completionMaxTokens   = 150
)

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// LLMClient talks to an OpenAI-compatible /v1/completions endpoint.
type LLMClient struct {
	model  string
	hasKey bool
	client *openai.Client
}

func NewLLMClient(cfg LLMConfig, httpClient *http.Client) *LLMClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		oc.BaseURL = base + "/v1"
	}
	if httpClient != nil {
		oc.HTTPClient = httpClient
	}
	return &LLMClient{
		model:  cfg.Model,
		hasKey: cfg.APIKey != "",
		client: openai.NewClientWithConfig(oc),
	}
}

func (c *LLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.hasKey {
		return "", ErrNoAPIKey
	}

	resp, err := c.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       c.model,
		Prompt:      prompt,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
