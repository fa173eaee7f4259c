package generator

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/config"
)

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAIClient calls the OpenAI chat completions endpoint
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates an OpenAI client with the given request timeout
func NewOpenAIClient(cfg config.AIProviderConfig, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// GenerateText sends the prompt as a single user message in JSON mode and returns the first choice
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !HasUsableKey(c.apiKey) {
		return "", ErrMissingAPIKey
	}

	body := openAIRequest{
		Model:          c.model,
		Messages:       []openAIMessage{{Role: "user", Content: prompt}},
		ResponseFormat: &openAIResponseFormat{Type: "json_object"},
	}

	var resp openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := postJSON(ctx, c.httpClient, c.Name(), c.baseURL+"/v1/chat/completions", headers, body, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", apperr.Upstream("openai returned no choices", nil)
	}
	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return "", apperr.Upstream("openai refused the prompt: "+msg.Refusal, nil)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return "", apperr.Upstream("openai returned empty content", nil)
	}
	return msg.Content, nil
}
