package generator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dinolearn/backend/internal/apperr"
	"github.com/dinolearn/backend/internal/config"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// GeminiClient calls the Google Gemini generateContent endpoint
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates a Gemini client with the given request timeout
func NewGeminiClient(cfg config.AIProviderConfig, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "gemini"
}

// GenerateText sends a single-turn prompt and returns the text of the first candidate
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !HasUsableKey(c.apiKey) {
		return "", ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	var resp geminiResponse
	if err := postJSON(ctx, c.httpClient, c.Name(), endpoint, map[string]string{"x-goog-api-key": c.apiKey}, body, &resp); err != nil {
		return "", err
	}

	if resp.PromptFeedback.BlockReason != "" {
		return "", apperr.Upstream("gemini blocked the prompt", fmt.Errorf("block reason %s", resp.PromptFeedback.BlockReason))
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperr.Upstream("gemini returned no candidates", nil)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
