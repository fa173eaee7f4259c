package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dinolearn/backend/internal/apperr"
)

// TextClient sends a prompt to a hosted text generation API and returns the raw answer
type TextClient interface {
	// Name returns the provider name used in logs
	Name() string
	// GenerateText sends the prompt and returns the generated text.
	//
	// Returns ErrMissingAPIKey without any network call when the client has no usable key.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ErrMissingAPIKey is returned by clients configured without a usable API key
var ErrMissingAPIKey = errors.New("api key is not set or is a placeholder")

// maxResponseSize bounds the provider answer read into memory
const maxResponseSize = 4 << 20

// HasUsableKey reports whether key is set and is not a placeholder such as "your_gemini_api_key_here"
func HasUsableKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	return !(strings.HasPrefix(key, "your_") && strings.HasSuffix(key, "_here"))
}

// postJSON sends body as JSON and decodes a 2xx answer into out.
// Transport failures and non-2xx statuses are returned as upstream errors.
func postJSON(ctx context.Context, httpClient *http.Client, provider, url string, headers map[string]string, body, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("failed to encode %s request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return apperr.Upstream(provider+" request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return apperr.Upstream("failed to read "+provider+" response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.Upstream(provider+" request failed", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(raw), 300)))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Upstream("failed to decode "+provider+" response", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
