package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appErr "github.com/leadflow/server/pkg/errors"
)

// CompletionClient sends a single instruction to a text-completion service
// and returns the raw response text. One request per call, no retries; a
// transient provider failure surfaces to the caller.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIConfig configures the chat-completions client.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClient implements CompletionClient against the OpenAI
// chat-completions API.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &OpenAIClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message, requesting a JSON
// object response body.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", appErr.New(appErr.CodeUpstream, "completion service unavailable")
	}

	body, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "marshal completion request failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "build completion request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeUpstream, "completion service unavailable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeUpstream, "completion service unavailable")
	}
	if resp.StatusCode != http.StatusOK {
		return "", appErr.Wrap(
			fmt.Errorf("completion service returned %d: %s", resp.StatusCode, truncate(raw, 512)),
			appErr.CodeUpstream, "completion service unavailable")
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", appErr.Wrap(err, appErr.CodeUpstream, "completion service unavailable")
	}
	if len(cr.Choices) == 0 {
		return "", appErr.New(appErr.CodeUpstream, "completion service unavailable")
	}
	return cr.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
