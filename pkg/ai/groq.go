package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// GroqClient is a minimal client for Groq chat completions, used as
// the summarization collaborator.
type GroqClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries uint64
	client     *http.Client
}

// NewGroqClient creates a Groq client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}

	model := "llama-3.1-70b-versatile"
	timeout := 60 * time.Second
	var maxRetries uint64 = 3
	if cfg != nil {
		if cfg.Model != "" {
			model = cfg.Model
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		maxRetries = cfg.MaxRetries
	}

	return &GroqClient{
		apiKey:     apiKey,
		baseURL:    base,
		model:      model,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: timeout},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Configured reports whether credentials are present
func (g *GroqClient) Configured() bool {
	return g.apiKey != ""
}

// Complete sends a single-turn prompt to Groq and returns the
// assistant content.
func (g *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("groq client not configured")
	}

	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []map[string]string{{"role": "user", "content": prompt}},
		Temperature: 0.2,
		MaxTokens:   1000,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"

	var content string
	completeFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			io.Copy(io.Discard, resp.Body)
			err := fmt.Errorf("groq returned status %d", resp.StatusCode)
			// Only rate limits and server errors are worth retrying
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return err
			}
			return backoff.Permanent(err)
		}

		var cr ChatResponse
		if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
			return err
		}
		if len(cr.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("empty response from groq"))
		}
		content = cr.Choices[0].Message.Content
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), g.maxRetries)
	if err := backoff.Retry(completeFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	return content, nil
}
