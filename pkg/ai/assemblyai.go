package ai

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// AssemblyAIClient wraps the official AssemblyAI SDK as the
// transcription collaborator. Upload bytes are sent directly and the
// SDK polls until the transcript completes.
type AssemblyAIClient struct {
	client     *aai.Client
	apiKey     string
	timeout    time.Duration
	maxRetries uint64
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided
// config. If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	timeout := 5 * time.Minute
	var maxRetries uint64 = 3
	var baseURL string

	if cfg != nil {
		apiKey = cfg.APIKey
		baseURL = cfg.BaseURL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		maxRetries = cfg.MaxRetries
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}

	opts := []aai.ClientOption{aai.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}

	return &AssemblyAIClient{
		client:     aai.NewClientWithOptions(opts...),
		apiKey:     apiKey,
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

// Configured reports whether credentials are present
func (c *AssemblyAIClient) Configured() bool {
	return c.apiKey != ""
}

// Transcribe uploads audio bytes and waits for the finished
// transcript. An empty transcript is returned as-is, not an error.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("assemblyai client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		LanguageDetection: aai.Bool(true),
	}

	var text string
	transcribeFn := func() error {
		transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, bytes.NewReader(audio), params)
		if err != nil {
			return err
		}
		if transcript.Status == aai.TranscriptStatusError {
			msg := "transcription failed"
			if transcript.Error != nil {
				msg = *transcript.Error
			}
			// The service rejected this audio; retrying won't help
			return backoff.Permanent(fmt.Errorf("assemblyai: %s", msg))
		}
		if transcript.Text != nil {
			text = *transcript.Text
		}
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries)
	if err := backoff.Retry(transcribeFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("failed to transcribe %s upload: %w", mimeType, err)
	}

	return text, nil
}
