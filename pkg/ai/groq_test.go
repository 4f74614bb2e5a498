package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func groqChoices(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
}

func TestGroqComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/openai/v1/chat/completions") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}

		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model == "" {
			t.Fatal("model must be set")
		}

		json.NewEncoder(w).Encode(groqChoices("TITLE: Sync"))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	content, err := client.Complete(context.Background(), "summarize this transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "TITLE: Sync" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestGroqComplete_RetriesOnServerError(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(groqChoices("recovered"))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL, MaxRetries: 2})

	content, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "recovered" {
		t.Fatalf("unexpected content %q", content)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts got %d", attempts)
	}
}

func TestGroqComplete_ClientErrorNotRetried(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL, MaxRetries: 3})

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on 400 response")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt for client error, got %d", attempts)
	}
}

func TestGroqComplete_NotConfigured(t *testing.T) {
	client := NewGroqClient(&config.GroqConfig{BaseURL: "http://localhost:1"})
	if client.Configured() {
		t.Skip("GROQ_API_KEY present in environment")
	}
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error when not configured")
	}
}
