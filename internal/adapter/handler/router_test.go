package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meetings"
)

type stubCollaborator struct {
	configured bool
}

func (s *stubCollaborator) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return "", nil
}

func (s *stubCollaborator) Complete(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (s *stubCollaborator) Configured() bool { return s.configured }

func healthBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	return body
}

func TestHealth_AllComponentsReady(t *testing.T) {
	svc := meetings.NewService(&stubRepo{}, nil, 0, nil)
	router := NewRouter(nil, svc, &stubCollaborator{configured: true}, &stubCollaborator{configured: true}, nil)

	e := newTestEcho()
	router.Setup(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := healthBody(t, rec)
	if body["status"] != "ok" || body["database"] != "ok" {
		t.Fatalf("unexpected health body %v", body)
	}
}

func TestHealth_UnconfiguredCollaboratorDegrades(t *testing.T) {
	svc := meetings.NewService(&stubRepo{}, nil, 0, nil)
	router := NewRouter(nil, svc, &stubCollaborator{configured: true}, &stubCollaborator{configured: false}, nil)

	e := newTestEcho()
	router.Setup(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
	body := healthBody(t, rec)
	if body["status"] != "degraded" {
		t.Fatalf("expected degraded status got %q", body["status"])
	}
	if body["summarization"] != "not configured" {
		t.Fatalf("expected summarization not configured got %q", body["summarization"])
	}
	if body["transcription"] != "configured" {
		t.Fatalf("expected transcription configured got %q", body["transcription"])
	}
}
