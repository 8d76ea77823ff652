package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shortsgen/backend/internal/models"
)

func newServer(t *testing.T, stream string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("youtube_tokens")
		authenticated := err == nil && cookie.Value == "sealed"

		switch r.URL.Path {
		case "/auth/status":
			w.Header().Set("Content-Type", "application/json")
			if authenticated {
				_, _ = w.Write([]byte(`{"authenticated":true}`))
				return
			}
			_, _ = w.Write([]byte(`{"authenticated":false}`))
		case "/generate":
			if !authenticated {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Not authenticated"}`))
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte(stream))
		default:
			http.NotFound(w, r)
		}
	}))
}

const successStream = "data: {\"status\":\"Generating script...\"}\n\n" +
	"data: {\"status\":\"Creating video concept...\"}\n\n" +
	"data: {\"status\":\"Generating video (this may take a few minutes)...\"}\n\n" +
	"data: {\"status\":\"Uploading to YouTube...\"}\n\n" +
	"data: {\"status\":\"Upload complete!\",\"videoUrl\":\"https://www.youtube.com/watch?v=dQw4w9WgXcQ\",\"script\":\"s\",\"videoPrompt\":\"p\"}\n\n"

func TestStatus(t *testing.T) {
	server := newServer(t, "")
	defer server.Close()

	ok, err := New(server.URL, "youtube_tokens", "sealed", nil).Status(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected authenticated got %v %v", ok, err)
	}

	ok, err = New(server.URL, "youtube_tokens", "", nil).Status(context.Background())
	if err != nil || ok {
		t.Fatalf("expected unauthenticated got %v %v", ok, err)
	}
}

func TestGenerateSuccess(t *testing.T) {
	server := newServer(t, successStream)
	defer server.Close()

	var seen []models.Event
	final, err := New(server.URL+"/", "youtube_tokens", "sealed", nil).Generate(context.Background(), "space", func(ev models.Event) {
		seen = append(seen, ev)
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 events got %d", len(seen))
	}
	if final.VideoURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" || final.Script != "s" || final.VideoPrompt != "p" {
		t.Fatalf("unexpected final event %+v", final)
	}
}

func TestGenerateErrors(t *testing.T) {
	errStream := "data: {\"status\":\"Generating script...\"}\n\ndata: {\"error\":\"generation failed\"}\n\n"
	server := newServer(t, errStream)
	defer server.Close()

	_, err := New(server.URL, "youtube_tokens", "", nil).Generate(context.Background(), "space", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Not authenticated" {
		t.Fatalf("expected unauthorized api error got %v", err)
	}

	final, err := New(server.URL, "youtube_tokens", "sealed", nil).Generate(context.Background(), "space", nil)
	if err == nil || !strings.Contains(err.Error(), "generation failed") {
		t.Fatalf("expected run error got %v", err)
	}
	if final.Error != "generation failed" {
		t.Fatalf("expected error event got %+v", final)
	}
}

func TestGenerateStreamEndsEarly(t *testing.T) {
	server := newServer(t, "data: {\"status\":\"Generating script...\"}\n\n")
	defer server.Close()

	if _, err := New(server.URL, "youtube_tokens", "sealed", nil).Generate(context.Background(), "space", nil); !errors.Is(err, ErrStreamEnded) {
		t.Fatalf("expected stream ended error got %v", err)
	}
}
