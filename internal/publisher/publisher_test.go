package publisher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/shortsgen/backend/internal/config"
	"github.com/shortsgen/backend/internal/media"
	"github.com/shortsgen/backend/internal/models"
)

func TestTitle(t *testing.T) {
	exact := strings.Repeat("a", 100)
	long := strings.Repeat("b", 101)
	wide := strings.Repeat("é", 120)

	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{name: "short", topic: "5 Amazing Facts About Space", want: "5 Amazing Facts About Space"},
		{name: "exactly 100", topic: exact, want: exact},
		{name: "101 characters", topic: long, want: strings.Repeat("b", 97) + "..."},
		{name: "multibyte", topic: wide, want: strings.Repeat("é", 97) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(tt.topic)
			if got != tt.want {
				t.Fatalf("expected %q got %q", tt.want, got)
			}
			if n := len([]rune(got)); n > 100 {
				t.Fatalf("expected at most 100 characters got %d", n)
			}
		})
	}
}

func TestBuildMetadata(t *testing.T) {
	meta := BuildMetadata("Space", "Did you know?")

	if meta.Title != "Space" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.Description != "Did you know?\n\n#Shorts #AI #Generated" {
		t.Fatalf("unexpected description %q", meta.Description)
	}
	if meta.CategoryID != "22" || meta.PrivacyStatus != "public" || meta.MadeForKids {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if strings.Join(meta.Tags, ",") != "shorts,ai,generated" {
		t.Fatalf("unexpected tags %v", meta.Tags)
	}
}

func TestMockPublish(t *testing.T) {
	mock, err := NewMock("dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("new mock: %v", err)
	}

	video, err := mock.Publish(context.Background(), models.MediaReference{URL: "https://example.com/a.png"}, BuildMetadata("Space", "script"), &oauth2.Token{AccessToken: "a"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !regexp.MustCompile(`^https://www\.youtube\.com/watch\?v=[A-Za-z0-9_-]{11}$`).MatchString(video.URL) {
		t.Fatalf("unexpected video url %q", video.URL)
	}
	if video.Title != "Space" {
		t.Fatalf("unexpected title %q", video.Title)
	}

	for _, token := range []*oauth2.Token{nil, {}} {
		if _, err := mock.Publish(context.Background(), models.MediaReference{}, models.VideoMetadata{}, token); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("expected missing credentials got %v", err)
		}
	}
}

type stubOpener struct {
	err    error
	opened bool
}

func (s *stubOpener) Open(_ context.Context, _ models.MediaReference) (media.Payload, error) {
	s.opened = true
	if s.err != nil {
		return media.Payload{}, s.err
	}
	return media.Payload{Body: io.NopCloser(strings.NewReader("video-bytes")), ContentType: "video/mp4", Size: 11}, nil
}

func newYouTubeServer(t *testing.T, status int, response string, body *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/upload/youtube/v3/videos") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer access-token" {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.URL.Query()["part"]; strings.Join(got, ",") != "snippet,status" {
			t.Errorf("unexpected part parameter %v", got)
		}
		raw, _ := io.ReadAll(r.Body)
		*body = string(raw)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func newTestYouTube(t *testing.T, serverURL string, opener MediaOpener) *YouTube {
	t.Helper()
	oauth := &oauth2.Config{ClientID: "id", ClientSecret: "secret", Endpoint: oauth2.Endpoint{TokenURL: serverURL + "/token"}}
	yt, err := NewYouTube(oauth, opener, option.WithEndpoint(serverURL+"/"))
	if err != nil {
		t.Fatalf("new youtube: %v", err)
	}
	return yt
}

func validToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "access-token", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
}

func TestYouTubePublish(t *testing.T) {
	var body string
	server := newYouTubeServer(t, http.StatusOK, `{"id":"abcDEF12345","snippet":{"title":"Space"}}`, &body)
	defer server.Close()

	opener := &stubOpener{}
	yt := newTestYouTube(t, server.URL, opener)

	video, err := yt.Publish(context.Background(), models.MediaReference{URL: "https://example.com/v.mp4"}, BuildMetadata("Space", "script"), validToken())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if video.URL != "https://www.youtube.com/watch?v=abcDEF12345" {
		t.Fatalf("unexpected url %q", video.URL)
	}
	if !opener.opened {
		t.Fatal("expected media to be opened")
	}
	for _, want := range []string{`"title":"Space"`, `"categoryId":"22"`, `"privacyStatus":"public"`, `"selfDeclaredMadeForKids":false`, "video-bytes"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected upload body to contain %s got %q", want, body)
		}
	}
}

func TestYouTubePublishErrors(t *testing.T) {
	var body string
	server := newYouTubeServer(t, http.StatusForbidden, `{"error":{"code":403,"message":"quota exceeded"}}`, &body)
	defer server.Close()

	yt := newTestYouTube(t, server.URL, &stubOpener{})
	if _, err := yt.Publish(context.Background(), models.MediaReference{}, BuildMetadata("x", "y"), validToken()); !errors.Is(err, ErrPublish) {
		t.Fatalf("expected publish error got %v", err)
	}

	failing := newTestYouTube(t, server.URL, &stubOpener{err: media.ErrUnsupportedMedia})
	if _, err := failing.Publish(context.Background(), models.MediaReference{}, BuildMetadata("x", "y"), validToken()); !errors.Is(err, ErrPublish) {
		t.Fatalf("expected publish error for unreadable media got %v", err)
	}

	if _, err := yt.Publish(context.Background(), models.MediaReference{}, models.VideoMetadata{}, nil); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected missing credentials got %v", err)
	}
}

func TestNewSelectsMode(t *testing.T) {
	p, err := New(config.PublishConfig{Mode: config.PublishModeMock, MockVideoID: "dQw4w9WgXcQ"}, nil)
	if err != nil {
		t.Fatalf("mock mode: %v", err)
	}
	if _, ok := p.(*Mock); !ok {
		t.Fatalf("expected mock publisher got %T", p)
	}

	if _, err := New(config.PublishConfig{Mode: config.PublishModeYouTube}, nil); err == nil {
		t.Fatal("expected error without youtube publisher")
	}
	if _, err := New(config.PublishConfig{Mode: "ftp"}, nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
