// Package publisher uploads generated media to the user's YouTube channel.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/shortsgen/backend/internal/config"
	"github.com/shortsgen/backend/internal/logging"
	"github.com/shortsgen/backend/internal/models"
	"github.com/shortsgen/backend/internal/session"
)

const watchURLFormat = "https://www.youtube.com/watch?v=%s"

// Publisher submits media with metadata using the caller's token bundle.
type Publisher interface {
	Publish(ctx context.Context, ref models.MediaReference, meta models.VideoMetadata, token *oauth2.Token) (models.PublishedVideo, error)
}

// WatchURL returns the public watch page for a video id.
func WatchURL(videoID string) string {
	return fmt.Sprintf(watchURLFormat, videoID)
}

// Mock returns a fixed video without contacting the provider.
type Mock struct {
	videoID string
}

// NewMock constructs a dry-run publisher that reports videoID for every upload.
func NewMock(videoID string) (*Mock, error) {
	if videoID == "" {
		return nil, errors.New("publisher: mock video id must be provided")
	}
	return &Mock{videoID: videoID}, nil
}

// Publish checks the credentials and returns the fixed watch URL.
func (m *Mock) Publish(ctx context.Context, ref models.MediaReference, meta models.VideoMetadata, token *oauth2.Token) (models.PublishedVideo, error) {
	if !session.Usable(token) {
		return models.PublishedVideo{}, ErrMissingCredentials
	}

	logging.FromContext(ctx).Info("dry-run publish",
		slog.String("mediaUrl", ref.URL),
		slog.String("title", meta.Title),
		slog.String("videoId", m.videoID),
	)

	return models.PublishedVideo{
		URL:         WatchURL(m.videoID),
		Title:       meta.Title,
		Description: meta.Description,
	}, nil
}

// New selects the publisher named by cfg.Mode.
func New(cfg config.PublishConfig, youtube *YouTube) (Publisher, error) {
	switch cfg.Mode {
	case config.PublishModeMock, "":
		return NewMock(cfg.MockVideoID)
	case config.PublishModeYouTube:
		if youtube == nil {
			return nil, errors.New("publisher: youtube publisher must be provided")
		}
		return youtube, nil
	default:
		return nil, fmt.Errorf("publisher: unknown mode %q", cfg.Mode)
	}
}

var (
	_ Publisher = (*Mock)(nil)
	_ Publisher = (*YouTube)(nil)
)
