// Package media supplies the video asset for a run and opens asset payloads for upload.
package media

import (
	"context"
	"errors"
	"strings"

	"github.com/shortsgen/backend/internal/config"
	"github.com/shortsgen/backend/internal/logging"
	"github.com/shortsgen/backend/internal/models"
)

// Acquirer produces a media reference for a visual prompt. A video-synthesis provider would
// implement it.
type Acquirer interface {
	Acquire(ctx context.Context, prompt string) (models.MediaReference, error)
}

// Placeholder always returns the same configured reference and never fails.
type Placeholder struct {
	ref models.MediaReference
}

// NewPlaceholder constructs an acquirer from the media configuration.
func NewPlaceholder(cfg config.MediaConfig) (*Placeholder, error) {
	url := strings.TrimSpace(cfg.PlaceholderURL)
	if url == "" {
		return nil, errors.New("media: placeholder url must be provided")
	}
	return &Placeholder{ref: models.MediaReference{URL: url, ContentType: cfg.PlaceholderContentType}}, nil
}

// Acquire ignores the prompt.
func (p *Placeholder) Acquire(ctx context.Context, prompt string) (models.MediaReference, error) {
	logging.FromContext(ctx).Debug("returning placeholder media", "url", p.ref.URL, "promptLength", len(prompt))
	return p.ref, nil
}

var _ Acquirer = (*Placeholder)(nil)
