package handlers

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/shortsgen/backend/internal/models"
	"github.com/shortsgen/backend/internal/pipeline"
)

// Authorizer runs the OAuth consent flow and reads the stored token bundle.
type Authorizer interface {
	AuthorizationURL() string
	Complete(ctx context.Context, w http.ResponseWriter, code string) (*oauth2.Token, error)
	Authenticated(r *http.Request) bool
	Credentials(r *http.Request) (*oauth2.Token, error)
}

// Pipeline starts a generation run and returns its progress stream.
type Pipeline interface {
	Start(ctx context.Context, req pipeline.Request) (<-chan models.Event, error)
}
