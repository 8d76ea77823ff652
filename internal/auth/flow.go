package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"

	"github.com/shortsgen/backend/internal/config"
	"github.com/shortsgen/backend/internal/logging"
	"github.com/shortsgen/backend/internal/session"
)

var (
	// ErrMissingCode indicates the provider redirected back without an authorization code.
	ErrMissingCode = errors.New("authorization code missing")
	// ErrExchangeFailed indicates the provider rejected the authorization code.
	ErrExchangeFailed = errors.New("authorization code exchange failed")
)

// Scopes requested from the provider. Upload covers videos.insert, the broader scope covers
// reading back channel details.
var Scopes = []string{youtube.YoutubeUploadScope, youtube.YoutubeScope}

// TokenStore persists the token bundle between requests.
type TokenStore interface {
	Save(w http.ResponseWriter, token *oauth2.Token) error
	Load(r *http.Request) (*oauth2.Token, error)
	Present(r *http.Request) bool
}

// NewOAuthConfig builds the Google OAuth client used for the YouTube consent flow.
func NewOAuthConfig(cfg config.OAuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}

// Flow runs the authorization-code exchange and keeps the resulting bundle in the session store.
type Flow struct {
	oauth *oauth2.Config
	store TokenStore
}

// NewFlow constructs a Flow backed by the provided OAuth client and store.
func NewFlow(oauth *oauth2.Config, store TokenStore) (*Flow, error) {
	if oauth == nil {
		return nil, errors.New("auth: oauth config must be provided")
	}
	if store == nil {
		return nil, errors.New("auth: token store must be provided")
	}
	return &Flow{oauth: oauth, store: store}, nil
}

// OAuthConfig exposes the client so publishers can build authenticated HTTP clients.
func (f *Flow) OAuthConfig() *oauth2.Config {
	return f.oauth
}

// AuthorizationURL returns the consent page URL. Offline access with a forced consent prompt
// makes the provider issue a refresh token on every authorization.
func (f *Flow) AuthorizationURL() string {
	return f.oauth.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Complete exchanges the authorization code and stores the resulting bundle, replacing any
// previous one.
func (f *Flow) Complete(ctx context.Context, w http.ResponseWriter, code string) (*oauth2.Token, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMissingCode
	}

	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	if err := f.store.Save(w, token); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	logging.FromContext(ctx).Info("authorization completed",
		"hasRefreshToken", token.RefreshToken != "",
		"expiry", token.Expiry,
	)
	return token, nil
}

// Authenticated reports whether the request carries a token bundle. Expiry is not checked.
func (f *Flow) Authenticated(r *http.Request) bool {
	return f.store.Present(r)
}

// Credentials returns the stored bundle or session.ErrNoSession.
func (f *Flow) Credentials(r *http.Request) (*oauth2.Token, error) {
	return f.store.Load(r)
}

var _ TokenStore = (*session.Store)(nil)
