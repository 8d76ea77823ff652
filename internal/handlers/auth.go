package handlers

import (
	"errors"
	"net/http"

	"github.com/shortsgen/backend/internal/auth"
	"github.com/shortsgen/backend/internal/logging"
)

const (
	callbackErrorNoCode     = "/?error=no_code"
	callbackErrorAuthFailed = "/?error=auth_failed"
)

// AuthHandler implements the YouTube consent endpoints.
type AuthHandler struct {
	Auth Authorizer
}

type statusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Authorize handles GET /authorize by redirecting to the provider's consent page.
func (h AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if h.Auth == nil {
		logging.FromContext(r.Context()).Error("authorization dependencies unavailable")
		respondError(r.Context(), w, http.StatusInternalServerError, "authorization unavailable")
		return
	}

	http.Redirect(w, r, h.Auth.AuthorizationURL(), http.StatusFound)
}

// Callback handles GET /authorize/callback?code=... and always redirects back to the page.
func (h AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Auth == nil {
		logger.Error("authorization dependencies unavailable")
		http.Redirect(w, r, callbackErrorAuthFailed, http.StatusFound)
		return
	}

	if _, err := h.Auth.Complete(ctx, w, r.URL.Query().Get("code")); err != nil {
		if errors.Is(err, auth.ErrMissingCode) {
			logger.Warn("authorization callback without code", "providerError", r.URL.Query().Get("error"))
			http.Redirect(w, r, callbackErrorNoCode, http.StatusFound)
			return
		}
		logger.Error("authorization exchange failed", "error", err)
		http.Redirect(w, r, callbackErrorAuthFailed, http.StatusFound)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Status handles GET /auth/status.
func (h AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	authenticated := h.Auth != nil && h.Auth.Authenticated(r)
	respondJSON(r.Context(), w, http.StatusOK, statusResponse{Authenticated: authenticated})
}
