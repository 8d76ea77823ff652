package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{PublishMode: deps.PublishMode, LLMProvider: deps.LLMProvider}
	auth := AuthHandler{Auth: deps.Auth}
	generate := GenerateHandler{Auth: deps.Auth, Pipeline: deps.Pipeline, Limiter: deps.GenerateLimiter, TrustProxy: deps.TrustProxy}
	view := ViewHandler{Page: deps.Page}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/authorize", auth.Authorize)
	mux.HandleFunc("/authorize/callback", auth.Callback)
	mux.HandleFunc("/auth/status", auth.Status)
	mux.HandleFunc("/generate", generate.Generate)
	mux.HandleFunc("/", view.Index)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Auth            Authorizer
	Pipeline        Pipeline
	GenerateLimiter RateLimiter
	Page            []byte
	TrustProxy      bool

	// Reported by /healthz.
	PublishMode string
	LLMProvider string
}
