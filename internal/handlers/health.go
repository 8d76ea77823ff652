package handlers

import "net/http"

// HealthHandler reports liveness along with the publish mode and LLM provider in use.
type HealthHandler struct {
	PublishMode string
	LLMProvider string
}

type healthResponse struct {
	Status      string `json:"status"`
	PublishMode string `json:"publishMode,omitempty"`
	LLMProvider string `json:"llmProvider,omitempty"`
}

// Handle implements GET /healthz.
func (h HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, healthResponse{
		Status:      "ok",
		PublishMode: h.PublishMode,
		LLMProvider: h.LLMProvider,
	})
}
