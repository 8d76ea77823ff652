package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/donovanhide/eventsource"

	"github.com/shortsgen/backend/internal/logging"
	"github.com/shortsgen/backend/internal/models"
	"github.com/shortsgen/backend/internal/pipeline"
)

// GenerateHandler starts a pipeline run and streams its progress as server-sent events.
type GenerateHandler struct {
	Auth     Authorizer
	Pipeline Pipeline
	Limiter  RateLimiter

	// TrustProxy keys the limiter on forwarding headers instead of the socket address.
	TrustProxy bool
}

// progressEvent adapts a models.Event to the eventsource wire format. Only the data field is
// written, so each record is "data: <json>\n\n".
type progressEvent struct {
	data string
}

func (e progressEvent) Id() string    { return "" }
func (e progressEvent) Event() string { return "" }
func (e progressEvent) Data() string  { return e.data }

// Generate handles POST /generate.
func (h GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Auth == nil || h.Pipeline == nil {
		logger.Error("generate dependencies unavailable", "hasAuth", h.Auth != nil, "hasPipeline", h.Pipeline != nil)
		respondError(ctx, w, http.StatusInternalServerError, "generation unavailable")
		return
	}

	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid generate payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		respondError(ctx, w, http.StatusBadRequest, pipeline.ErrTopicRequired.Error())
		return
	}

	token, err := h.Auth.Credentials(r)
	if err != nil {
		respondError(ctx, w, http.StatusUnauthorized, pipeline.ErrNotAuthenticated.Error())
		return
	}

	// Only requests that would start a run are metered.
	if !allowRequest(h.Limiter, r, generateScope, h.TrustProxy) {
		logger.Warn("generate rate limited", "clientIp", clientIP(r, h.TrustProxy))
		respondError(ctx, w, http.StatusTooManyRequests, "too many requests")
		return
	}

	events, err := h.Pipeline.Start(ctx, pipeline.Request{Topic: req.Topic, Credentials: token})
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrTopicRequired):
			respondError(ctx, w, http.StatusBadRequest, err.Error())
		case errors.Is(err, pipeline.ErrNotAuthenticated):
			respondError(ctx, w, http.StatusUnauthorized, err.Error())
		default:
			logger.Error("start pipeline", "error", err)
			respondError(ctx, w, http.StatusInternalServerError, "Failed to generate short")
		}
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		logger.Warn("response does not support flushing", "error", err)
	}

	enc := eventsource.NewEncoder(w, false)
	for ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			logger.Error("encode progress event", "error", err)
			continue
		}
		if err := enc.Encode(progressEvent{data: string(payload)}); err != nil {
			logger.Warn("client stopped reading progress stream", "error", err)
			return
		}
		_ = rc.Flush()
	}
}
