package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/shortsgen/backend/internal/auth"
	"github.com/shortsgen/backend/internal/config"
	"github.com/shortsgen/backend/internal/generator"
	"github.com/shortsgen/backend/internal/handlers"
	"github.com/shortsgen/backend/internal/httpserver"
	"github.com/shortsgen/backend/internal/media"
	"github.com/shortsgen/backend/internal/middleware"
	"github.com/shortsgen/backend/internal/pipeline"
	"github.com/shortsgen/backend/internal/publisher"
	"github.com/shortsgen/backend/internal/session"
	"github.com/shortsgen/backend/internal/storage"
	"github.com/shortsgen/backend/internal/web"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers. The
// returned cleanup releases the pipeline pool, waiting for in-flight runs.
func buildDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Session.Secret == "" {
		logger.Warn("SHORTSGEN_SESSION_SECRET is not set; sessions will not survive a restart")
	}
	store, err := session.NewStore(session.Options{
		CookieName: cfg.Session.CookieName,
		Secret:     cfg.Session.Secret,
		MaxAge:     cfg.Session.MaxAge,
		Secure:     cfg.Production(),
	})
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	if cfg.OAuth.ClientID == "" || cfg.OAuth.ClientSecret == "" {
		logger.Warn("YouTube OAuth client is not configured; authorization will fail")
	}
	oauthCfg := auth.NewOAuthConfig(cfg.OAuth)
	flow, err := auth.NewFlow(oauthCfg, store)
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	if cfg.LLM.Provider == config.ProviderOpenAI && cfg.LLM.OpenAIKey == config.PlaceholderAPIKey {
		logger.Warn("OPENAI_API_KEY is not set; generation requests will fail")
	}
	gen, err := generator.FromConfig(cfg.LLM, nil)
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	acquirer, err := media.NewPlaceholder(cfg.Media)
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	pub, err := buildPublisher(ctx, cfg, oauthCfg, logger)
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	pool, err := pipeline.NewPool(cfg.Pipeline.Workers, logger)
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	orchestrator, err := pipeline.NewOrchestrator(gen, acquirer, pub, pool)
	if err != nil {
		pool.Release()
		return handlers.Dependencies{}, nil, err
	}

	cleanup := func() error {
		return pool.ReleaseTimeout(httpserver.ShutdownTimeout)
	}

	return handlers.Dependencies{
		Auth:            flow,
		Pipeline:        orchestrator,
		GenerateLimiter: middleware.RateLimiterFromConfig(cfg.RateLimit),
		Page:            web.Index(),
		TrustProxy:      cfg.RateLimit.TrustProxy,
		PublishMode:     cfg.Publish.Mode,
		LLMProvider:     cfg.LLM.Provider,
	}, cleanup, nil
}

func buildPublisher(ctx context.Context, cfg config.Config, oauthCfg *oauth2.Config, logger *slog.Logger) (publisher.Publisher, error) {
	if cfg.Publish.Mode != config.PublishModeYouTube {
		logger.Warn("publishing in dry-run mode; videos are not uploaded", "mockVideoId", cfg.Publish.MockVideoID)
		return publisher.New(cfg.Publish, nil)
	}

	var objects media.ObjectReader
	if cfg.ObjectStore.Bucket != "" {
		s3Store, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return nil, fmt.Errorf("configure object store: %w", err)
		}
		objects = s3Store
	}

	yt, err := publisher.NewYouTube(oauthCfg, media.NewOpener(nil, objects))
	if err != nil {
		return nil, err
	}
	return publisher.New(cfg.Publish, yt)
}
