package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/shortsgen/backend/internal/client"
	"github.com/shortsgen/backend/internal/config"
	"github.com/shortsgen/backend/internal/handlers"
	"github.com/shortsgen/backend/internal/httpserver"
	"github.com/shortsgen/backend/internal/middleware"
	"github.com/shortsgen/backend/internal/tui"
)

// Run bootstraps the shortsgen application.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve or generate")
	}

	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "generate":
		return generate(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	deps, cleanup, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn("pipeline workers still running at exit", "error", err)
		}
	}()

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	handler := middleware.RequestLogger(logger)(middleware.CORS(cfg.AllowedOrigins)(mux))

	srv := httpserver.New(cfg.AppPort, handler)

	logger.Info("starting http server",
		"port", cfg.AppPort,
		"environment", cfg.Environment,
		"publishMode", cfg.Publish.Mode,
		"llmProvider", cfg.LLM.Provider,
	)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-srvErr:
		if err != nil {
			return err
		}
	}

	return httpserver.ShutdownWithTimeout(srv)
}

func generate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	serverURL := fs.String("url", envOr("SHORTSGEN_SERVER_URL", "http://localhost:8080"), "base URL of a running shortsgen server")
	cookieName := fs.String("cookie-name", envOr("SHORTSGEN_SESSION_COOKIE", "youtube_tokens"), "session cookie name")
	cookie := fs.String("cookie", os.Getenv("SHORTSGEN_SESSION_TOKEN"), "session cookie value copied from the browser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	topic := strings.TrimSpace(strings.Join(fs.Args(), " "))

	c := client.New(*serverURL, *cookieName, *cookie, nil)
	program := tea.NewProgram(tui.NewModel(c, strings.TrimRight(*serverURL, "/"), topic), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal view: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.State == tui.StateError && m.Err != nil {
		return m.Err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
