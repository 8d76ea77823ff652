package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// PublishModeMock returns a fixed video URL without calling the hosting provider.
	PublishModeMock = "mock"
	// PublishModeYouTube uploads through the YouTube Data API.
	PublishModeYouTube = "youtube"

	// ProviderOpenAI selects the OpenAI chat completions API for generation.
	ProviderOpenAI = "openai"
	// ProviderCohere selects the Cohere chat API for generation.
	ProviderCohere = "cohere"

	// PlaceholderAPIKey is used when no OpenAI key is configured so the process can still start.
	PlaceholderAPIKey = "sk-dummy-key"
)

// Config captures the runtime configuration for the shortsgen backend service.
type Config struct {
	AppPort        int
	Environment    string
	LogLevel       string
	AllowedOrigins []string

	OAuth       OAuthConfig
	Session     SessionConfig
	LLM         LLMConfig
	Media       MediaConfig
	Publish     PublishConfig
	ObjectStore ObjectStoreConfig
	Pipeline    PipelineConfig
	RateLimit   RateLimitConfig
}

// OAuthConfig holds the Google OAuth client used to authorize YouTube access.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// SessionConfig controls the cookie that carries the token bundle.
type SessionConfig struct {
	CookieName string
	Secret     string
	MaxAge     time.Duration
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider      string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	CohereKey     string
	CohereModel   string
}

// MediaConfig describes the placeholder asset returned by the video stage.
type MediaConfig struct {
	PlaceholderURL         string
	PlaceholderContentType string
}

// PublishConfig selects between a real upload and a dry run.
type PublishConfig struct {
	Mode        string
	MockVideoID string
}

// ObjectStoreConfig points at an S3-compatible store used for s3:// media references.
type ObjectStoreConfig struct {
	Bucket   string
	Region   string
	Endpoint string
}

// PipelineConfig sizes the worker pool that runs pipelines. Zero means unbounded.
type PipelineConfig struct {
	Workers int
}

// RateLimitConfig guards the generate endpoint per client IP. Zero requests disables it.
// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP; set it only behind a proxy
// that overwrites those headers.
type RateLimitConfig struct {
	Requests   int
	Window     time.Duration
	Burst      int
	TrustProxy bool
}

// Load reads configuration from environment variables, applying defaults for local
// development. Credentials keep the names used by the providers' own tooling.
func Load() (Config, error) {
	cfg := Config{
		AppPort:        getInt("SHORTSGEN_PORT", 8080),
		Environment:    getString("SHORTSGEN_ENV", "development"),
		LogLevel:       getString("SHORTSGEN_LOG_LEVEL", "info"),
		AllowedOrigins: getList("SHORTSGEN_ALLOWED_ORIGINS"),
		OAuth: OAuthConfig{
			ClientID:     getString("YOUTUBE_CLIENT_ID", ""),
			ClientSecret: getString("YOUTUBE_CLIENT_SECRET", ""),
			RedirectURL:  getString("YOUTUBE_REDIRECT_URI", "http://localhost:8080/authorize/callback"),
		},
		Session: SessionConfig{
			CookieName: getString("SHORTSGEN_SESSION_COOKIE", "youtube_tokens"),
			Secret:     getString("SHORTSGEN_SESSION_SECRET", ""),
			MaxAge:     getDuration("SHORTSGEN_SESSION_MAX_AGE", 30*24*time.Hour),
		},
		LLM: LLMConfig{
			Provider:      strings.ToLower(getString("SHORTSGEN_LLM_PROVIDER", ProviderOpenAI)),
			OpenAIKey:     getString("OPENAI_API_KEY", PlaceholderAPIKey),
			OpenAIBaseURL: getString("OPENAI_BASE_URL", ""),
			OpenAIModel:   getString("SHORTSGEN_OPENAI_MODEL", "gpt-4"),
			CohereKey:     getString("COHERE_API_KEY", ""),
			CohereModel:   getString("SHORTSGEN_COHERE_MODEL", "command-r"),
		},
		Media: MediaConfig{
			PlaceholderURL:         getString("SHORTSGEN_PLACEHOLDER_MEDIA_URL", "https://via.placeholder.com/1080x1920/6366f1/ffffff?text=AI+Generated+Short"),
			PlaceholderContentType: getString("SHORTSGEN_PLACEHOLDER_MEDIA_TYPE", "image/png"),
		},
		Publish: PublishConfig{
			Mode:        strings.ToLower(getString("SHORTSGEN_PUBLISH_MODE", PublishModeMock)),
			MockVideoID: getString("SHORTSGEN_MOCK_VIDEO_ID", "dQw4w9WgXcQ"),
		},
		ObjectStore: ObjectStoreConfig{
			Bucket:   getString("SHORTSGEN_S3_BUCKET", ""),
			Region:   getString("SHORTSGEN_S3_REGION", "us-east-1"),
			Endpoint: getString("SHORTSGEN_S3_ENDPOINT", ""),
		},
		Pipeline: PipelineConfig{
			Workers: getInt("SHORTSGEN_PIPELINE_WORKERS", 0),
		},
		RateLimit: RateLimitConfig{
			Requests:   getInt("SHORTSGEN_RATE_LIMIT_REQUESTS", 10),
			Window:     getDuration("SHORTSGEN_RATE_LIMIT_WINDOW", time.Minute),
			Burst:      getInt("SHORTSGEN_RATE_LIMIT_BURST", 5),
			TrustProxy: getBool("SHORTSGEN_TRUST_PROXY", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Production reports whether the service runs in a production deployment.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) validate() error {
	switch c.Publish.Mode {
	case PublishModeMock, PublishModeYouTube:
	default:
		return fmt.Errorf("config: unknown publish mode %q (want %q or %q)", c.Publish.Mode, PublishModeMock, PublishModeYouTube)
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
	case ProviderCohere:
		if c.LLM.CohereKey == "" {
			return fmt.Errorf("config: COHERE_API_KEY is required when SHORTSGEN_LLM_PROVIDER=%s", ProviderCohere)
		}
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}

	if c.Publish.Mode == PublishModeMock && len(c.Publish.MockVideoID) != 11 {
		return fmt.Errorf("config: mock video id %q must be 11 characters", c.Publish.MockVideoID)
	}

	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("config: session max age must be positive")
	}

	return nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
