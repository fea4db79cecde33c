package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	LLM       LLMConfig
	Fetch     FetchConfig
	History   HistoryConfig
	Lexicon   LexiconConfig
	Batch     BatchConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"

	// MaxTextBytes caps the size of a single text or document in a request.
	MaxTextBytes int64 // default: 1 MiB
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the LLM completion cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached completions.
	MaxEntries int // default: 1000

	// TTL is how long a completion stays servable. Zero disables caching.
	TTL time.Duration // default: 1h
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// LLMConfig controls the chat completion provider used by humanize and
// critique. An empty APIKey leaves those endpoints disabled.
type LLMConfig struct {
	APIKey  string
	Model   string        // default: "openai/gpt-4o-mini"
	BaseURL string        // default: "https://openrouter.ai/api/v1"
	Timeout time.Duration // default: 60s
}

// FetchConfig controls URL ingestion.
type FetchConfig struct {
	Timeout      time.Duration // default: 15s
	MaxBodyBytes int64         // default: 10 MiB
}

// HistoryConfig selects where run metrics are stored.
type HistoryConfig struct {
	// DSN is "sqlite://path", "postgres://..." or empty for in-memory.
	DSN string

	// MemoryCapacity bounds the in-memory store.
	MemoryCapacity int // default: 500
}

// LexiconConfig points at an optional YAML or TOML lexicon extension.
type LexiconConfig struct {
	Path string
}

// BatchConfig controls async humanize batches.
type BatchConfig struct {
	MaxTexts    int           // default: 50
	Concurrency int           // default: 4
	JobTTL      time.Duration // default: 1h
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         envOr("UNSLOP_HOST", "0.0.0.0"),
			Port:         envIntOr("UNSLOP_PORT", 8080),
			Mode:         envOr("UNSLOP_MODE", "release"),
			MaxTextBytes: int64(envIntOr("UNSLOP_MAX_TEXT_BYTES", 1<<20)),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("UNSLOP_AUTH_ENABLED", true),
			APIKeys: envSliceOr("UNSLOP_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("UNSLOP_RATE_RPS", 5.0),
			Burst:             envIntOr("UNSLOP_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("UNSLOP_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("UNSLOP_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  envOr("UNSLOP_LOG_LEVEL", "info"),
			Format: envOr("UNSLOP_LOG_FORMAT", "json"),
		},
		LLM: LLMConfig{
			APIKey:  envOr("UNSLOP_LLM_API_KEY", os.Getenv("OPENROUTER_API_KEY")),
			Model:   envOr("UNSLOP_LLM_MODEL", envOr("OPENROUTER_MODEL", "openai/gpt-4o-mini")),
			BaseURL: envOr("UNSLOP_LLM_BASE_URL", "https://openrouter.ai/api/v1"),
			Timeout: envDurationOr("UNSLOP_LLM_TIMEOUT", 60*time.Second),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("UNSLOP_FETCH_TIMEOUT", 15*time.Second),
			MaxBodyBytes: int64(envIntOr("UNSLOP_FETCH_MAX_BYTES", 10<<20)),
		},
		History: HistoryConfig{
			DSN:            os.Getenv("UNSLOP_HISTORY_DSN"),
			MemoryCapacity: envIntOr("UNSLOP_HISTORY_MEMORY", 500),
		},
		Lexicon: LexiconConfig{
			Path: os.Getenv("UNSLOP_LEXICON_FILE"),
		},
		Batch: BatchConfig{
			MaxTexts:    envIntOr("UNSLOP_BATCH_MAX_TEXTS", 50),
			Concurrency: envIntOr("UNSLOP_BATCH_CONCURRENCY", 4),
			JobTTL:      envDurationOr("UNSLOP_BATCH_TTL", time.Hour),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
