package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

const (
	defaultSecretKey       = "change-me-session-secret"
	defaultDBName          = "rental"
	defaultHost            = "0.0.0.0"
	defaultPort            = "8080"
	defaultSessionTTL      = "24h"
	defaultChatTimeout     = "10s"
	defaultListingCacheTTL = "30s"
	defaultLLMBaseURL      = "https://api.openai.com"
	defaultLLMModel        = "gpt-3.5-turbo-instruct"
	defaultCookieSecure    = "false"

	minProdSecretLen = 16
)

type Config struct {
	AppEnv string
	Debug  bool

	Host string
	Port string

	DatabaseURL string
	DBName      string

	SecretKey    string
	SessionTTL   time.Duration
	CookieSecure bool

	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	ChatTimeout time.Duration

	ListingCacheTTL time.Duration
	CORSOrigins     []string

	RedisURL string
	NATSURL  string

	LogLevel string
}

// Addr is the listen address built from HOST and PORT.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// DSN returns the store connection string. Without DATABASE_URL a local
// SQLite file named after DB_NAME is used.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DBName + ".db"
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("FLASK_ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)
	cfg.Debug = parseBoolEnv("DEBUG", "false") || cfg.AppEnv == "development"

	cfg.Host = strings.TrimSpace(getEnv("HOST", defaultHost))
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	// MONGO_URI is honoured for old deployments, but only when it points at
	// a store this service can open.
	if legacy := strings.TrimSpace(os.Getenv("MONGO_URI")); cfg.DatabaseURL == "" && !strings.HasPrefix(legacy, "mongodb") {
		cfg.DatabaseURL = legacy
	}
	cfg.DBName = strings.TrimSpace(getEnv("DB_NAME", defaultDBName))

	cfg.SecretKey = strings.TrimSpace(getEnv("SECRET_KEY", defaultSecretKey))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)

	cfg.LLMAPIKey = strings.TrimSpace(os.Getenv("API_KEY"))
	cfg.LLMBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("LLM_BASE_URL", defaultLLMBaseURL)), "/")
	cfg.LLMModel = strings.TrimSpace(getEnv("LLM_MODEL", defaultLLMModel))

	cfg.CORSOrigins = parseListEnv("CORS_ORIGINS")
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.NATSURL = strings.TrimSpace(os.Getenv("NATS_URL"))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", "info"))
	if cfg.Debug && os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "debug"
	}

	var err error
	cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.ChatTimeout, err = parseDurationEnv("CHAT_TIMEOUT", defaultChatTimeout)
	if err != nil {
		return nil, err
	}
	cfg.ListingCacheTTL, err = parseDurationEnv("LISTING_CACHE_TTL", defaultListingCacheTTL)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" && cfg.DBName == "" {
		return fmt.Errorf("DATABASE_URL or DB_NAME must be set")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.ChatTimeout <= 0 {
		return fmt.Errorf("CHAT_TIMEOUT must be > 0")
	}
	if cfg.ListingCacheTTL < 0 {
		return fmt.Errorf("LISTING_CACHE_TTL must be >= 0")
	}
	if cfg.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.SecretKey, defaultSecretKey) {
			return fmt.Errorf("in prod/release SECRET_KEY must be set and not default")
		}
		if len(cfg.SecretKey) < minProdSecretLen {
			return fmt.Errorf("in prod/release SECRET_KEY must be at least %d bytes", minProdSecretLen)
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func parseListEnv(name string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
