package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted for SENTIMENT_BACKEND.
const (
	BackendVader   = "vader"
	BackendCoreNLP = "corenlp"
)

type Config struct {
	AppEnv             string
	Port               string
	LogLevel           string
	LogFormat          string
	SentimentBackend   string
	CoreNLPURL         string
	CoreNLPTimeout     time.Duration
	CacheTTL           time.Duration
	RedisURL           string
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// Optional .env file for local development; real deployments use the
	// process environment.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		SentimentBackend: getEnv("SENTIMENT_BACKEND", BackendVader),
		CoreNLPURL:       getEnv("CORENLP_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
	}

	timeout, err := parseDuration("CORENLP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.CoreNLPTimeout = timeout

	ttl, err := parseDuration("CACHE_TTL", "60s")
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = ttl

	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	switch cfg.SentimentBackend {
	case BackendVader:
	case BackendCoreNLP:
		if cfg.CoreNLPURL == "" {
			return nil, fmt.Errorf("CORENLP_URL is required when SENTIMENT_BACKEND is %q", BackendCoreNLP)
		}
	default:
		return nil, fmt.Errorf("SENTIMENT_BACKEND must be %q or %q, got %q", BackendVader, BackendCoreNLP, cfg.SentimentBackend)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	return cfg, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration (e.g. \"10s\"): %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, d)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
