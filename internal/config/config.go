// Package config loads service settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/llmarch/core/internal/logging"
)

const (
	DefaultAddr        = ":8080"
	DefaultOrigin      = "*"
	DefaultEnvFile     = ".env"
	DefaultRendererURL = "https://esm.sh/reactflow@11.11.4?deps=react@18.3.1,react-dom@18.3.1"
	DefaultRateBurst   = 20
)

type Config struct {
	Addr          string
	AllowedOrigin string
	LogLevel      string
	LogFormat     string
	// ContentDir replaces the embedded content when set.
	ContentDir  string
	RendererURL string
	// RateLimit is in requests per second; 0 disables limiting.
	RateLimit float64
	RateBurst int
}

// Load reads the .env file named by LLMARCH_ENV_FILE (default ".env") and
// then the environment. Variables already set in the environment win over
// the file. A missing default .env file is ignored.
func Load() (*Config, error) {
	envFile := getEnv("LLMARCH_ENV_FILE", "")
	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Addr:          getEnv("LLMARCH_ADDR", DefaultAddr),
		AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", DefaultOrigin),
		LogLevel:      getEnv("LLMARCH_LOG_LEVEL", "info"),
		LogFormat:     getEnv("LLMARCH_LOG_FORMAT", logging.FormatText),
		ContentDir:    getEnv("LLMARCH_CONTENT_DIR", ""),
		RendererURL:   getEnv("LLMARCH_RENDERER_URL", DefaultRendererURL),
		RateBurst:     DefaultRateBurst,
	}

	var err error
	if v := os.Getenv("LLMARCH_RATE_LIMIT"); v != "" {
		if cfg.RateLimit, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid LLMARCH_RATE_LIMIT %q: %w", v, err)
		}
	}
	if v := os.Getenv("LLMARCH_RATE_BURST"); v != "" {
		if cfg.RateBurst, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid LLMARCH_RATE_BURST %q: %w", v, err)
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %g", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst))
	}
	if c.RendererURL == "" {
		errs = append(errs, errors.New("renderer URL is empty"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
