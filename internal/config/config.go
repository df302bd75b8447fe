package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr    string     `env:"HTTP_ADDR" envDefault:":8080"`
	RawLevel    string     `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level `env:"-"`
	BaseURL     string     `env:"BASE_URL" envDefault:"http://localhost:8080/"`
	GamesDir    string     `env:"GAMES_DIR"`
	DefaultGame string     `env:"DEFAULT_GAME" envDefault:"secret-world"`

	LLMModel          string        `env:"LLM_MODEL" envDefault:"qwen/qwen3-4b:free"`
	LLMFallbackModels []string      `env:"LLM_FALLBACK_MODELS" envSeparator:","`
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"10s"`
}

// BriefingsEnabled reports whether an LLM key was supplied.
func (c Config) BriefingsEnabled() bool {
	return c.OpenRouterAPIKey != ""
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	level, err := parseLogLevel(c.RawLevel)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level
	c.LLMFallbackModels = trimModels(c.LLMFallbackModels)

	return c, nil
}

func trimModels(in []string) []string {
	var models []string
	for _, m := range in {
		m = strings.TrimSpace(m)
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
