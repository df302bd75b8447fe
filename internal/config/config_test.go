package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, "secret-world", c.DefaultGame)
	assert.Equal(t, 10*time.Second, c.LLMTimeout)
	assert.False(t, c.BriefingsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LLM_FALLBACK_MODELS", "a/one, ,b/two ")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("OPENROUTER_API_KEY", "k")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, []string{"a/one", "b/two"}, c.LLMFallbackModels)
	assert.Equal(t, 3*time.Second, c.LLMTimeout)
	assert.True(t, c.BriefingsEnabled())
}

func TestLoad_InvalidLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid LOG_LEVEL")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")
}
