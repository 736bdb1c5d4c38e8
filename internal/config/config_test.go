package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AI_MAX_CONCURRENCY", "")
	t.Setenv("WORKSPACE_ALLOW_WRITE", "")
	t.Setenv("JWT_TTL", "")

	cfg := Load()
	assert.Equal(t, 0, cfg.Ai.MaxConcurrency)
	assert.True(t, cfg.Workspace.AllowWrite)
	assert.Equal(t, 72*time.Hour, cfg.Auth.JwtTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("AI_MAX_CONCURRENCY", "4")
	t.Setenv("AI_RETRY_MAX_ATTEMPTS", "3")
	t.Setenv("AI_REQUEST_TIMEOUT", "45s")
	t.Setenv("WORKSPACE_ALLOW_WRITE", "false")
	t.Setenv("RENAME_MODE", "error")

	cfg := Load()
	assert.Equal(t, "ollama", cfg.Ai.Provider)
	assert.Equal(t, 4, cfg.Ai.MaxConcurrency)
	assert.Equal(t, 3, cfg.Ai.RetryMaxAttempts)
	assert.Equal(t, 45*time.Second, cfg.Ai.RequestTimeout)
	assert.False(t, cfg.Workspace.AllowWrite)
	assert.Equal(t, "error", cfg.Workspace.RenameMode)
}

func TestGetEnvHelpers_BadValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "many")
	t.Setenv("X_BOOL", "perhaps")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DUR", time.Minute))
}
