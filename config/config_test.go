package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"UNSLOP_LLM_API_KEY", "OPENROUTER_API_KEY", "UNSLOP_LLM_MODEL", "OPENROUTER_MODEL", "UNSLOP_PORT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "", cfg.LLM.APIKey)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 50, cfg.Batch.MaxTexts)
	assert.True(t, cfg.Auth.Enabled)
}

func TestLoadLLMFallbacks(t *testing.T) {
	t.Setenv("UNSLOP_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("UNSLOP_LLM_MODEL", "")
	t.Setenv("OPENROUTER_MODEL", "anthropic/some-model")

	cfg := Load()
	assert.Equal(t, "or-key", cfg.LLM.APIKey)
	assert.Equal(t, "anthropic/some-model", cfg.LLM.Model)

	t.Setenv("UNSLOP_LLM_API_KEY", "own-key")
	t.Setenv("UNSLOP_LLM_MODEL", "openai/gpt-4o")
	cfg = Load()
	assert.Equal(t, "own-key", cfg.LLM.APIKey)
	assert.Equal(t, "openai/gpt-4o", cfg.LLM.Model)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("UNSLOP_TEST_INT", "nope")
	assert.Equal(t, 7, envIntOr("UNSLOP_TEST_INT", 7))

	t.Setenv("UNSLOP_TEST_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, envDurationOr("UNSLOP_TEST_DUR", time.Second))

	t.Setenv("UNSLOP_TEST_SLICE", " a, ,b ")
	assert.Equal(t, []string{"a", "b"}, envSliceOr("UNSLOP_TEST_SLICE", nil))

	t.Setenv("UNSLOP_TEST_BOOL", "false")
	assert.False(t, envBoolOr("UNSLOP_TEST_BOOL", true))
}
