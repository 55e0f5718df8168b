package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable build reads so the host env cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "APP_ENV", "CONFIG_FILE", "GEMINI_API_KEY", "API_KEY", "LLM_PROVIDER",
		"ANALYSIS_MODEL", "BRIDGE_MODEL", "OUTPUT_LANGUAGE", "LLM_RPS", "LLM_BURST",
		"LLM_TIMEOUT", "SESSION_MAX", "SESSION_TTL", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestBuildDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := build("")
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, ProviderFake, cfg.LLM.Provider)
	assert.Equal(t, "gemini-3-flash-preview", cfg.LLM.AnalysisModel)
	assert.Equal(t, "gemini-3-pro-preview", cfg.LLM.BridgeModel)
	assert.Equal(t, "Arabic", cfg.LLM.Language)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestBuildFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("OUTPUT_LANGUAGE", "English")
	t.Setenv("LLM_RPS", "0.5")
	t.Setenv("LLM_BURST", "2")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := build("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "English", cfg.LLM.Language)
	assert.Equal(t, 0.5, cfg.LLM.RPS)
	assert.Equal(t, 2, cfg.LLM.Burst)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestBuildPortFlagWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := build(":7000")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Port)
}

func TestBuildRequiresKeyOutsideLocal(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := build("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIKey")
}

func TestBuildRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"provider":  {"LLM_PROVIDER", "openai"},
		"rps":       {"LLM_RPS", "fast"},
		"timeout":   {"LLM_TIMEOUT", "soon"},
		"log level": {"LOG_LEVEL", "verbose"},
		"negative":  {"SESSION_MAX", "-1"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := build("")
			assert.Error(t, err)
		})
	}
}

func TestBuildConfigFileOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: ":8090"
llm:
  provider: fake
  language: French
  timeout: 30s
session:
  max: 16
log:
  level: debug
  format: json
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OUTPUT_LANGUAGE", "German")

	cfg, err := build("")
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.Port)
	assert.Equal(t, ProviderFake, cfg.LLM.Provider)
	assert.Equal(t, "German", cfg.LLM.Language)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "gemini-3-flash-preview", cfg.LLM.AnalysisModel)
	assert.Equal(t, 16, cfg.Session.Max)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestBuildMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := build("")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	log.Info("hidden")
	log.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}
