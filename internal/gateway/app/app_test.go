package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"react2android/internal/gateway/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port: ":0",
		Env:  "local",
		LLM: config.LLMConfig{
			Provider:      config.ProviderFake,
			AnalysisModel: "gemini-3-flash-preview",
			BridgeModel:   "gemini-3-pro-preview",
			Language:      "Arabic",
			Timeout:       5 * time.Second,
		},
		Session: config.SessionConfig{Max: 4, TTL: time.Minute},
		Log:     config.LogConfig{Level: "debug", Format: "text"},
	}
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	a, err := NewWithConfig(context.Background(), testConfig(), slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, err)
	return a, &logs
}

func post(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestIndexPage(t *testing.T) {
	a, _ := newTestApp(t)

	rr := post(t, a.Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "/api/v1/sessions")
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestEndToEndWithFakeProvider(t *testing.T) {
	a, logs := newTestApp(t)
	h := a.Handler()

	rr := post(t, h, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	base := "/api/v1/sessions/" + created.Session.ID

	require.Equal(t, http.StatusOK, post(t, h, http.MethodPut, base+"/mode", `{"mode":"url"}`).Code)
	require.Equal(t, http.StatusOK, post(t, h, http.MethodPatch, base+"/config", `{"applicationName":"Shop","targetAddress":"https://shop.example"}`).Code)

	rr = post(t, h, http.MethodPost, base+"/analysis", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"step":"reviewing_analysis"`)
	assert.Contains(t, rr.Body.String(), `"readinessScore":82`)

	rr = post(t, h, http.MethodPost, base+"/bridge", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"step":"viewing_artifact"`)

	out := logs.String()
	assert.Contains(t, out, "component=llm")
	assert.Contains(t, out, "model=FakeLLM")
	assert.Contains(t, out, "component=http")
}

func TestShutdownClosesClients(t *testing.T) {
	a, _ := newTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, a.Shutdown(ctx))
}

func TestGeminiProviderRequiresKey(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Provider = config.ProviderGemini
	_, err := NewWithConfig(context.Background(), cfg, nil)
	assert.Error(t, err)
}
