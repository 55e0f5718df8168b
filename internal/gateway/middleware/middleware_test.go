package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(log *slog.Logger, origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(origins), RequestID(log))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c.Request.Context()))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(slog.New(slog.NewTextHandler(&buf, nil)), nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rid := rr.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
	assert.Equal(t, rid, rr.Body.String())
	assert.Contains(t, buf.String(), "request_id="+rid)
	assert.Contains(t, buf.String(), "status=200")
}

func TestRequestIDEchoed(t *testing.T) {
	r := newRouter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", rr.Body.String())
}

func TestCORSAnyOrigin(t *testing.T) {
	r := newRouter(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://somewhere.example")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "https://somewhere.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	r := newRouter(nil, []string{"https://app.example"})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
