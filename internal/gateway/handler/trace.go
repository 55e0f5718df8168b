package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TraceHandler records client-side events from the page in the server log,
// so a failed embed or a broken websocket shows up next to the request logs.
type TraceHandler struct {
	log *slog.Logger
}

func NewTraceHandler(log *slog.Logger) *TraceHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TraceHandler{log: log.With("component", "frontend")}
}

type traceReq struct {
	SessionID string         `json:"sessionId"`
	Stage     string         `json:"stage" binding:"required"`
	Level     string         `json:"level" binding:"omitempty,oneof=debug info warn error"`
	Fields    map[string]any `json:"fields"`
}

func (h *TraceHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/debug/frontend-trace", h.frontendTrace)
}

func (h *TraceHandler) frontendTrace(c *gin.Context) {
	var in traceReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "code": "invalid_body", "error": "stage is required"})
		return
	}

	attrs := []any{"session_id", strings.TrimSpace(in.SessionID), "stage", strings.TrimSpace(in.Stage)}
	for k, v := range in.Fields {
		attrs = append(attrs, "field."+k, v)
	}
	switch in.Level {
	case "debug":
		h.log.Debug("frontend trace", attrs...)
	case "warn":
		h.log.Warn("frontend trace", attrs...)
	case "error":
		h.log.Error("frontend trace", attrs...)
	default:
		h.log.Info("frontend trace", attrs...)
	}
	c.Status(http.StatusNoContent)
}
