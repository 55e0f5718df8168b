package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"react2android/internal/analysis"
	"react2android/internal/gateway/session"
	"react2android/internal/wizard"
)

// statusFor maps domain errors onto HTTP status codes and stable codes for
// the page.
func statusFor(err error) (int, string) {
	var verr *wizard.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, wizard.ErrBusy):
		return http.StatusConflict, "busy"
	case errors.Is(err, wizard.ErrInvalidStep):
		return http.StatusConflict, "invalid_step"
	case errors.Is(err, wizard.ErrStale):
		return http.StatusConflict, "stale"
	case errors.Is(err, analysis.ErrAnalysisFailure):
		return http.StatusBadGateway, "analysis_failed"
	case errors.Is(err, analysis.ErrGenerationFailure):
		return http.StatusBadGateway, "generation_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

type errorBody struct {
	OK      bool     `json:"ok"`
	Code    string   `json:"code"`
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
	Session *view    `json:"session,omitempty"`
}

// writeError responds with the mapped status. Upstream causes are not
// exposed; the session snapshot carries the user-facing message.
func writeError(c *gin.Context, err error, v *view) {
	status, code := statusFor(err)
	body := errorBody{Code: code, Error: err.Error(), Session: v}
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		body.Error = verr.Message
		body.Fields = verr.Fields
	}
	if status == http.StatusBadGateway || status == http.StatusInternalServerError {
		body.Error = http.StatusText(status)
	}
	c.JSON(status, body)
}
