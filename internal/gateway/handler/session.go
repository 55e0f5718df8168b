package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"react2android/internal/gateway/session"
	"react2android/internal/preview"
	"react2android/internal/types"
	"react2android/internal/wizard"
)

// view is what every session endpoint returns.
type view struct {
	ID    string                  `json:"id"`
	State wizard.State            `json:"state"`
	Steps []wizard.StepInfo       `json:"steps"`
	Kinds []types.ApplicationKind `json:"applicationKinds"`
}

func newView(id string, st wizard.State) *view {
	return &view{ID: id, State: st, Steps: wizard.Steps(), Kinds: types.ApplicationKinds()}
}

type SessionHandler struct {
	store *session.Store
	log   *slog.Logger
}

func NewSessionHandler(store *session.Store, log *slog.Logger) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{store: store, log: log.With("component", "http")}
}

// RegisterRoutes attaches the session API to rg, normally /api/v1.
func (h *SessionHandler) RegisterRoutes(rg gin.IRouter) {
	s := rg.Group("/sessions")
	s.POST("", h.create)
	s.GET("/:id", h.get)
	s.DELETE("/:id", h.delete)
	s.PATCH("/:id/config", h.updateConfig)
	s.PUT("/:id/mode", h.selectMode)
	s.POST("/:id/artifact", h.selectArtifact)
	s.POST("/:id/analysis", h.startAnalysis)
	s.POST("/:id/back", h.back)
	s.POST("/:id/bridge", h.generateBridge)
	s.POST("/:id/reset", h.reset)
	s.GET("/:id/preview", h.preview)
	s.GET("/:id/events", h.events)
}

// controller resolves :id or writes a 404.
func (h *SessionHandler) controller(c *gin.Context) (string, *wizard.Controller, bool) {
	id := c.Param("id")
	ctrl, err := h.store.Get(id)
	if err != nil {
		writeError(c, err, nil)
		return "", nil, false
	}
	return id, ctrl, true
}

// respond writes the snapshot, or the mapped error with the snapshot.
func respond(c *gin.Context, id string, st wizard.State, err error) {
	v := newView(id, st)
	if err != nil {
		writeError(c, err, v)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": v})
}

func (h *SessionHandler) create(c *gin.Context) {
	id, ctrl := h.store.Create()
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": newView(id, ctrl.Snapshot())})
}

func (h *SessionHandler) get(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	respond(c, id, ctrl.Snapshot(), nil)
}

func (h *SessionHandler) delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *SessionHandler) updateConfig(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var patch wizard.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "code": "invalid_body", "error": "invalid body"})
		return
	}
	st, err := ctrl.UpdateConfig(patch)
	respond(c, id, st, err)
}

type modeReq struct {
	Mode types.InputMode `json:"mode" binding:"required,oneof=file url"`
}

func (h *SessionHandler) selectMode(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var req modeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "code": "invalid_body", "error": "mode must be file or url"})
		return
	}
	st, err := ctrl.SelectMode(req.Mode)
	respond(c, id, st, err)
}

type artifactReq struct {
	Name string `json:"name" binding:"required"`
	Size int64  `json:"size" binding:"gte=0"`
}

func (h *SessionHandler) selectArtifact(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var req artifactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "code": "invalid_body", "error": "name and size are required"})
		return
	}
	st, err := ctrl.SelectArtifact(strings.TrimSpace(req.Name), req.Size)
	respond(c, id, st, err)
}

func (h *SessionHandler) startAnalysis(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	st, err := ctrl.StartAnalysis(c.Request.Context())
	if err != nil {
		h.log.Warn("analysis not completed", "session_id", id, "error", err)
	}
	respond(c, id, st, err)
}

func (h *SessionHandler) generateBridge(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	st, err := ctrl.GenerateBridge(c.Request.Context())
	if err != nil {
		h.log.Warn("bridge generation not completed", "session_id", id, "error", err)
	}
	respond(c, id, st, err)
}

func (h *SessionHandler) back(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	respond(c, id, ctrl.Back(), nil)
}

func (h *SessionHandler) reset(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	respond(c, id, ctrl.Reset(), nil)
}

func (h *SessionHandler) preview(c *gin.Context) {
	_, ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	st := ctrl.Snapshot()
	var buf bytes.Buffer
	if err := preview.Render(&buf, preview.Build(st.Config.TargetAddress, st.Config.AccentColor)); err != nil {
		writeError(c, err, nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
