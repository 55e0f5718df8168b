package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Provider  string    `json:"provider"`
	Sessions  int       `json:"sessions"`
}

type HealthHandler struct {
	serviceName string
	provider    string
	sessions    func() int
}

func NewHealthHandler(serviceName, provider string, sessions func() int) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, provider: provider, sessions: sessions}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	n := 0
	if h.sessions != nil {
		n = h.sessions()
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Provider:  h.provider,
		Sessions:  n,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
