package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"react2android/internal/gateway/handler"
	"react2android/internal/gateway/middleware"
	"react2android/internal/gateway/web"
)

type RouterDeps struct {
	Sessions    *handler.SessionHandler
	Health      *handler.HealthHandler
	Trace       *handler.TraceHandler
	CORSOrigins []string
	Log         *slog.Logger
}

func NewRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(dep.CORSOrigins), middleware.RequestID(dep.Log))

	web.RegisterRoutes(r)
	dep.Health.RegisterRoutes(r)
	dep.Trace.RegisterRoutes(r)

	api := r.Group("/api/v1")
	dep.Sessions.RegisterRoutes(api)

	return r
}
