package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"react2android/internal/analysis"
	"react2android/internal/gateway/config"
	"react2android/internal/gateway/handler"
	"react2android/internal/gateway/server"
	"react2android/internal/gateway/session"
	"react2android/internal/llm"
	llmclient "react2android/internal/llmClient"
	"react2android/internal/wizard"
)

const serviceName = "react2android-gateway"

type App struct {
	server  *server.Server
	handler http.Handler
	clients []llmclient.LLMClient
	log     *slog.Logger
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)
	return NewWithConfig(context.Background(), cfg, logger)
}

// NewWithConfig wires the gateway from an already loaded config.
func NewWithConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Dependencies
	analysisLLM, bridgeLLM, err := newClients(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	an := analysis.New(analysisLLM, bridgeLLM, analysis.WithLanguage(cfg.LLM.Language))
	store := session.New(func() *wizard.Controller {
		return wizard.NewController(an, wizard.WithLogger(logger))
	}, cfg.Session.Max, cfg.Session.TTL, logger)

	// Routing & Server
	router := server.NewRouter(server.RouterDeps{
		Sessions:    handler.NewSessionHandler(store, logger),
		Health:      handler.NewHealthHandler(serviceName, cfg.LLM.Provider, store.Len),
		Trace:       handler.NewTraceHandler(logger),
		CORSOrigins: cfg.CORSOrigins,
		Log:         logger,
	})

	logger.Info("gateway configured",
		"env", cfg.Env,
		"provider", cfg.LLM.Provider,
		"analysis_model", cfg.LLM.AnalysisModel,
		"bridge_model", cfg.LLM.BridgeModel,
		"language", cfg.LLM.Language,
	)

	return &App{
		server:  server.New(cfg.Port, router, logger),
		handler: router,
		clients: []llmclient.LLMClient{analysisLLM, bridgeLLM},
		log:     logger,
	}, nil
}

// newClients builds the two model clients behind a shared middleware chain.
// The rate limiter is one bucket for both.
func newClients(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llmclient.LLMClient, llmclient.LLMClient, error) {
	var analysisBase, bridgeBase llmclient.LLMClient
	switch cfg.LLM.Provider {
	case config.ProviderFake:
		fake := llmclient.NewFakeClient()
		analysisBase, bridgeBase = fake, fake
	default:
		a, err := llmclient.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.AnalysisModel)
		if err != nil {
			return nil, nil, fmt.Errorf("analysis client: %w", err)
		}
		b, err := llmclient.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.BridgeModel)
		if err != nil {
			return nil, nil, fmt.Errorf("bridge client: %w", err)
		}
		analysisBase, bridgeBase = a, b
	}

	mws := []llm.Middleware{
		llm.WithLogging(logger.With("component", "llm")),
		llm.RateLimit(cfg.LLM.RPS, cfg.LLM.Burst),
		llm.WithTimeout(cfg.LLM.Timeout),
	}
	return llm.Wrap(analysisBase, mws...), llm.Wrap(bridgeBase, mws...), nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	for _, c := range a.clients {
		if cerr := c.Close(); cerr != nil {
			a.log.Warn("llm client close failed", "client", c.Name(), "error", cerr)
		}
	}
	return err
}
