package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	genai "google.golang.org/genai"

	llmclient "react2android/internal/llmClient"
)

// Middleware decorates an LLMClient to inject cross-cutting concerns
// (rate limiting, timeouts, logging).
type Middleware func(llmclient.LLMClient) llmclient.LLMClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.LLMClient, mws ...Middleware) llmclient.LLMClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		out = mws[i](out)
	}
	return out
}

// -------- Logging --------

// WithLogging logs request size, latency and errors. A nil logger uses
// slog.Default().
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &logging{next: next, log: logger.With("model", next.Name())}
	}
}

type logging struct {
	next llmclient.LLMClient
	log  *slog.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	start := time.Now()
	l.log.DebugContext(ctx, "llm json request", "bytes", len(prompt))
	raw, err := l.next.GenerateJSON(ctx, prompt, schema)
	if err != nil {
		l.log.ErrorContext(ctx, "llm json request failed", "error", err, "latency", time.Since(start))
		return raw, err
	}
	l.log.InfoContext(ctx, "llm json response", "bytes", len(raw), "latency", time.Since(start))
	return raw, nil
}

func (l *logging) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	l.log.DebugContext(ctx, "llm text request", "bytes", len(prompt))
	txt, err := l.next.GenerateText(ctx, prompt)
	if err != nil {
		l.log.ErrorContext(ctx, "llm text request failed", "error", err, "latency", time.Since(start))
		return txt, err
	}
	l.log.InfoContext(ctx, "llm text response", "bytes", len(txt), "latency", time.Since(start))
	return txt, nil
}

// -------- Timeout --------

// WithTimeout bounds every call with d. d <= 0 disables the bound.
func WithTimeout(d time.Duration) Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		if d <= 0 {
			return next
		}
		return &timed{next: next, d: d}
	}
}

type timed struct {
	next llmclient.LLMClient
	d    time.Duration
}

func (t *timed) Name() string { return t.next.Name() }
func (t *timed) Close() error { return t.next.Close() }

func (t *timed) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.GenerateJSON(ctx, prompt, schema)
}

func (t *timed) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.GenerateText(ctx, prompt)
}
