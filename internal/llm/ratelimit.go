package llm

import (
	"context"
	"encoding/json"

	"golang.org/x/time/rate"
	genai "google.golang.org/genai"

	llmclient "react2android/internal/llmClient"
)

// RateLimit throttles outbound calls to rps with the given burst.
// The bucket is created once, so every client wrapped by the returned
// middleware draws from it. If rps <= 0 the middleware is a pass-through.
func RateLimit(rps float64, burst int) Middleware {
	if rps <= 0 {
		return func(next llmclient.LLMClient) llmclient.LLMClient { return next }
	}
	if burst < 1 {
		burst = 1
	}
	rl := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &rateLimited{next: next, rl: rl}
	}
}

type rateLimited struct {
	next llmclient.LLMClient
	rl   *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }

func (c *rateLimited) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}
	return c.next.GenerateJSON(ctx, prompt, schema)
}

func (c *rateLimited) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.GenerateText(ctx, prompt)
}
