package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"

	llmclient "react2android/internal/llmClient"
)

// spyClient records when requests reach it and what deadline they carried.
type spyClient struct {
	times     []time.Time
	deadlines []bool
	err       error
}

func (s *spyClient) Name() string { return "spy" }
func (s *spyClient) Close() error { return nil }

func (s *spyClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	s.record(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{}`), nil
}

func (s *spyClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.record(ctx)
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}

func (s *spyClient) record(ctx context.Context) {
	_, ok := ctx.Deadline()
	s.times = append(s.times, time.Now())
	s.deadlines = append(s.deadlines, ok)
}

type nameTag struct {
	llmclient.LLMClient
	tag string
	out *[]string
}

func (n *nameTag) GenerateText(ctx context.Context, prompt string) (string, error) {
	*n.out = append(*n.out, n.tag)
	return n.LLMClient.GenerateText(ctx, prompt)
}

func tagger(tag string, out *[]string) Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &nameTag{LLMClient: next, tag: tag, out: out}
	}
}

func TestWrapOrder(t *testing.T) {
	var order []string
	c := Wrap(&spyClient{}, tagger("A", &order), nil, tagger("B", &order))

	_, err := c.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, order)
}

func TestRateLimitDisabledIsPassThrough(t *testing.T) {
	inner := &spyClient{}
	c := RateLimit(0, 0)(inner)
	assert.Same(t, llmclient.LLMClient(inner), c)
}

func TestRateLimitSpacesRequests(t *testing.T) {
	inner := &spyClient{}
	c := Wrap(inner, RateLimit(20, 1))

	for i := 0; i < 3; i++ {
		_, err := c.GenerateJSON(context.Background(), "p", nil)
		require.NoError(t, err)
	}
	require.Len(t, inner.times, 3)
	// 20 rps with burst 1: the third call waits at least ~2 periods.
	assert.GreaterOrEqual(t, inner.times[2].Sub(inner.times[0]), 80*time.Millisecond)
}

func TestRateLimitSharedAcrossClients(t *testing.T) {
	mw := RateLimit(20, 1)
	a, b := &spyClient{}, &spyClient{}
	ca, cb := mw(a), mw(b)

	start := time.Now()
	_, err := ca.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	_, err = cb.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRateLimitHonorsContext(t *testing.T) {
	inner := &spyClient{}
	c := Wrap(inner, RateLimit(0.001, 1))
	_, err := c.GenerateText(context.Background(), "p")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.GenerateText(ctx, "p")
	require.Error(t, err)
	assert.Len(t, inner.times, 1)
}

func TestWithTimeoutSetsDeadline(t *testing.T) {
	inner := &spyClient{}
	c := Wrap(inner, WithTimeout(time.Second))
	_, err := c.GenerateJSON(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, inner.deadlines)

	inner2 := &spyClient{}
	c2 := Wrap(inner2, WithTimeout(0))
	_, err = c2.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, inner2.deadlines)
}

func TestWithLoggingLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &spyClient{err: errors.New("upstream down")}
	c := Wrap(inner, WithLogging(logger))

	_, err := c.GenerateText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "llm text request failed")
	assert.Contains(t, buf.String(), "upstream down")
	assert.Contains(t, buf.String(), "model=spy")
	assert.Equal(t, "spy", c.Name())
}
