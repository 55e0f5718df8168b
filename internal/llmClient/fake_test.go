package llmclient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeClientDefaultJSONHasAllFields(t *testing.T) {
	raw, err := NewFakeClient().GenerateJSON(context.Background(), "p", nil)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, k := range []string{"readinessScore", "suggestions", "suggestedFeatures", "codeSnippet", "androidRequirements"} {
		assert.Contains(t, doc, k)
	}
}

func TestFakeClientOverrides(t *testing.T) {
	f := &FakeClient{JSON: json.RawMessage(`{"x":1}`), Text: "hook"}

	raw, err := f.GenerateJSON(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, string(raw))

	txt, err := f.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "hook", txt)
}

func TestFakeClientHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFakeClient().GenerateJSON(ctx, "p", nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewFakeClient().GenerateText(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "  ", "gemini-3-flash-preview")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
