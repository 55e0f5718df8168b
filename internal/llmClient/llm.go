package llmclient

import (
	"context"
	"encoding/json"
	"errors"

	genai "google.golang.org/genai"
)

var (
	ErrInvalidJSON   = errors.New("invalid json from LLM")
	ErrEmptyResponse = errors.New("empty response from LLM")
	ErrMissingAPIKey = errors.New("llm api key is not set")
)

// LLMClient is the minimal surface the analysis client needs from a model.
// GenerateJSON asks for a schema-constrained JSON document; GenerateText
// asks for unconstrained text.
type LLMClient interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}
