// Package analysis turns a wizard configuration into model calls: a
// schema-constrained readiness analysis and a free-text bridge hook.
// The package does no validation of its own beyond the response shape.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	llmclient "react2android/internal/llmClient"
	"react2android/internal/types"
)

var (
	ErrAnalysisFailure   = errors.New("analysis failed")
	ErrGenerationFailure = errors.New("bridge generation failed")
	errMissingField      = errors.New("missing required field")
)

type Client struct {
	analysisLLM llmclient.LLMClient
	bridgeLLM   llmclient.LLMClient
	language    string
}

type Option func(*Client)

// WithLanguage sets the language the model writes prose in.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if strings.TrimSpace(lang) != "" {
			c.language = strings.TrimSpace(lang)
		}
	}
}

// New builds a client. analysisLLM serves the JSON call and bridgeLLM the
// text call; they may be the same client.
func New(analysisLLM, bridgeLLM llmclient.LLMClient, opts ...Option) *Client {
	c := &Client{
		analysisLLM: analysisLLM,
		bridgeLLM:   bridgeLLM,
		language:    DefaultLanguage,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Analyze issues one schema-constrained request and decodes the reply.
// The caller is expected to have validated cfg.
func (c *Client) Analyze(ctx context.Context, cfg types.AppConfiguration) (types.AnalysisResult, error) {
	prompt, err := analysisPrompt(cfg, c.language)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("%w: %w", ErrAnalysisFailure, err)
	}
	raw, err := c.analysisLLM.GenerateJSON(ctx, prompt, analysisSchema())
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("%w: %w", ErrAnalysisFailure, err)
	}
	res, err := decodeResult(raw)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("%w: %w", ErrAnalysisFailure, err)
	}
	return res, nil
}

// GenerateBridge issues one free-text request for features, in order.
// The returned text is not checked for being valid code.
func (c *Client) GenerateBridge(ctx context.Context, features []string) (types.BridgeArtifact, error) {
	prompt, err := bridgePrompt(features, c.language)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}
	txt, err := c.bridgeLLM.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}
	return types.BridgeArtifact(txt), nil
}

func decodeResult(raw json.RawMessage) (types.AnalysisResult, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return types.AnalysisResult{}, llmclient.ErrInvalidJSON
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return types.AnalysisResult{}, fmt.Errorf("decode analysis: %w", err)
	}
	for _, name := range requiredFields() {
		v, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return types.AnalysisResult{}, fmt.Errorf("%w: %s", errMissingField, name)
		}
	}
	var res types.AnalysisResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return types.AnalysisResult{}, fmt.Errorf("decode analysis: %w", err)
	}
	return res, nil
}
