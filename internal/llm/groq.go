package llm

import (
	"context"
	"fmt"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider targets the Groq API, which speaks the OpenAI wire
// protocol, so the OpenAI provider does the actual work.
type GroqProvider struct {
	*OpenAIProvider
}

// Generate drops the schema before delegating: Groq rejects strict
// JSON-schema response formats on several models, and the pipeline
// re-derives all structure from the text anyway.
func (p *GroqProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	req.Schema = nil
	return p.OpenAIProvider.Generate(ctx, req)
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	return &GroqProvider{OpenAIProvider: inner}, nil
}
