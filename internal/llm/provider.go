// Package llm abstracts the generative text-completion providers the quiz
// engine can talk to. The engine treats every provider as an opaque,
// untrusted text source; all question structure is re-derived downstream.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the rest of the engine depends on.
type Provider interface {
	// Generate sends one request and returns the provider's output.
	// When the request carries a Schema, providers that support native
	// structured output use it; the Content is still returned as raw
	// bytes and callers must not assume it is valid JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System sets the provider's role and constraints.
	System string

	// Messages is the conversation. Question generation is single-turn:
	// one user message.
	Messages []Message

	// Schema, when non-nil, asks the provider for JSON conforming to it
	// via its native structured-output mechanism. Providers without such
	// a mechanism ignore it.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0,2]; zero means provider default.
	Temperature float64
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response should conform to.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "quiz-question").
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the provider's output.
type Response struct {
	// Content is the raw generated text. With a Schema and a conforming
	// provider this is validated JSON; otherwise it may be anything,
	// including JSON wrapped in prose.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly alias to a provider model ID, passing
// unknown names through so exact model IDs keep working.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
