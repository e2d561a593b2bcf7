package quizgen

import (
	"context"
	"fmt"

	"github.com/abhisek/smartquiz/internal/llm"
	"github.com/abhisek/smartquiz/internal/quiz"
)

// Generator produces raw candidate text for one question request. The
// pipeline owns all parsing and validation; a Generator only moves text.
type Generator interface {
	// Generate requests one candidate. The returned string is the raw
	// model output, which may wrap JSON in prose. An error means the
	// generator could not be reached, not that it answered badly.
	Generate(ctx context.Context, topic string, level quiz.Level, index int) (string, error)
}

// OfflineGenerator is used when no provider is configured: cached
// questions still play, cache misses report a clear failure.
type OfflineGenerator struct{}

func (OfflineGenerator) Generate(context.Context, string, quiz.Level, int) (string, error) {
	return "", fmt.Errorf("no generator configured: set a provider API key to generate new questions")
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLMGenerator creates a generator backed by the given provider.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, topic string, level quiz.Level, index int) (string, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic, level, index)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return string(resp.Content), nil
}
