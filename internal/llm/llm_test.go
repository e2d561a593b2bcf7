package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartquiz/internal/store"
)

func TestResolveModelAlias(t *testing.T) {
	aliases := map[string]string{"claude-haiku": "claude-haiku-4-5"}

	assert.Equal(t, "claude-haiku-4-5", resolveModel("claude-haiku", aliases))
	assert.Equal(t, "claude-opus-4-1-20250805", resolveModel("claude-opus-4-1-20250805", aliases))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "default config has no key")

	cfg.Groq.APIKey = "gsk_test"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "mock"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "cohere"
	assert.Error(t, cfg.Validate())
}

func TestDiscoverConfigPrefersGroq(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("OPENAI_API_KEY", "sk_test")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "gsk_test", cfg.Groq.APIKey)
}

func TestConfigFromEnvOverlay(t *testing.T) {
	t.Setenv("SMARTQUIZ_LLM_PROVIDER", "anthropic")
	t.Setenv("SMARTQUIZ_ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("SMARTQUIZ_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	// Untouched sections keep their defaults.
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
}

func TestValidateResponse(t *testing.T) {
	schema := &Schema{
		Name: "answer",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"answer"},
			"properties": map[string]any{
				"answer": map[string]any{"type": "string"},
			},
		},
	}

	assert.NoError(t, validateResponse(schema, json.RawMessage(`{"answer":"42"}`)))
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not json`)))

	var invalid *ErrInvalidResponse
	err := validateResponse(schema, json.RawMessage(`{"question":"?"}`))
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalid)

	err = validateResponse(schema, json.RawMessage(`{{`))
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalid)
}

type memRecorder struct {
	events []store.LLMEventData
	err    error
}

func (m *memRecorder) AppendLLMEvent(_ context.Context, data store.LLMEventData) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, data)
	return nil
}

func TestLoggingRecordsSuccessAndFailure(t *testing.T) {
	rec := &memRecorder{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 34}},
	)
	p := WithLogging(mock, "mock", rec)
	ctx := WithPurpose(context.Background(), "question-gen")

	_, err := p.Generate(ctx, Request{System: "be terse", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)

	_, err = p.Generate(ctx, Request{}) // queue empty: outage
	require.Error(t, err)

	require.Len(t, rec.events, 2)

	ok := rec.events[0]
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, "question-gen", ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Equal(t, 34, ok.OutputTokens)
	assert.Contains(t, ok.RequestBody, "be terse")
	assert.Contains(t, ok.RequestBody, "[user]")

	failed := rec.events[1]
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.ErrorMessage)
}

func TestLoggingFailureDoesNotFailRequest(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", rec)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestPurposeFromDefaults(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "grading", PurposeFrom(WithPurpose(context.Background(), "grading")))
}
