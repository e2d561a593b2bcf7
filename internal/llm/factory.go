package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/smartquiz/internal/store"
)

// NewProvider builds the configured provider wrapped with middleware:
// caller → timeout → retry → logging → concrete provider. A nil recorder
// skips the logging layer.
func NewProvider(ctx context.Context, cfg Config, rec store.EventRecorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return WithTimeout(NewMockProvider(), cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if rec != nil {
		base = WithLogging(base, cfg.Provider, rec)
	}
	return WithTimeout(WithRetry(base, cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromEnv builds a provider from SMARTQUIZ_* variables,
// falling back to probing the standard *_API_KEY variables.
func NewProviderFromEnv(ctx context.Context, rec store.EventRecorder) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, rec)
}
