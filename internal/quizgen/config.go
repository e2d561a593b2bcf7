package quizgen

// Config controls the generation pipeline.
type Config struct {
	// MaxAttempts is the total generation budget per question request.
	// Quality rejections consume attempts; transport failures abort
	// instead of consuming the budget.
	MaxAttempts int

	// MaxTokens is the token budget for one generator response.
	MaxTokens int

	// Temperature controls generator output randomness.
	Temperature float64
}

// DefaultConfig returns the recommended pipeline settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		MaxTokens:   600,
		Temperature: 0.5,
	}
}
