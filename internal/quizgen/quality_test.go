package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowQuality(t *testing.T) {
	goodOptions := []string{"A binary tree", "A hash table", "A linked list", "An array"}

	tests := []struct {
		name    string
		text    string
		options []string
		want    bool
	}{
		{
			name:    "accepts a reasoning question",
			text:    "A service sees p99 latency spikes during cache eviction. Which structure avoids them?",
			options: goodOptions,
			want:    false,
		},
		{
			name:    "rejects short text",
			text:    "Pick the best one.",
			options: goodOptions,
			want:    true,
		},
		{
			name:    "rejects what-is prefix",
			text:    "What is a hash table and how does it store key-value pairs?",
			options: goodOptions,
			want:    true,
		},
		{
			name:    "rejects define prefix case-insensitively",
			text:    "DEFINE the term amortized complexity in the context of dynamic arrays.",
			options: goodOptions,
			want:    true,
		},
		{
			name:    "rejects explain prefix",
			text:    "Explain why quicksort degrades to quadratic time on sorted input.",
			options: goodOptions,
			want:    true,
		},
		{
			name:    "rejects placeholder option",
			text:    "A service sees p99 latency spikes during cache eviction. Which structure avoids them?",
			options: []string{"A binary tree", "Option B", "A linked list", "An array"},
			want:    true,
		},
		{
			name:    "prefix match only, not substring",
			text:    "When defining a schema, what trade-off does denormalization introduce?",
			options: goodOptions,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LowQuality(tt.text, tt.options))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		fields, err := ExtractJSON(`{"id":"q-1"}`)
		assert.NoError(t, err)
		assert.Contains(t, fields, "id")
	})

	t.Run("object wrapped in prose", func(t *testing.T) {
		raw := "Sure! Here is your question:\n```json\n{\"id\":\"q-1\",\"question\":\"...\"}\n```\nLet me know if you need another."
		fields, err := ExtractJSON(raw)
		assert.NoError(t, err)
		assert.Contains(t, fields, "question")
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ExtractJSON("I cannot help with that.")
		var malformed *ErrMalformedResponse
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("invalid span", func(t *testing.T) {
		_, err := ExtractJSON(`prefix {not json} suffix`)
		var malformed *ErrMalformedResponse
		assert.ErrorAs(t, err, &malformed)
	})
}
