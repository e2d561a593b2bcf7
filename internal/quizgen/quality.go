package quizgen

import "strings"

// Heuristic rejection patterns. Conservative on purpose: a false
// positive only costs one retry, a false negative pollutes the cache.
var (
	shallowPrefixes     = []string{"what is", "define", "explain"}
	placeholderPrefixes = []string{"option"}
)

const minQuestionLen = 25

// LowQuality reports whether a freshly generated candidate should be
// rejected before it reaches the durable store. It rejects questions
// that are too terse to require reasoning, shallow-recall phrasings,
// and filler answer choices.
func LowQuality(text string, options []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if len(normalized) < minQuestionLen {
		return true
	}
	for _, p := range shallowPrefixes {
		if strings.HasPrefix(normalized, p) {
			return true
		}
	}
	for _, opt := range options {
		o := strings.ToLower(strings.TrimSpace(opt))
		for _, p := range placeholderPrefixes {
			if strings.HasPrefix(o, p) {
				return true
			}
		}
	}
	return false
}
