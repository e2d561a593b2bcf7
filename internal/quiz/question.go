// Package quiz holds the core data model: questions, difficulty levels,
// and the content fingerprint used for deduplication.
package quiz

import "fmt"

// KindMCQ is the only question kind currently generated.
const KindMCQ = "MCQ"

// Question is a single multiple-choice question. It is immutable once
// created; the store never mutates its fields after acceptance.
type Question struct {
	ID            string   `json:"id"`
	Topic         string   `json:"topic"`
	Level         Level    `json:"level"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Kind          string   `json:"type"`
}

// Validate checks the structural invariants a question must satisfy before
// it may enter the store: at least two distinct options, and the correct
// answer must be exactly one of them.
func (q Question) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question has %d options, need at least 2", len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
	if !seen[q.CorrectAnswer] {
		return fmt.Errorf("correct answer %q is not among the options", q.CorrectAnswer)
	}
	return nil
}

// HasOption reports whether answer matches one of the question's options.
func (q Question) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// Fingerprint returns the content fingerprint of the question text.
func (q Question) Fingerprint() string {
	return Fingerprint(q.Question)
}
