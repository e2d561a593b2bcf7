// Package quizgen is the question supply pipeline: cached questions are
// served when available, fresh ones are generated, validated, and cached
// otherwise.
package quizgen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/smartquiz/internal/quiz"
)

// Store is the slice of the question cache the pipeline needs.
type Store interface {
	// FindUnused returns a cached question for (topic, level) not yet
	// asked this session, or nil.
	FindUnused(topic string, level quiz.Level) *quiz.Question

	// Add persists a question, deduplicating by fingerprint.
	Add(q quiz.Question) error
}

// Pipeline produces one valid question per call, preferring cache reuse
// over generation.
type Pipeline struct {
	store  Store
	gen    Generator
	config Config
}

// NewPipeline wires a pipeline from its parts.
func NewPipeline(store Store, gen Generator, cfg Config) *Pipeline {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Pipeline{store: store, gen: gen, config: cfg}
}

// requiredFields, in reporting order. The first absent one names the
// MissingField error.
var requiredFields = []string{"id", "topic", "level", "question", "options", "correct_answer", "type"}

// candidate mirrors the generator's JSON output.
type candidate struct {
	ID            string   `json:"id"`
	Topic         string   `json:"topic"`
	Level         string   `json:"level"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Kind          string   `json:"type"`
}

// NextQuestion returns one valid question for (topic, level, index).
//
// The cache is consulted first; a hit costs no generator call. On a miss
// the generator is invoked up to the configured attempt budget. Content
// weakness (quality rejection, answer not among options, duplicate or
// too few options, empty output) consumes an attempt and retries;
// integration failures (unreachable
// generator, unparseable output, missing fields) abort immediately
// because retrying a broken integration wastes the budget.
func (p *Pipeline) NextQuestion(ctx context.Context, topic string, level quiz.Level, index int) (*quiz.Question, error) {
	if q := p.store.FindUnused(topic, level); q != nil {
		return q, nil
	}

	var lastErr error
	for range p.config.MaxAttempts {
		raw, err := p.gen.Generate(ctx, topic, level, index)
		if err != nil {
			return nil, &ErrGeneratorUnavailable{Err: err}
		}
		if strings.TrimSpace(raw) == "" {
			// Some providers occasionally return an empty completion;
			// treat it as content weakness, not a broken integration.
			lastErr = &ErrMalformedResponse{Raw: raw, Err: errEmptyCompletion}
			continue
		}

		q, err := parseCandidate(raw)
		if err != nil {
			return nil, err
		}

		if LowQuality(q.Question, q.Options) {
			lastErr = errLowQuality
			continue
		}
		if !q.HasOption(q.CorrectAnswer) {
			lastErr = errAnswerNotInOptions
			continue
		}
		// Structural checks beyond the answer itself (distinct options,
		// option count) gate entry to the durable store; a failure is
		// one more weak candidate, not a broken integration.
		if err := q.Validate(); err != nil {
			lastErr = err
			continue
		}

		// The model must echo topic and level, but the cache is keyed on
		// what the caller asked for, so the request values win.
		q.Topic = topic
		q.Level = level

		if err := p.store.Add(*q); err != nil {
			return nil, err
		}
		return q, nil
	}

	return nil, &ErrGenerationExhausted{Attempts: p.config.MaxAttempts, LastErr: lastErr}
}

// parseCandidate extracts, field-checks, and decodes one raw response.
func parseCandidate(raw string) (*quiz.Question, error) {
	fields, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			return nil, &ErrMissingField{Field: f}
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	var c candidate
	if err := json.Unmarshal([]byte(raw[start:end+1]), &c); err != nil {
		return nil, &ErrMalformedResponse{Raw: raw, Err: err}
	}

	return &quiz.Question{
		ID:            c.ID,
		Topic:         c.Topic,
		Level:         quiz.Level(c.Level),
		Question:      c.Question,
		Options:       c.Options,
		CorrectAnswer: c.CorrectAnswer,
		Kind:          c.Kind,
	}, nil
}
