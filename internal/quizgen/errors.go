package quizgen

import (
	"errors"
	"fmt"
)

// Content-weakness causes. These consume a retry attempt instead of
// aborting; they surface only inside ErrGenerationExhausted.
var (
	errEmptyCompletion    = errors.New("generator returned empty output")
	errLowQuality         = errors.New("candidate rejected by quality filter")
	errAnswerNotInOptions = errors.New("correct answer is not among the options")
)

// ErrGeneratorUnavailable means the external generator could not be
// reached at all (network, auth, timeout). Not retried here: the
// transport layer has already done its own bounded retrying, so a
// failure that surfaces is treated as an outage.
type ErrGeneratorUnavailable struct {
	Err error
}

func (e *ErrGeneratorUnavailable) Error() string {
	return fmt.Sprintf("question generator unavailable: %v", e.Err)
}

func (e *ErrGeneratorUnavailable) Unwrap() error { return e.Err }

// ErrMalformedResponse means the generator answered but the output
// contained no parseable JSON object. Surfaced immediately: this is a
// broken integration, not run-to-run content variance.
type ErrMalformedResponse struct {
	Raw string
	Err error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed generator response: %v", e.Err)
}

func (e *ErrMalformedResponse) Unwrap() error { return e.Err }

// ErrMissingField means the generated JSON parsed but lacks a required
// field. Surfaced immediately, naming the field.
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("generated question missing required field %q", e.Field)
}

// ErrGenerationExhausted means the retry budget was spent without a
// single candidate surviving the quality checks.
type ErrGenerationExhausted struct {
	Attempts int
	LastErr  error
}

func (e *ErrGenerationExhausted) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("no valid question after %d attempts (last: %v)", e.Attempts, e.LastErr)
	}
	return fmt.Sprintf("no valid question after %d attempts", e.Attempts)
}

func (e *ErrGenerationExhausted) Unwrap() error { return e.LastErr }
