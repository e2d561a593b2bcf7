// Package session orchestrates one quiz attempt: question supply,
// grading, leveling, and the final summary. One Attempt is one learner
// sitting one timed quiz; all its state is discarded when it ends.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/smartquiz/internal/leveling"
	"github.com/abhisek/smartquiz/internal/quiz"
)

// Question-count and duration bounds for one attempt.
const (
	MinQuestions = 5
	MaxQuestions = 100
	MinDuration  = 1 * time.Minute
	MaxDuration  = 180 * time.Minute
)

// Config describes one attempt as configured at the setup screen.
type Config struct {
	Learner   string
	Topic     string
	Level     quiz.Level
	Questions int
	Duration  time.Duration
}

// Validate checks the attempt bounds.
func (c Config) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if !c.Level.Valid() {
		return fmt.Errorf("unknown level %q", c.Level)
	}
	if c.Questions < MinQuestions || c.Questions > MaxQuestions {
		return fmt.Errorf("question count %d out of range [%d, %d]", c.Questions, MinQuestions, MaxQuestions)
	}
	if c.Duration < MinDuration || c.Duration > MaxDuration {
		return fmt.Errorf("duration %s out of range [%s, %s]", c.Duration, MinDuration, MaxDuration)
	}
	return nil
}

// QuestionSource supplies questions; satisfied by *quizgen.Pipeline.
type QuestionSource interface {
	NextQuestion(ctx context.Context, topic string, level quiz.Level, index int) (*quiz.Question, error)
}

// AnswerRecorder is the slice of the question cache the attempt needs
// for session tracking and answer persistence.
type AnswerRecorder interface {
	StartSession()
	MarkAsked(q quiz.Question)
	RecordAnswer(q quiz.Question, choice string) error
}

// MasteryRecorder persists per-topic accuracy; satisfied by
// *mastery.Tracker.
type MasteryRecorder interface {
	Record(topic string, correct bool) error
}

// Attempt is one in-progress quiz.
type Attempt struct {
	ID     string
	Config Config

	source  QuestionSource
	cache   AnswerRecorder
	mastery MasteryRecorder

	level     leveling.State
	startedAt time.Time

	current *quiz.Question
	asked   int
	score   int
}

// New starts an attempt: fresh session set, fresh level state, counters
// at zero.
func New(cfg Config, source QuestionSource, cache AnswerRecorder, tracker MasteryRecorder, now time.Time) (*Attempt, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache.StartSession()

	return &Attempt{
		ID:        uuid.NewString(),
		Config:    cfg,
		source:    source,
		cache:     cache,
		mastery:   tracker,
		level:     leveling.NewState(cfg.Level),
		startedAt: now,
	}, nil
}

// Level is the current difficulty, as adjusted by grading so far.
func (a *Attempt) Level() quiz.Level { return a.level.Level }

// Score is the number of correct answers so far.
func (a *Attempt) Score() int { return a.score }

// Asked is the number of questions graded so far.
func (a *Attempt) Asked() int { return a.asked }

// Current returns the question awaiting an answer, or nil.
func (a *Attempt) Current() *quiz.Question { return a.current }

// Done reports whether the question budget is spent.
func (a *Attempt) Done() bool { return a.asked >= a.Config.Questions }

// Expired reports whether the attempt's time is up.
func (a *Attempt) Expired(now time.Time) bool {
	return now.Sub(a.startedAt) >= a.Config.Duration
}

// Remaining is the wall-clock time left, clamped at zero.
func (a *Attempt) Remaining(now time.Time) time.Duration {
	r := a.Config.Duration - now.Sub(a.startedAt)
	if r < 0 {
		return 0
	}
	return r
}

// Next fetches the next question at the current level and marks it
// asked for this session. Grading the previous question must happen
// first.
func (a *Attempt) Next(ctx context.Context) (*quiz.Question, error) {
	if a.current != nil {
		return nil, fmt.Errorf("previous question has not been graded")
	}
	if a.Done() {
		return nil, fmt.Errorf("attempt is complete")
	}

	q, err := a.source.NextQuestion(ctx, a.Config.Topic, a.level.Level, a.asked)
	if err != nil {
		return nil, err
	}

	a.cache.MarkAsked(*q)
	a.current = q
	return q, nil
}

// Result is the outcome of grading one answer.
type Result struct {
	Correct       bool
	CorrectAnswer string
	Transition    leveling.Transition
}

// Grade scores the learner's choice against the current question. The
// answer is persisted to the cache first, then mastery, then leveling;
// the next question request sees the adjusted level.
func (a *Attempt) Grade(choice string) (Result, error) {
	if a.current == nil {
		return Result{}, fmt.Errorf("no question awaiting an answer")
	}

	q := *a.current
	correct := choice == q.CorrectAnswer

	if err := a.cache.RecordAnswer(q, choice); err != nil {
		return Result{}, fmt.Errorf("record answer: %w", err)
	}
	if err := a.mastery.Record(q.Topic, correct); err != nil {
		return Result{}, fmt.Errorf("record mastery: %w", err)
	}

	tr := a.level.Apply(correct)

	a.asked++
	if correct {
		a.score++
	}
	a.current = nil

	return Result{Correct: correct, CorrectAnswer: q.CorrectAnswer, Transition: tr}, nil
}
