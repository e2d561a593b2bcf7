package quizgen

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartquiz/internal/quiz"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	cached []quiz.Question
	added  []quiz.Question
}

func (s *fakeStore) FindUnused(topic string, level quiz.Level) *quiz.Question {
	for _, q := range s.cached {
		if q.Topic == topic && q.Level == level {
			out := q
			return &out
		}
	}
	return nil
}

func (s *fakeStore) Add(q quiz.Question) error {
	s.added = append(s.added, q)
	return nil
}

// scriptedGenerator serves canned raw outputs in order.
type scriptedGenerator struct {
	outputs []string
	err     error
	calls   int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ string, _ quiz.Level, _ int) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if len(g.outputs) == 0 {
		return "", errors.New("script exhausted")
	}
	out := g.outputs[0]
	g.outputs = g.outputs[1:]
	return out, nil
}

func validRaw() string {
	return `{"id":"q-1","topic":"Databases","level":"Beginner",
		"question":"A write-heavy workload shows lock contention on a single hot row. Which change helps most?",
		"options":["Shard the row's counter","Add a covering index","Enable full table scans","Lower the isolation level to serializable"],
		"correct_answer":"Shard the row's counter","type":"MCQ"}`
}

func TestNextQuestionPrefersCache(t *testing.T) {
	cached := quiz.Question{
		ID: "q-0", Topic: "Databases", Level: quiz.LevelBeginner,
		Question:      "Two transactions deadlock on the same pair of rows. What breaks the cycle?",
		Options:       []string{"Lock ordering", "More retries", "A bigger pool", "Longer timeouts"},
		CorrectAnswer: "Lock ordering", Kind: quiz.KindMCQ,
	}
	store := &fakeStore{cached: []quiz.Question{cached}}
	gen := &scriptedGenerator{}
	p := NewPipeline(store, gen, DefaultConfig())

	q, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.NoError(t, err)
	assert.Equal(t, "q-0", q.ID)
	assert.Zero(t, gen.calls, "cache hit must not call the generator")
}

func TestNextQuestionGeneratesOnMiss(t *testing.T) {
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: []string{validRaw()}}
	p := NewPipeline(store, gen, DefaultConfig())

	q, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)
	assert.Equal(t, 1, gen.calls)
	require.Len(t, store.added, 1, "accepted question must be cached")
	assert.Equal(t, "q-1", store.added[0].ID)
}

func TestNextQuestionOverridesEchoedTopicAndLevel(t *testing.T) {
	raw := `{"id":"q-1","topic":"Wrong Topic","level":"Advanced",
		"question":"A write-heavy workload shows lock contention on a single hot row. Which change helps most?",
		"options":["Shard the row's counter","Add a covering index","Enable full table scans","Use serializable isolation"],
		"correct_answer":"Shard the row's counter","type":"MCQ"}`
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: []string{raw}}
	p := NewPipeline(store, gen, DefaultConfig())

	q, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.NoError(t, err)
	assert.Equal(t, "Databases", q.Topic)
	assert.Equal(t, quiz.LevelBeginner, q.Level)
}

func TestNextQuestionExhaustsBudgetOnQualityRejection(t *testing.T) {
	lowQuality := `{"id":"q-1","topic":"Databases","level":"Beginner",
		"question":"What is a database index used for in queries?",
		"options":["Speed","Size","Color","Shape"],
		"correct_answer":"Speed","type":"MCQ"}`

	outputs := make([]string, 5)
	for i := range outputs {
		outputs[i] = lowQuality
	}
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: outputs}
	p := NewPipeline(store, gen, DefaultConfig())

	_, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.Error(t, err)

	var exhausted *ErrGenerationExhausted
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 5, exhausted.Attempts)
	assert.Equal(t, 5, gen.calls, "budget is exactly 5 attempts")
	assert.Empty(t, store.added, "rejected candidates must never reach the store")
}

func TestNextQuestionRetriesAnswerNotInOptions(t *testing.T) {
	bad := `{"id":"q-1","topic":"Databases","level":"Beginner",
		"question":"A write-heavy workload shows lock contention on a single hot row. Which change helps most?",
		"options":["Add a covering index","Enable full table scans","Use serializable isolation","Drop the table"],
		"correct_answer":"Shard the row's counter","type":"MCQ"}`
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: []string{bad, validRaw()}}
	p := NewPipeline(store, gen, DefaultConfig())

	q, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.True(t, q.HasOption(q.CorrectAnswer))
	assert.Len(t, store.added, 1)
}

func TestNextQuestionRetriesStructurallyInvalidCandidate(t *testing.T) {
	// One option that happens to equal the correct answer slips past the
	// answer-membership check; duplicated options are equally degenerate.
	// Neither shape may enter the durable store.
	single := `{"id":"q-1","topic":"Databases","level":"Beginner",
		"question":"A write-heavy workload shows lock contention on a single hot row. Which change helps most?",
		"options":["Shard the row's counter"],
		"correct_answer":"Shard the row's counter","type":"MCQ"}`
	duplicated := `{"id":"q-1","topic":"Databases","level":"Beginner",
		"question":"A write-heavy workload shows lock contention on a single hot row. Which change helps most?",
		"options":["Shard the row's counter","Shard the row's counter","Add a covering index","Enable full table scans"],
		"correct_answer":"Shard the row's counter","type":"MCQ"}`
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: []string{single, duplicated, validRaw()}}
	p := NewPipeline(store, gen, DefaultConfig())

	q, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, gen.calls, "each invalid candidate consumes one attempt")
	require.Len(t, store.added, 1)
	assert.NoError(t, store.added[0].Validate())
	assert.Equal(t, "q-1", q.ID)
}

func TestNextQuestionAbortsOnTransportFailure(t *testing.T) {
	store := &fakeStore{}
	gen := &scriptedGenerator{err: fmt.Errorf("dial tcp: connection refused")}
	p := NewPipeline(store, gen, DefaultConfig())

	_, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.Error(t, err)

	var unavailable *ErrGeneratorUnavailable
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 1, gen.calls, "transport failure must not consume the retry budget")
	assert.Empty(t, store.added)
}

func TestNextQuestionAbortsOnMalformedResponse(t *testing.T) {
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: []string{"I'd rather chat about the weather.", validRaw()}}
	p := NewPipeline(store, gen, DefaultConfig())

	_, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.Error(t, err)

	var malformed *ErrMalformedResponse
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, gen.calls, "a broken integration must fail fast")
}

func TestNextQuestionAbortsOnMissingField(t *testing.T) {
	noOptions := `{"id":"q-1","topic":"Databases","level":"Beginner",
		"question":"A write-heavy workload shows lock contention on a single hot row. Which change helps most?",
		"correct_answer":"Shard the row's counter","type":"MCQ"}`
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: []string{noOptions}}
	p := NewPipeline(store, gen, DefaultConfig())

	_, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.Error(t, err)

	var missing *ErrMissingField
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "options", missing.Field)
	assert.Equal(t, 1, gen.calls)
}

func TestNextQuestionRetriesEmptyCompletion(t *testing.T) {
	store := &fakeStore{}
	gen := &scriptedGenerator{outputs: []string{"", "  \n", validRaw()}}
	p := NewPipeline(store, gen, DefaultConfig())

	q, err := p.NextQuestion(context.Background(), "Databases", quiz.LevelBeginner, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, gen.calls)
	assert.Equal(t, "q-1", q.ID)
}
