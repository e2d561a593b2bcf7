package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartquiz/internal/quiz"
)

type fakeSource struct {
	calls  int
	levels []quiz.Level
}

func (f *fakeSource) NextQuestion(_ context.Context, topic string, level quiz.Level, index int) (*quiz.Question, error) {
	f.calls++
	f.levels = append(f.levels, level)
	correct := "The only right choice"
	return &quiz.Question{
		ID:            fmt.Sprintf("q-%d", index),
		Topic:         topic,
		Level:         level,
		Question:      fmt.Sprintf("Scenario %d: which mitigation addresses the root cause?", index),
		Options:       []string{correct, "A distractor", "Another distractor", "A third distractor"},
		CorrectAnswer: correct,
		Kind:          quiz.KindMCQ,
	}, nil
}

type fakeCache struct {
	sessionStarts int
	marked        []string
	answers       map[string]string
}

func (f *fakeCache) StartSession()             { f.sessionStarts++ }
func (f *fakeCache) MarkAsked(q quiz.Question) { f.marked = append(f.marked, q.ID) }
func (f *fakeCache) RecordAnswer(q quiz.Question, choice string) error {
	if f.answers == nil {
		f.answers = make(map[string]string)
	}
	f.answers[q.ID] = choice
	return nil
}

type fakeMastery struct {
	correct, total int
}

func (f *fakeMastery) Record(_ string, correct bool) error {
	f.total++
	if correct {
		f.correct++
	}
	return nil
}

func testConfig() Config {
	return Config{
		Learner:   "Ada",
		Topic:     "Databases",
		Level:     quiz.LevelBeginner,
		Questions: 5,
		Duration:  10 * time.Minute,
	}
}

func newTestAttempt(t *testing.T) (*Attempt, *fakeSource, *fakeCache, *fakeMastery) {
	t.Helper()
	src := &fakeSource{}
	cache := &fakeCache{}
	tracker := &fakeMastery{}
	a, err := New(testConfig(), src, cache, tracker, time.Now())
	require.NoError(t, err)
	return a, src, cache, tracker
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, testConfig().Validate())

	c := testConfig()
	c.Topic = ""
	assert.Error(t, c.Validate())

	c = testConfig()
	c.Questions = 4
	assert.Error(t, c.Validate())

	c = testConfig()
	c.Questions = 101
	assert.Error(t, c.Validate())

	c = testConfig()
	c.Duration = 30 * time.Second
	assert.Error(t, c.Validate())

	c = testConfig()
	c.Level = "Expert"
	assert.Error(t, c.Validate())
}

func TestNewStartsFreshSession(t *testing.T) {
	a, _, cache, _ := newTestAttempt(t)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, 1, cache.sessionStarts)
	assert.Equal(t, quiz.LevelBeginner, a.Level())
	assert.Zero(t, a.Score())
	assert.Zero(t, a.Asked())
}

func TestNextMarksQuestionAsked(t *testing.T) {
	a, _, cache, _ := newTestAttempt(t)

	q, err := a.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{q.ID}, cache.marked)
	assert.Same(t, q, a.Current())

	// Cannot fetch again before grading.
	_, err = a.Next(context.Background())
	assert.Error(t, err)
}

func TestGradeUpdatesEverything(t *testing.T) {
	a, _, cache, tracker := newTestAttempt(t)

	q, err := a.Next(context.Background())
	require.NoError(t, err)

	res, err := a.Grade(q.CorrectAnswer)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, q.CorrectAnswer, cache.answers[q.ID])
	assert.Equal(t, 1, tracker.correct)
	assert.Equal(t, 1, a.Score())
	assert.Equal(t, 1, a.Asked())
	assert.Nil(t, a.Current())

	// Grading twice is an error.
	_, err = a.Grade(q.CorrectAnswer)
	assert.Error(t, err)
}

func TestGradeWrongAnswerRecordsChoice(t *testing.T) {
	a, _, cache, tracker := newTestAttempt(t)

	q, err := a.Next(context.Background())
	require.NoError(t, err)

	res, err := a.Grade("A distractor")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, q.CorrectAnswer, res.CorrectAnswer)
	assert.Equal(t, "A distractor", cache.answers[q.ID])
	assert.Equal(t, 0, tracker.correct)
	assert.Equal(t, 1, tracker.total)
	assert.Zero(t, a.Score())
}

func TestLevelAdjustsBetweenQuestions(t *testing.T) {
	src := &fakeSource{}
	cfg := testConfig()
	cfg.Questions = 10
	a, err := New(cfg, src, &fakeCache{}, &fakeMastery{}, time.Now())
	require.NoError(t, err)

	// Three correct answers promote to Intermediate; the fourth request
	// must carry the new level.
	for range 3 {
		q, err := a.Next(context.Background())
		require.NoError(t, err)
		_, err = a.Grade(q.CorrectAnswer)
		require.NoError(t, err)
	}
	_, err = a.Next(context.Background())
	require.NoError(t, err)

	require.Len(t, src.levels, 4)
	assert.Equal(t, quiz.LevelBeginner, src.levels[2])
	assert.Equal(t, quiz.LevelIntermediate, src.levels[3])
}

func TestDoneAndExpired(t *testing.T) {
	a, _, _, _ := newTestAttempt(t)
	start := time.Now()

	assert.False(t, a.Done())
	assert.False(t, a.Expired(start))
	assert.True(t, a.Expired(start.Add(11*time.Minute)))
	assert.Equal(t, time.Duration(0), a.Remaining(start.Add(time.Hour)))

	for range 5 {
		q, err := a.Next(context.Background())
		require.NoError(t, err)
		_, err = a.Grade(q.CorrectAnswer)
		require.NoError(t, err)
	}
	assert.True(t, a.Done())

	_, err := a.Next(context.Background())
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	a, _, _, _ := newTestAttempt(t)
	start := time.Now()

	for i := range 5 {
		q, err := a.Next(context.Background())
		require.NoError(t, err)
		choice := q.CorrectAnswer
		if i == 4 {
			choice = "A distractor"
		}
		_, err = a.Grade(choice)
		require.NoError(t, err)
	}

	s := a.Summary(start.Add(3 * time.Minute))
	assert.Equal(t, "Ada", s.Learner)
	assert.Equal(t, 4, s.Score)
	assert.Equal(t, 5, s.Total)
	assert.InDelta(t, 80.0, s.Accuracy, 0.001)
	assert.Equal(t, MentionGood, s.Mention)
}

func TestMentionScale(t *testing.T) {
	assert.Equal(t, MentionExcellent, Mention(85))
	assert.Equal(t, MentionExcellent, Mention(100))
	assert.Equal(t, MentionGood, Mention(70))
	assert.Equal(t, MentionGood, Mention(84.9))
	assert.Equal(t, MentionFair, Mention(50))
	assert.Equal(t, MentionInsufficient, Mention(49.9))
	assert.Equal(t, MentionInsufficient, Mention(0))
}
