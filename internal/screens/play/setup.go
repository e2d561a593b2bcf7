package play

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartquiz/internal/config"
	"github.com/abhisek/smartquiz/internal/quiz"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/ui/components"
)

// Setup form fields, in tab order.
const (
	fieldLearner = iota
	fieldTopic
	fieldLevel
	fieldQuestions
	fieldDuration
	fieldCount
)

// setupForm collects the attempt parameters before the quiz starts.
type setupForm struct {
	focused int

	learner   components.TextInput
	topic     components.TextInput
	topics    []string // suggestions cycled with tab on the topic field
	topicIdx  int
	levelIdx  int
	questions components.TextInput
	duration  components.TextInput

	invalid bool
}

func newSetupForm(cfg config.Config) setupForm {
	f := setupForm{
		learner:   components.NewTextInput("Your name", cfg.Learner, false, 40),
		topic:     components.NewTextInput("Topic", cfg.DefaultTopic, false, 60),
		topics:    cfg.Topics,
		questions: components.NewTextInput("Questions", fmt.Sprintf("%d", cfg.Questions), true, 3),
		duration:  components.NewTextInput("Minutes", fmt.Sprintf("%d", cfg.DurationMinutes), true, 3),
	}
	for i, l := range quiz.Levels {
		if string(l) == cfg.DefaultLevel {
			f.levelIdx = i
		}
	}
	return f
}

func (f setupForm) Init() tea.Cmd {
	return f.learner.Focus()
}

// HandleKey processes one key. The third return value is true when the
// form was submitted from its last field.
func (f setupForm) HandleKey(msg tea.KeyMsg) (setupForm, tea.Cmd, bool) {
	switch msg.String() {
	case "enter", "down":
		if f.focused == fieldCount-1 && msg.String() == "enter" {
			return f, nil, true
		}
		return f.focusField(f.focused + 1), nil, false

	case "up":
		return f.focusField(f.focused - 1), nil, false

	case "tab":
		if f.focused == fieldTopic && len(f.topics) > 0 {
			f.topicIdx = (f.topicIdx + 1) % len(f.topics)
			f.topic = components.NewTextInput("Topic", f.topics[f.topicIdx], false, 60)
			return f, f.topic.Focus(), false
		}
		return f.focusField(f.focused + 1), nil, false

	case "left", "right":
		if f.focused == fieldLevel {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			f.levelIdx = (f.levelIdx + delta + len(quiz.Levels)) % len(quiz.Levels)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	switch f.focused {
	case fieldLearner:
		f.learner, cmd = f.learner.Update(msg)
	case fieldTopic:
		f.topic, cmd = f.topic.Update(msg)
	case fieldQuestions:
		f.questions, cmd = f.questions.Update(msg)
	case fieldDuration:
		f.duration, cmd = f.duration.Update(msg)
	}
	return f, cmd, false
}

// Update forwards non-key messages (blink ticks) to the focused input.
func (f setupForm) Update(msg tea.Msg) (setupForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focused {
	case fieldLearner:
		f.learner, cmd = f.learner.Update(msg)
	case fieldTopic:
		f.topic, cmd = f.topic.Update(msg)
	case fieldQuestions:
		f.questions, cmd = f.questions.Update(msg)
	case fieldDuration:
		f.duration, cmd = f.duration.Update(msg)
	}
	return f, cmd
}

func (f setupForm) focusField(i int) setupForm {
	if i < 0 {
		i = 0
	}
	if i >= fieldCount {
		i = fieldCount - 1
	}

	f.learner.Blur()
	f.topic.Blur()
	f.questions.Blur()
	f.duration.Blur()

	f.focused = i
	switch i {
	case fieldLearner:
		f.learner.Focus()
	case fieldTopic:
		f.topic.Focus()
	case fieldQuestions:
		f.questions.Focus()
	case fieldDuration:
		f.duration.Focus()
	}
	return f
}

// AttemptConfig builds and validates the session config from the form.
func (f setupForm) AttemptConfig() (session.Config, error) {
	questions, err := f.questions.NumericValue()
	if err != nil {
		return session.Config{}, fmt.Errorf("question count: %w", err)
	}
	minutes, err := f.duration.NumericValue()
	if err != nil {
		return session.Config{}, fmt.Errorf("duration: %w", err)
	}

	cfg := session.Config{
		Learner:   f.learner.Value(),
		Topic:     f.topic.Value(),
		Level:     quiz.Levels[f.levelIdx],
		Questions: questions,
		Duration:  time.Duration(minutes) * time.Minute,
	}
	return cfg, cfg.Validate()
}

func (f *setupForm) flagInvalid() {
	f.invalid = true
}
