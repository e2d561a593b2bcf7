// Package play is the interactive quiz screen: setup form, timed
// question loop, per-answer feedback, and the final summary card.
package play

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartquiz/internal/config"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/ui/components"
)

// phase is the screen's display state.
type phase int

const (
	phaseSetup phase = iota
	phaseLoading
	phaseQuestion
	phaseFeedback
	phaseSummary
	phaseError
)

// Deps are the collaborators the screen drives. Cache and Tracker also
// satisfy the session interfaces, but the screen needs only what the
// Attempt exposes.
type Deps struct {
	Source  session.QuestionSource
	Cache   session.AnswerRecorder
	Mastery session.MasteryRecorder
	Config  config.Config
}

// Model is the Bubble Tea model for one quiz sitting.
type Model struct {
	deps Deps

	phase   phase
	form    setupForm
	attempt *session.Attempt

	choice   components.MultiChoice
	last     session.Result
	summary  session.Summary
	errMsg   string
	now      time.Time
	fetching bool

	width  int
	height int
}

// New creates the screen in its setup phase, pre-filled from config.
func New(deps Deps) Model {
	return Model{
		deps:  deps,
		phase: phaseSetup,
		form:  newSetupForm(deps.Config),
		now:   time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case questionReadyMsg:
		return m.handleQuestionReady(msg)

	case timerTickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.phase == phaseSetup {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseSetup:
		if msg.String() == "esc" {
			return m, tea.Quit
		}
		form, cmd, submitted := m.form.HandleKey(msg)
		m.form = form
		if !submitted {
			return m, cmd
		}
		return m.startAttempt()

	case phaseQuestion:
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if !m.choice.Submitted() {
			return m, cmd
		}
		return m.grade(m.choice.Chosen())

	case phaseFeedback:
		// Any key continues.
		return m.advance()

	case phaseSummary, phaseError:
		switch msg.String() {
		case "q", "esc", "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

// startAttempt validates the form and begins the question loop.
func (m Model) startAttempt() (tea.Model, tea.Cmd) {
	cfg, err := m.form.AttemptConfig()
	if err != nil {
		m.form.flagInvalid()
		return m, nil
	}

	attempt, err := session.New(cfg, m.deps.Source, m.deps.Cache, m.deps.Mastery, time.Now())
	if err != nil {
		m.errMsg = err.Error()
		m.phase = phaseError
		return m, nil
	}

	m.attempt = attempt
	m.phase = phaseLoading
	m.now = time.Now()
	return m, tea.Batch(m.fetchQuestion(), tickCmd())
}

// fetchQuestion asks the attempt for its next question off the Update
// loop.
func (m *Model) fetchQuestion() tea.Cmd {
	m.fetching = true
	attempt := m.attempt
	return func() tea.Msg {
		q, err := attempt.Next(context.Background())
		return questionReadyMsg{Question: q, Err: err}
	}
}

func (m Model) handleQuestionReady(msg questionReadyMsg) (tea.Model, tea.Cmd) {
	m.fetching = false

	if msg.Err != nil {
		// Supply failure ends the attempt; show what was scored so far
		// if anything was.
		if m.attempt != nil && m.attempt.Asked() > 0 {
			m.summary = m.attempt.Summary(time.Now())
			m.phase = phaseSummary
		} else {
			m.errMsg = msg.Err.Error()
			m.phase = phaseError
		}
		return m, nil
	}

	correctIdx := 0
	for i, opt := range msg.Question.Options {
		if opt == msg.Question.CorrectAnswer {
			correctIdx = i
			break
		}
	}
	m.choice = components.NewMultiChoice(msg.Question.Options, correctIdx)
	m.phase = phaseQuestion
	return m, nil
}

func (m Model) grade(choice string) (tea.Model, tea.Cmd) {
	res, err := m.attempt.Grade(choice)
	if err != nil {
		m.errMsg = err.Error()
		m.phase = phaseError
		return m, nil
	}

	m.last = res
	m.phase = phaseFeedback
	return m, nil
}

// advance moves past the feedback view: next question, or the summary
// when the attempt is over.
func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.attempt.Done() || m.attempt.Expired(time.Now()) {
		m.summary = m.attempt.Summary(time.Now())
		m.phase = phaseSummary
		return m, nil
	}
	m.phase = phaseLoading
	return m, m.fetchQuestion()
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.phase != phaseQuestion && m.phase != phaseLoading && m.phase != phaseFeedback {
		return m, nil
	}
	m.now = now

	if m.attempt.Expired(now) {
		// Let an on-screen question be finished; cut the loop otherwise.
		if m.phase != phaseQuestion {
			m.summary = m.attempt.Summary(now)
			m.phase = phaseSummary
			return m, nil
		}
	}
	return m, tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
