package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartquiz/internal/quiz"
	"github.com/abhisek/smartquiz/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch m.phase {
	case phaseSetup:
		content = m.renderSetup()
	case phaseLoading:
		content = m.renderLoading()
	case phaseQuestion:
		content = m.renderQuestion()
	case phaseFeedback:
		content = m.renderFeedback()
	case phaseSummary:
		content = m.renderSummary()
	case phaseError:
		content = m.renderError()
	}

	v.SetContent(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content))
	return v
}

func (m Model) renderSetup() string {
	f := m.form
	var b strings.Builder

	b.WriteString(theme.Title.Render("SmartQuiz"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Set up your quiz"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		field int
		view  string
	}{
		{"Name", fieldLearner, f.learner.View()},
		{"Topic", fieldTopic, f.topic.View() + theme.Hint.Render("  (tab cycles suggestions)")},
		{"Level", fieldLevel, renderLevelPicker(f.levelIdx, f.focused == fieldLevel)},
		{"Questions", fieldQuestions, f.questions.View()},
		{"Minutes", fieldDuration, f.duration.View()},
	}

	for _, row := range rows {
		label := theme.Subtitle.Render(fmt.Sprintf("%-10s", row.label))
		if row.field == f.focused {
			label = theme.Selected.Render(fmt.Sprintf("%-10s", row.label))
		}
		b.WriteString(label + row.view + "\n")
	}

	if f.invalid {
		b.WriteString("\n" + theme.Incorrect.Render("Check the values: 5-100 questions, 1-180 minutes, topic required."))
	}
	b.WriteString("\n" + theme.Hint.Render("Enter: next field / start   Esc: quit"))

	return theme.Card.Render(b.String())
}

func renderLevelPicker(selected int, focused bool) string {
	parts := make([]string, len(quiz.Levels))
	for i, l := range quiz.Levels {
		s := string(l)
		if i == selected {
			if focused {
				s = theme.Selected.Render("< " + s + " >")
			} else {
				s = theme.Body.Render(s)
			}
		} else {
			s = theme.Hint.Render(s)
		}
		parts[i] = s
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderLoading() string {
	return theme.Subtitle.Render("Preparing your next question…")
}

func (m Model) statusLine() string {
	remaining := m.attempt.Remaining(m.now)
	timer := fmt.Sprintf("%d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)

	return theme.Subtitle.Render(fmt.Sprintf(
		"Q %d/%d   Score %d   Level %s   ⏱ %s",
		m.attempt.Asked()+1, m.attempt.Config.Questions,
		m.attempt.Score(), m.attempt.Level(), timer,
	))
}

func (m Model) renderQuestion() string {
	q := m.attempt.Current()
	if q == nil {
		return m.renderLoading()
	}

	width := min(m.width-8, 80)
	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(theme.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(width).Render(q.Question))
	b.WriteString("\n\n")
	b.WriteString(m.choice.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("↑↓ move   Enter/1-4 answer"))

	return theme.Card.Render(b.String())
}

func (m Model) renderFeedback() string {
	var b strings.Builder

	if m.last.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("Answer: " + m.last.CorrectAnswer))
	}

	switch {
	case m.last.Transition.Promoted:
		b.WriteString("\n\n" + theme.Correct.Render(fmt.Sprintf("Level up → %s", m.last.Transition.To)))
	case m.last.Transition.Demoted:
		b.WriteString("\n\n" + theme.Subtitle.Render(fmt.Sprintf("Easing off → %s", m.last.Transition.To)))
	}

	b.WriteString("\n\n" + theme.Hint.Render("Press any key to continue"))
	return theme.Card.Render(b.String())
}

func (m Model) renderSummary() string {
	s := m.summary
	var b strings.Builder

	b.WriteString(theme.Title.Render("Quiz complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n", theme.Body.Render(fmt.Sprintf("%s — %s", s.Learner, s.Topic)))
	fmt.Fprintf(&b, "%s\n", theme.Body.Render(fmt.Sprintf("Score: %d/%d (%.0f%%)", s.Score, s.Total, s.Accuracy)))
	fmt.Fprintf(&b, "%s\n", theme.Body.Render("Final level: "+s.FinalLevel))
	fmt.Fprintf(&b, "%s\n", theme.Body.Render(fmt.Sprintf("Time: %d:%02d", int(s.Elapsed.Minutes()), int(s.Elapsed.Seconds())%60)))

	mention := theme.Correct
	if s.Mention == "Insufficient" {
		mention = theme.Incorrect
	}
	b.WriteString("\n" + mention.Render("Mention: "+s.Mention))
	b.WriteString("\n\n" + theme.Hint.Render("Press q to exit"))

	return theme.Card.Render(b.String())
}

func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(min(m.width-8, 70)).Render(m.errMsg))
	b.WriteString("\n\n" + theme.Hint.Render("Press q to exit"))
	return theme.Card.Render(b.String())
}
