package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartquiz/internal/ui/theme"
)

// optionLabel returns the display label for option i. Generated
// questions carry 4 options, but hand-edited cache files may hold more,
// so labels are derived from the index rather than a fixed table.
func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

// MultiChoice is the answer selector for one question.
type MultiChoice struct {
	choices   []string
	selected  int
	submitted bool
	chosen    int
	correct   int
}

// NewMultiChoice creates a selector over the given choices.
// correctIndex is revealed only after submission.
func NewMultiChoice(choices []string, correctIndex int) MultiChoice {
	return MultiChoice{
		choices:  choices,
		correct:  correctIndex,
		selected: 0,
		chosen:   -1,
	}
}

// Update handles navigation and submission keys.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.choices)-1 {
			m.selected++
		}
	case "enter":
		m.submitted = true
		m.chosen = m.selected
	default:
		// Digit shortcuts: 1-based index submits directly.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.choices) {
				m.selected = i
				m.submitted = true
				m.chosen = i
			}
		}
	}

	return m, nil
}

// View renders the option list. After submission the correct option is
// highlighted green and a wrong pick red.
func (m MultiChoice) View() string {
	var s string
	for i, choice := range m.choices {
		prefix := "  "
		if i == m.selected && !m.submitted {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s) %s", prefix, optionLabel(i), choice)

		switch {
		case m.submitted && i == m.correct:
			s += theme.Correct.Render(line)
		case m.submitted && i == m.chosen:
			s += theme.Incorrect.Render(line)
		case m.submitted:
			s += theme.Hint.Render(line)
		case i == m.selected:
			s += theme.Selected.Render(line)
		default:
			s += theme.Unselected.Render(line)
		}
		s += "\n"
	}
	return s
}

// Submitted reports whether an answer has been locked in.
func (m MultiChoice) Submitted() bool { return m.submitted }

// Chosen returns the text of the submitted choice, or "" before
// submission.
func (m MultiChoice) Chosen() string {
	if !m.submitted || m.chosen < 0 || m.chosen >= len(m.choices) {
		return ""
	}
	return m.choices[m.chosen]
}
