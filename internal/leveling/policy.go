// Package leveling adapts question difficulty to the learner's momentum
// within a single attempt. Three correct answers in a row promote one
// level; two incorrect in a row demote one level. The state is transient
// and discarded when the attempt ends.
//
// This is deliberately independent of lifetime mastery (internal/mastery):
// leveling reacts to session-local streaks, mastery measures long-term
// accuracy, and the two never feed each other.
package leveling

import "github.com/abhisek/smartquiz/internal/quiz"

const (
	promoteStreak = 3
	demoteStreak  = 2
)

// State is the per-attempt leveling state machine.
type State struct {
	Level                quiz.Level
	ConsecutiveCorrect   int
	ConsecutiveIncorrect int
}

// NewState starts the machine at the learner-selected level with zeroed
// counters.
func NewState(start quiz.Level) State {
	return State{Level: start}
}

// Transition describes what a graded answer did to the level.
type Transition struct {
	From     quiz.Level
	To       quiz.Level
	Promoted bool
	Demoted  bool
}

// Apply advances the machine for one graded answer and returns the
// resulting transition. A correct answer resets the incorrect streak and
// vice versa; a promotion or demotion resets the streak that caused it.
// The level is clamped at Beginner and Advanced.
func (s *State) Apply(correct bool) Transition {
	tr := Transition{From: s.Level}

	if correct {
		s.ConsecutiveCorrect++
		s.ConsecutiveIncorrect = 0
		if s.ConsecutiveCorrect >= promoteStreak && s.Level != quiz.LevelAdvanced {
			s.Level = s.Level.Next()
			s.ConsecutiveCorrect = 0
			tr.Promoted = true
		}
	} else {
		s.ConsecutiveIncorrect++
		s.ConsecutiveCorrect = 0
		if s.ConsecutiveIncorrect >= demoteStreak && s.Level != quiz.LevelBeginner {
			s.Level = s.Level.Prev()
			s.ConsecutiveIncorrect = 0
			tr.Demoted = true
		}
	}

	tr.To = s.Level
	return tr
}
