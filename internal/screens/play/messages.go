package play

import (
	"time"

	"github.com/abhisek/smartquiz/internal/quiz"
)

// questionReadyMsg carries the next question, or the supply error that
// ended the attempt early.
type questionReadyMsg struct {
	Question *quiz.Question
	Err      error
}

// timerTickMsg drives the countdown once per second.
type timerTickMsg time.Time
