package session

import "time"

// Mention labels for a finished attempt.
const (
	MentionExcellent    = "Excellent"
	MentionGood         = "Good"
	MentionFair         = "Fair"
	MentionInsufficient = "Insufficient"
)

// Mention maps an accuracy percentage to its certificate label.
func Mention(percent float64) string {
	switch {
	case percent >= 85:
		return MentionExcellent
	case percent >= 70:
		return MentionGood
	case percent >= 50:
		return MentionFair
	default:
		return MentionInsufficient
	}
}

// Summary is the result card for a finished attempt.
type Summary struct {
	Learner    string
	Topic      string
	Score      int
	Total      int
	Accuracy   float64
	FinalLevel string
	Mention    string
	Elapsed    time.Duration
}

// Summary builds the result card as of now.
func (a *Attempt) Summary(now time.Time) Summary {
	var accuracy float64
	if a.asked > 0 {
		accuracy = float64(a.score) / float64(a.asked) * 100
	}

	return Summary{
		Learner:    a.Config.Learner,
		Topic:      a.Config.Topic,
		Score:      a.score,
		Total:      a.asked,
		Accuracy:   accuracy,
		FinalLevel: string(a.level.Level),
		Mention:    Mention(accuracy),
		Elapsed:    now.Sub(a.startedAt),
	}
}
