// Package mastery tracks lifetime per-topic accuracy in a durable learner
// profile. It is display-facing: the derived proficiency tier never feeds
// back into the in-attempt leveling policy.
package mastery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/abhisek/smartquiz/internal/quiz"
)

// FileName is the default name of the profile document inside the data dir.
const FileName = "learner_profile.json"

// Score holds the monotonically non-decreasing counters for one topic.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Tracker is the durable per-topic accuracy record.
type Tracker struct {
	path   string
	scores map[string]Score
}

type profile struct {
	Scores map[string]Score `json:"scores"`
}

// Open loads the learner profile at path. A missing file yields an empty
// profile; a malformed file is an error.
func Open(path string) (*Tracker, error) {
	t := &Tracker{path: path, scores: make(map[string]Score)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read learner profile: %w", err)
	}

	var p profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("learner profile %s is corrupt: %w", path, err)
	}
	if p.Scores != nil {
		t.scores = p.Scores
	}
	return t, nil
}

// Record counts one graded answer for topic, creating the record when
// absent, and persists synchronously. Called exactly once per graded
// answer.
func (t *Tracker) Record(topic string, correct bool) error {
	s := t.scores[topic]
	s.Total++
	if correct {
		s.Correct++
	}
	t.scores[topic] = s
	return t.save()
}

// Percent returns the lifetime accuracy for topic in [0,100]. A topic with
// no recorded answers scores 0.
func (t *Tracker) Percent(topic string) float64 {
	s := t.scores[topic]
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(s.Correct) / float64(s.Total)
}

// TierFor derives the display proficiency tier for topic from lifetime
// accuracy: Advanced at 80 and above, Intermediate at 70 and above,
// Beginner otherwise.
func (t *Tracker) TierFor(topic string) quiz.Level {
	p := t.Percent(topic)
	switch {
	case p >= 80:
		return quiz.LevelAdvanced
	case p >= 70:
		return quiz.LevelIntermediate
	default:
		return quiz.LevelBeginner
	}
}

// Topics returns all recorded topics, sorted.
func (t *Tracker) Topics() []string {
	out := make([]string, 0, len(t.scores))
	for topic := range t.scores {
		out = append(out, topic)
	}
	sort.Strings(out)
	return out
}

// ScoreFor returns the raw counters for topic.
func (t *Tracker) ScoreFor(topic string) Score {
	return t.scores[topic]
}

// Analysis returns the accuracy percentage for every recorded topic.
func (t *Tracker) Analysis() map[string]float64 {
	out := make(map[string]float64, len(t.scores))
	for topic := range t.scores {
		out[topic] = t.Percent(topic)
	}
	return out
}

// Reset discards all recorded scores and persists the empty profile.
func (t *Tracker) Reset() error {
	t.scores = make(map[string]Score)
	return t.save()
}

func (t *Tracker) save() error {
	data, err := json.MarshalIndent(profile{Scores: t.scores}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal learner profile: %w", err)
	}
	return atomicWrite(t.path, data)
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
