package qcache

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/smartquiz/internal/quiz"
)

// Entry is one cached question plus its cache metadata. Entries are
// append-only: once persisted, the question fields never change; only
// UserChoice may be attached or overwritten after the learner answers.
//
// Unknown JSON keys found on disk are retained across read-modify-write
// cycles so that newer versions of the file format survive older binaries.
type Entry struct {
	Hash          string
	ID            string
	Topic         string
	Level         quiz.Level
	Question      string
	Options       []string
	CorrectAnswer string
	Kind          string
	UserChoice    string

	extra map[string]json.RawMessage
}

// newEntry builds an Entry for a question, computing its fingerprint.
func newEntry(q quiz.Question) Entry {
	return Entry{
		Hash:          q.Fingerprint(),
		ID:            q.ID,
		Topic:         q.Topic,
		Level:         q.Level,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Kind:          q.Kind,
	}
}

// ToQuestion reconstructs the immutable question value from the entry.
func (e Entry) ToQuestion() quiz.Question {
	return quiz.Question{
		ID:            e.ID,
		Topic:         e.Topic,
		Level:         e.Level,
		Question:      e.Question,
		Options:       e.Options,
		CorrectAnswer: e.CorrectAnswer,
		Kind:          e.Kind,
	}
}

// entryKeys are the JSON keys the Entry struct owns. Everything else is
// carried through verbatim in extra.
var entryKeys = map[string]bool{
	"hash": true, "id": true, "topic": true, "level": true,
	"question": true, "options": true, "correct_answer": true,
	"type": true, "user_choice": true,
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	get := func(key string, dst any) error {
		raw, ok := m[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("entry field %q: %w", key, err)
		}
		return nil
	}

	if err := get("hash", &e.Hash); err != nil {
		return err
	}
	if err := get("id", &e.ID); err != nil {
		return err
	}
	if err := get("topic", &e.Topic); err != nil {
		return err
	}
	if err := get("level", &e.Level); err != nil {
		return err
	}
	if err := get("question", &e.Question); err != nil {
		return err
	}
	if err := get("options", &e.Options); err != nil {
		return err
	}
	if err := get("correct_answer", &e.CorrectAnswer); err != nil {
		return err
	}
	if err := get("type", &e.Kind); err != nil {
		return err
	}
	if err := get("user_choice", &e.UserChoice); err != nil {
		return err
	}

	for k, v := range m {
		if entryKeys[k] {
			continue
		}
		if e.extra == nil {
			e.extra = make(map[string]json.RawMessage)
		}
		e.extra[k] = v
	}
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(e.extra)+9)
	for k, v := range e.extra {
		m[k] = v
	}

	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("entry field %q: %w", key, err)
		}
		m[key] = raw
		return nil
	}

	if err := set("hash", e.Hash); err != nil {
		return nil, err
	}
	if err := set("id", e.ID); err != nil {
		return nil, err
	}
	if err := set("topic", e.Topic); err != nil {
		return nil, err
	}
	if err := set("level", e.Level); err != nil {
		return nil, err
	}
	if err := set("question", e.Question); err != nil {
		return nil, err
	}
	if err := set("options", e.Options); err != nil {
		return nil, err
	}
	if err := set("correct_answer", e.CorrectAnswer); err != nil {
		return nil, err
	}
	if err := set("type", e.Kind); err != nil {
		return nil, err
	}
	if e.UserChoice != "" {
		if err := set("user_choice", e.UserChoice); err != nil {
			return nil, err
		}
	}
	return json.Marshal(m)
}
