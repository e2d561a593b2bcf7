// Package qcache is the durable, deduplicated question store.
//
// Questions live in a single JSON document keyed logically by content
// fingerprint. The file is rewritten whole on every mutation, via a temp
// file and atomic rename, so a reader always sees either the previous or
// the fully written state. The store assumes a single writer process; it
// deliberately carries no file locking.
package qcache

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/abhisek/smartquiz/internal/quiz"
)

// FileName is the default name of the cache document inside the data dir.
const FileName = "questions_cache.json"

// Cache is the question store plus the in-memory set of fingerprints asked
// during the current session. The session set is never persisted.
type Cache struct {
	path    string
	entries []Entry
	session map[string]struct{}
}

// document is the on-disk shape. session_asked is reserved: the session
// tracker is memory-only, but the key is kept so older files round-trip.
type document struct {
	Questions    []Entry           `json:"questions"`
	SessionAsked []json.RawMessage `json:"session_asked"`
}

// Open loads the cache at path. A missing file yields an empty cache; a
// file that exists but cannot be parsed is an error — question history is
// never silently discarded.
func Open(path string) (*Cache, error) {
	c := &Cache{path: path, session: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read question cache: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("question cache %s is corrupt: %w", path, err)
	}
	c.entries = doc.Questions
	return c, nil
}

// Len returns the number of cached questions.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all cached entries, in insertion order.
func (c *Cache) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Contains reports whether a question with the same content fingerprint is
// already cached.
func (c *Cache) Contains(q quiz.Question) bool {
	return c.indexOf(q.Fingerprint()) >= 0
}

func (c *Cache) indexOf(hash string) int {
	for i := range c.entries {
		if c.entries[i].Hash == hash {
			return i
		}
	}
	return -1
}

// Add appends the question unless an entry with the same fingerprint
// already exists, in which case it is a no-op. On append the cache is
// persisted synchronously.
func (c *Cache) Add(q quiz.Question) error {
	if c.Contains(q) {
		return nil
	}
	c.entries = append(c.entries, newEntry(q))
	return c.save()
}

// RecordAnswer attaches the learner's choice to the entry matching the
// question's fingerprint, overwriting any earlier choice. When no entry
// exists yet — the question reached the learner without being cached
// first — a new entry carrying the choice is appended instead. Either way
// the cache is persisted.
func (c *Cache) RecordAnswer(q quiz.Question, choice string) error {
	if i := c.indexOf(q.Fingerprint()); i >= 0 {
		c.entries[i].UserChoice = choice
		return c.save()
	}
	e := newEntry(q)
	e.UserChoice = choice
	c.entries = append(c.entries, e)
	return c.save()
}

// FindUnused returns a cached question matching topic and level that has
// not been asked this session, chosen uniformly at random among the
// candidates. Randomizing spreads repeat exposure across a long-lived
// store instead of always replaying the oldest entry. Returns nil when no
// candidate remains; that is an expected outcome, not an error.
func (c *Cache) FindUnused(topic string, level quiz.Level) *quiz.Question {
	var candidates []int
	for i := range c.entries {
		e := &c.entries[i]
		if e.Topic != topic || e.Level != level {
			continue
		}
		if _, asked := c.session[e.Hash]; asked {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return nil
	}
	q := c.entries[candidates[rand.IntN(len(candidates))]].ToQuestion()
	return &q
}

// StartSession clears the per-session asked set.
func (c *Cache) StartSession() {
	c.session = make(map[string]struct{})
}

// MarkAsked records the question's fingerprint in the session set.
// Idempotent.
func (c *Cache) MarkAsked(q quiz.Question) {
	c.session[q.Fingerprint()] = struct{}{}
}

// WasAskedThisSession reports whether the question was already served in
// the current session.
func (c *Cache) WasAskedThisSession(q quiz.Question) bool {
	_, ok := c.session[q.Fingerprint()]
	return ok
}

// Clear resets both the durable store and the session set, then persists
// the empty document. Destructive and irreversible.
func (c *Cache) Clear() error {
	c.entries = nil
	c.session = make(map[string]struct{})
	return c.save()
}

// Stats summarizes cache contents for display.
type Stats struct {
	TotalCached      int
	AskedThisSession int
	UniqueTopics     int
}

// Summary returns cache statistics.
func (c *Cache) Summary() Stats {
	topics := make(map[string]struct{})
	for i := range c.entries {
		topics[c.entries[i].Topic] = struct{}{}
	}
	return Stats{
		TotalCached:      len(c.entries),
		AskedThisSession: len(c.session),
		UniqueTopics:     len(topics),
	}
}

// save rewrites the whole document: marshal, write to a temp file in the
// same directory, fsync, then rename over the target.
func (c *Cache) save() error {
	doc := document{
		Questions:    c.entries,
		SessionAsked: []json.RawMessage{},
	}
	if doc.Questions == nil {
		doc.Questions = []Entry{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal question cache: %w", err)
	}
	return atomicWrite(c.path, data)
}

// atomicWrite writes data to path through a temp file and rename so
// readers never observe a partial file.
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
