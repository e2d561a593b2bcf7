package mastery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/smartquiz/internal/quiz"
)

func tempTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	return tr
}

func record(t *testing.T, tr *Tracker, topic string, outcomes ...bool) {
	t.Helper()
	for _, o := range outcomes {
		if err := tr.Record(topic, o); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPercent_ThreeOfFive(t *testing.T) {
	tr := tempTracker(t)
	record(t, tr, "X", true, true, true, false, false)
	if got := tr.Percent("X"); got != 60.0 {
		t.Errorf("Percent(X) = %v, want 60.0", got)
	}
}

func TestPercent_NoRecordIsZero(t *testing.T) {
	tr := tempTracker(t)
	if got := tr.Percent("never-seen"); got != 0 {
		t.Errorf("Percent on empty record = %v, want 0", got)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		correct, total int
		want           quiz.Level
	}{
		{8, 10, quiz.LevelAdvanced},     // 80 exactly
		{7, 10, quiz.LevelIntermediate}, // 70 exactly
		{69, 100, quiz.LevelBeginner},
		{0, 0, quiz.LevelBeginner},
	}
	for _, c := range cases {
		tr := tempTracker(t)
		for i := 0; i < c.total; i++ {
			if err := tr.Record("topic", i < c.correct); err != nil {
				t.Fatal(err)
			}
		}
		if got := tr.TierFor("topic"); got != c.want {
			t.Errorf("%d/%d: tier = %s, want %s", c.correct, c.total, got, c.want)
		}
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	tr, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	record(t, tr, "Go", true, false, true)

	reloaded, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if s := reloaded.ScoreFor("Go"); s.Correct != 2 || s.Total != 3 {
		t.Errorf("reloaded score = %+v, want {2 3}", s)
	}
}

func TestOpen_CorruptProfileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("]["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("corrupt profile must surface an error")
	}
}

func TestReset(t *testing.T) {
	tr := tempTracker(t)
	record(t, tr, "Go", true)
	if err := tr.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(tr.Topics()) != 0 {
		t.Errorf("expected no topics after reset, got %v", tr.Topics())
	}
}
