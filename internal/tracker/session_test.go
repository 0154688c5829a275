package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/breakfree/internal/constants"
	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/generation"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/reconciler"
	"github.com/julianstephens/breakfree/internal/storage"
)

// clock is a settable test clock.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newClock(t *testing.T, day string) *clock {
	t.Helper()
	d, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		t.Fatal(err)
	}
	return &clock{now: d.Add(12 * time.Hour)}
}

type fakeSnapshotter struct {
	blobs [][]byte
	err   error
}

func (f *fakeSnapshotter) Snapshot(blob []byte, reason string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.blobs = append(f.blobs, blob)
	return "snapshot-" + reason, nil
}

func setupTest(t *testing.T, day string) (*Session, *storage.MemoryStore, *clock) {
	t.Helper()
	store := storage.NewMemoryStore()
	c := newClock(t, day)
	s, err := Open(store, reconciler.Options{Now: c.Now, Location: time.UTC}, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, store, c
}

func TestOpenCreatesRecord(t *testing.T) {
	s, store, _ := setupTest(t, "2024-05-10")
	if !s.Created || s.RolledOver {
		t.Errorf("flags = created %v rolled %v", s.Created, s.RolledOver)
	}
	if store.Saves != 1 {
		t.Errorf("Saves = %d, want 1", store.Saves)
	}
	if got := s.Record().LastLogin; got != "2024-05-10" {
		t.Errorf("LastLogin = %q", got)
	}
	if s.Today() != "2024-05-10" {
		t.Errorf("Today() = %q", s.Today())
	}
}

func TestApplySingleWrite(t *testing.T) {
	s, store, _ := setupTest(t, "2024-05-10")
	before := store.Saves

	changed, err := s.CompleteGoal("pushups_10")
	if err != nil || !changed {
		t.Fatalf("CompleteGoal() = %v, %v", changed, err)
	}
	if store.Saves != before+1 {
		t.Errorf("Saves = %d, want %d", store.Saves, before+1)
	}

	changed, err = s.CompleteGoal("pushups_10")
	if err != nil || changed {
		t.Errorf("repeat = %v, %v", changed, err)
	}
	if store.Saves != before+1 {
		t.Errorf("no-op wrote to the store: Saves = %d", store.Saves)
	}

	var persisted models.UserRecord
	if err := json.Unmarshal(store.Blob(), &persisted); err != nil {
		t.Fatal(err)
	}
	if persisted.BreakPoints != 10 {
		t.Errorf("persisted BreakPoints = %d", persisted.BreakPoints)
	}
}

func TestApplyRejectedLeavesState(t *testing.T) {
	s, store, _ := setupTest(t, "2024-05-10")
	before := store.Saves
	rec := s.Record()

	if _, err := s.CompleteGoal("missing"); !errors.Is(err, apperrors.ErrGoalNotFound) {
		t.Errorf("error = %v", err)
	}
	if _, err := s.AddHabit("", models.HabitBuild); !apperrors.IsValidation(err) {
		t.Errorf("error = %v", err)
	}
	if store.Saves != before {
		t.Errorf("rejected mutation wrote: Saves = %d", store.Saves)
	}
	if s.Record().BreakPoints != rec.BreakPoints || len(s.Record().Habits) != 0 {
		t.Error("rejected mutation changed the record")
	}
}

func TestApplySaveFailure(t *testing.T) {
	s, store, _ := setupTest(t, "2024-05-10")
	store.FailSave = errors.New("disk full")

	if _, err := s.CompleteGoal("pushups_10"); err == nil {
		t.Fatal("expected error")
	}
	if s.Record().IsGoalCompleted("pushups_10") {
		t.Error("in-memory record changed after failed save")
	}
}

func TestApplyReconcilesAcrossMidnight(t *testing.T) {
	s, _, c := setupTest(t, "2024-05-10")
	for _, g := range s.Record().Goals {
		if _, err := s.CompleteGoal(g.ID); err != nil {
			t.Fatal(err)
		}
	}

	c.now = c.now.Add(24 * time.Hour)
	if _, err := s.CompleteGoal("pushups_10"); err != nil {
		t.Fatal(err)
	}

	rec := s.Record()
	if rec.LastLogin != "2024-05-11" || s.Today() != "2024-05-11" {
		t.Errorf("LastLogin = %q, Today = %q", rec.LastLogin, s.Today())
	}
	if rec.Streak != 1 || rec.ConsecutiveGoalDays != 1 {
		t.Errorf("streak = %d, goal days = %d; want 1, 1", rec.Streak, rec.ConsecutiveGoalDays)
	}
	if len(rec.CompletedGoals) != 1 {
		t.Errorf("completed = %v, want only today's goal", rec.CompletedGoals)
	}
}

func TestCompleteHabitUsesToday(t *testing.T) {
	s, _, _ := setupTest(t, "2024-05-10")
	h, err := s.AddHabit("Walk", models.HabitBuild)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CompleteHabit(h.ID); err != nil {
		t.Fatal(err)
	}
	got := s.Record().Habits[0].Completions
	if len(got) != 1 || got[0] != "2024-05-10" {
		t.Errorf("completions = %v", got)
	}
}

func TestOpenCorruptRecord(t *testing.T) {
	c := newClock(t, "2024-05-10")
	opts := reconciler.Options{Now: c.Now, Location: time.UTC}

	t.Run("snapshot then fresh", func(t *testing.T) {
		store := storage.NewMemoryStoreWith([]byte(`{"streak":"three"}`))
		snap := &fakeSnapshotter{}
		s, err := Open(store, opts, snap)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if !s.Recovered || !s.Created {
			t.Errorf("flags = recovered %v created %v", s.Recovered, s.Created)
		}
		if len(snap.blobs) != 1 || string(snap.blobs[0]) != `{"streak":"three"}` {
			t.Errorf("snapshots = %q", snap.blobs)
		}
		if s.Record().Level != 1 {
			t.Errorf("fresh record level = %d", s.Record().Level)
		}
	})

	t.Run("snapshot failure keeps blob", func(t *testing.T) {
		store := storage.NewMemoryStoreWith([]byte(`not json`))
		_, err := Open(store, opts, &fakeSnapshotter{err: errors.New("read-only")})
		if err == nil {
			t.Fatal("expected error")
		}
		if string(store.Blob()) != "not json" || store.Saves != 0 {
			t.Error("corrupt blob overwritten without a snapshot")
		}
	})
}

func TestLogout(t *testing.T) {
	s, store, _ := setupTest(t, "2024-05-10")
	if err := s.Logout(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Load() after logout error = %v", err)
	}
}

func TestWisdomReflectionFlow(t *testing.T) {
	s, store, _ := setupTest(t, "2024-05-10")
	var calls int
	gen := generation.GeneratorFunc(func(ctx context.Context, req generation.Request) (string, error) {
		calls++
		if req.Kind == generation.KindReflectionQuestion {
			return "What will you practise tomorrow?", nil
		}
		if calls == 2 {
			return "", errors.New("unavailable")
		}
		return "Wisdom " + req.Prompt[:4], nil
	})
	w := NewWisdomSession(generation.NewService(gen, time.Second))

	for i, stream := range []string{"Mind Discipline", "Peace & Patience", "Motivation Surge"} {
		_, due := w.View(context.Background(), stream)
		if want := i == 2; due != want {
			t.Errorf("view %d: due = %v, want %v", i, due, want)
		}
	}
	seen := w.Seen()
	if seen[1] != generation.Fallback(generation.KindWisdomForStream) {
		t.Errorf("fallback wisdom not counted: %q", seen)
	}

	r := w.Reflect(context.Background())
	if r.Question != "What will you practise tomorrow?" || len(r.Context) != 3 {
		t.Errorf("reflection = %+v", r)
	}
	if w.ReflectionDue() || len(w.Seen()) != 0 {
		t.Error("batch not reset after reflection")
	}

	before := store.Saves
	if _, err := r.Save(s, "  "); !apperrors.IsValidation(err) {
		t.Errorf("blank response error = %v", err)
	}
	if store.Saves != before {
		t.Error("blank response persisted")
	}

	if _, err := r.Save(s, "More patience."); err != nil {
		t.Fatal(err)
	}
	j := s.Record().Journal
	if len(j) != 1 || j[0].Question != r.Question || len(j[0].Context) != 3 {
		t.Errorf("journal = %+v", j)
	}
}
