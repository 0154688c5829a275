package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/logger"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/reconciler"
	"github.com/julianstephens/breakfree/internal/storage"
)

// Snapshotter keeps a copy of a blob before it is replaced. Session uses it to preserve
// a corrupt record before starting fresh.
type Snapshotter interface {
	Snapshot(blob []byte, reason string) (string, error)
}

// Session owns the in-memory record for one invocation. It is the only writer to the
// store while open.
type Session struct {
	mu    sync.Mutex
	store storage.Provider
	rec   *reconciler.Reconciler
	now   func() time.Time
	day   string
	state models.UserRecord

	// Created and RolledOver describe what happened when the session was opened.
	Created    bool
	RolledOver bool
	// Recovered is set when a corrupt record was replaced by a fresh one.
	Recovered bool
}

// Open reconciles the stored record. A corrupt record is snapshotted through snap (if
// non-nil) and replaced by a fresh one; any other failure is returned.
func Open(store storage.Provider, opts reconciler.Options, snap Snapshotter) (*Session, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := reconciler.New(store, opts)
	s := &Session{store: store, rec: r, now: opts.Now}

	res, err := r.Reconcile()
	if errors.Is(err, apperrors.ErrCorruptRecord) {
		if snap != nil {
			if blob, lerr := store.Load(); lerr == nil {
				path, serr := snap.Snapshot(blob, "corrupt")
				if serr != nil {
					return nil, fmt.Errorf("failed to preserve corrupt record: %w", serr)
				}
				logger.Warn("Corrupt record preserved", "path", path)
			}
		}
		fresh, ferr := r.Fresh()
		if ferr != nil {
			return nil, ferr
		}
		res = reconciler.Result{Record: fresh, Created: true}
		s.Recovered = true
	} else if err != nil {
		return nil, err
	}

	s.state = res.Record
	s.day = r.Today()
	s.Created = res.Created
	s.RolledOver = res.RolledOver
	return s, nil
}

// Record returns a copy of the current record.
func (s *Session) Record() models.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Today is the calendar day the session's record was last reconciled for.
func (s *Session) Today() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// Now is the session clock.
func (s *Session) Now() time.Time {
	return s.now()
}

// Apply runs fn against the current record and persists the result with a single write
// when it changed. If the calendar day moved on since the last reconciliation the
// record is reconciled first. On error neither the in-memory record nor the store
// is touched.
func (s *Session) Apply(fn Transform) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if today := s.rec.Today(); today != s.day {
		out, rolled := reconciler.Rollover(s.state, today, s.rec.Policy())
		if rolled {
			if err := s.rec.Save(out); err != nil {
				return false, err
			}
			s.state = out
		}
		s.day = today
	}

	out, changed, err := fn(s.state)
	if err != nil || !changed {
		return false, err
	}
	if err := s.rec.Save(out); err != nil {
		return false, err
	}
	s.state = out
	return true, nil
}

// Logout erases the persisted record. The session must not be used afterwards.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear record: %w", err)
	}
	logger.Info("Record cleared", "store", s.store.GetConfigPath())
	s.state = models.UserRecord{}
	return nil
}

func (s *Session) CompleteGoal(id string) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return CompleteGoal(rec, id)
	})
}

func (s *Session) AddGoal(g models.Goal) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return AddGoal(rec, g)
	})
}

func (s *Session) RemoveGoal(id string) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return RemoveGoal(rec, id)
	})
}

func (s *Session) EditGoal(g models.Goal) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return EditGoal(rec, g)
	})
}

// AddHabit creates a habit and returns it.
func (s *Session) AddHabit(name string, typ models.HabitType) (models.Habit, error) {
	var created models.Habit
	_, err := s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		out, h, err := AddHabit(rec, name, typ)
		if err != nil {
			return rec, false, err
		}
		created = h
		return out, true, nil
	})
	return created, err
}

func (s *Session) RemoveHabit(id string) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return RemoveHabit(rec, id)
	})
}

func (s *Session) EditHabit(id, name string, typ models.HabitType) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return EditHabit(rec, id, name, typ)
	})
}

// CompleteHabit marks the habit done for the session's current day.
func (s *Session) CompleteHabit(id string) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return CompleteHabit(rec, id, rec.LastLogin)
	})
}

func (s *Session) AppendJournalEntry(e models.JournalEntry) (bool, error) {
	return s.Apply(func(rec models.UserRecord) (models.UserRecord, bool, error) {
		return AppendJournalEntry(rec, e)
	})
}
