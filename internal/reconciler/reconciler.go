// Package reconciler brings a persisted user record up to date with the current
// calendar day.
package reconciler

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/logger"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/storage"
	"github.com/julianstephens/breakfree/internal/utils"
)

// Options configure a Reconciler. Zero values fall back to the wall clock, the local
// time zone and the keep policy.
type Options struct {
	Now              func() time.Time
	Location         *time.Location
	GoalStreakPolicy constants.GoalStreakPolicy
}

// Result is the outcome of a reconciliation.
type Result struct {
	Record models.UserRecord
	// Created is set when no record existed and a fresh one was persisted.
	Created bool
	// RolledOver is set when a new day began since the last login.
	RolledOver bool
}

type Reconciler struct {
	store storage.Provider
	opts  Options
}

func New(store storage.Provider, opts Options) *Reconciler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.GoalStreakPolicy == "" {
		opts.GoalStreakPolicy = constants.DefaultGoalStreakOnMiss
	}
	return &Reconciler{store: store, opts: opts}
}

// Today is the current calendar day in the reconciler's time zone.
func (r *Reconciler) Today() string {
	return utils.DayOf(r.opts.Now(), r.opts.Location)
}

// Location is the time zone days are evaluated in.
func (r *Reconciler) Location() *time.Location {
	return r.opts.Location
}

// Policy is the goal streak policy applied on rollover.
func (r *Reconciler) Policy() constants.GoalStreakPolicy {
	return r.opts.GoalStreakPolicy
}

// Reconcile loads the record, normalizes it and applies the day rollover. It writes to
// the store exactly once when a rollover happens or a fresh record is created, and not
// at all otherwise. A malformed blob fails with ErrCorruptRecord and is left untouched.
func (r *Reconciler) Reconcile() (Result, error) {
	blob, err := r.store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		rec, err := r.Fresh()
		if err != nil {
			return Result{}, err
		}
		return Result{Record: rec, Created: true}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to load record: %w", err)
	}

	rec, err := Decode(blob, r.opts.Location)
	if err != nil {
		logger.Error("Persisted record is corrupt", "store", r.store.GetConfigPath(), "error", err)
		return Result{}, err
	}

	today := r.Today()
	out, rolled := Rollover(rec, today, r.opts.GoalStreakPolicy)
	if !rolled {
		return Result{Record: rec}, nil
	}

	if err := r.Save(out); err != nil {
		return Result{}, err
	}
	logger.Info("Day rollover",
		"lastLogin", rec.LastLogin, "today", today,
		"streak", fmt.Sprintf("%d->%d", rec.Streak, out.Streak),
		"consecutiveGoalDays", fmt.Sprintf("%d->%d", rec.ConsecutiveGoalDays, out.ConsecutiveGoalDays),
		"policy", r.opts.GoalStreakPolicy,
	)
	return Result{Record: out, RolledOver: true}, nil
}

// Fresh creates, persists and returns a brand new record for today.
func (r *Reconciler) Fresh() (models.UserRecord, error) {
	rec := models.NewUserRecord(r.Today())
	if err := r.Save(rec); err != nil {
		return models.UserRecord{}, err
	}
	logger.Info("Created new record", "store", r.store.GetConfigPath())
	return rec, nil
}

// Save encodes rec and writes it to the store.
func (r *Reconciler) Save(rec models.UserRecord) error {
	blob, err := Encode(rec)
	if err != nil {
		return err
	}
	if err := r.store.Save(blob); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}
