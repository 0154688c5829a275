package reconciler

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/breakfree/internal/constants"
	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/storage"
)

// fixedClock returns a clock stuck at noon on day in loc.
func fixedClock(t *testing.T, day string, loc *time.Location) func() time.Time {
	t.Helper()
	d, err := time.ParseInLocation(constants.DateFormat, day, loc)
	if err != nil {
		t.Fatalf("bad test day %q: %v", day, err)
	}
	noon := d.Add(12 * time.Hour)
	return func() time.Time { return noon }
}

func setupTest(t *testing.T, today string, rec *models.UserRecord) (*Reconciler, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	if rec != nil {
		blob, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		store = storage.NewMemoryStoreWith(blob)
	}
	r := New(store, Options{Now: fixedClock(t, today, time.UTC), Location: time.UTC})
	return r, store
}

func recordWith(lastLogin string, streak, goalDays int, completed ...string) *models.UserRecord {
	rec := models.NewUserRecord(lastLogin)
	rec.Streak = streak
	rec.ConsecutiveGoalDays = goalDays
	rec.CompletedGoals = completed
	return &rec
}

func allGoalIDs() []string {
	var ids []string
	for _, g := range models.DefaultGoals() {
		ids = append(ids, g.ID)
	}
	return ids
}

func TestReconcile_SameDayNoWrite(t *testing.T) {
	in := recordWith("2024-05-10", 4, 2, "pushups_10")
	r, store := setupTest(t, "2024-05-10", in)

	res, err := r.Reconcile()
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if store.Saves != 0 {
		t.Errorf("Saves = %d, want 0", store.Saves)
	}
	if res.RolledOver || res.Created {
		t.Errorf("unexpected flags: %+v", res)
	}
	if !reflect.DeepEqual(res.Record, in.Clone()) {
		t.Errorf("record changed:\n got %+v\nwant %+v", res.Record, *in)
	}
}

func TestReconcile_Rollover(t *testing.T) {
	tests := []struct {
		name         string
		in           *models.UserRecord
		policy       constants.GoalStreakPolicy
		wantStreak   int
		wantGoalDays int
	}{
		{
			name:         "yesterday with all goals done",
			in:           recordWith("2024-05-09", 4, 2, allGoalIDs()...),
			wantStreak:   5,
			wantGoalDays: 3,
		},
		{
			name:         "yesterday with goals incomplete keeps goal streak",
			in:           recordWith("2024-05-09", 4, 2, "pushups_10"),
			wantStreak:   5,
			wantGoalDays: 2,
		},
		{
			name:         "yesterday with goals incomplete under reset policy",
			in:           recordWith("2024-05-09", 4, 2, "pushups_10"),
			policy:       constants.GoalStreakReset,
			wantStreak:   5,
			wantGoalDays: 0,
		},
		{
			name:         "three days ago resets both",
			in:           recordWith("2024-05-07", 9, 6, allGoalIDs()...),
			wantStreak:   1,
			wantGoalDays: 0,
		},
		{
			name:         "future last login is a gap",
			in:           recordWith("2024-05-12", 3, 3, allGoalIDs()...),
			wantStreak:   1,
			wantGoalDays: 0,
		},
		{
			name: "empty goal set never counts as done",
			in: func() *models.UserRecord {
				rec := recordWith("2024-05-09", 1, 1)
				rec.Goals = []models.Goal{}
				return rec
			}(),
			wantStreak:   2,
			wantGoalDays: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStoreWith(mustEncode(t, *tt.in))
			r := New(store, Options{
				Now:              fixedClock(t, "2024-05-10", time.UTC),
				Location:         time.UTC,
				GoalStreakPolicy: tt.policy,
			})

			res, err := r.Reconcile()
			if err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}
			if !res.RolledOver {
				t.Error("RolledOver = false, want true")
			}
			if store.Saves != 1 {
				t.Errorf("Saves = %d, want exactly 1", store.Saves)
			}

			got := res.Record
			if got.Streak != tt.wantStreak {
				t.Errorf("Streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.ConsecutiveGoalDays != tt.wantGoalDays {
				t.Errorf("ConsecutiveGoalDays = %d, want %d", got.ConsecutiveGoalDays, tt.wantGoalDays)
			}
			if len(got.CompletedGoals) != 0 {
				t.Errorf("CompletedGoals = %v, want empty", got.CompletedGoals)
			}
			if got.LastLogin != "2024-05-10" {
				t.Errorf("LastLogin = %q, want today", got.LastLogin)
			}

			persisted, err := Decode(store.Blob(), time.UTC)
			if err != nil {
				t.Fatalf("Decode(persisted) error = %v", err)
			}
			if !reflect.DeepEqual(persisted, got) {
				t.Errorf("persisted record differs from returned record")
			}
		})
	}
}

func TestReconcile_SecondLoadSameDayIsStable(t *testing.T) {
	r, store := setupTest(t, "2024-05-10", recordWith("2024-05-09", 1, 0))

	first, err := r.Reconcile()
	if err != nil {
		t.Fatalf("first Reconcile() error = %v", err)
	}
	second, err := r.Reconcile()
	if err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if store.Saves != 1 {
		t.Errorf("Saves = %d, want 1", store.Saves)
	}
	if second.RolledOver {
		t.Error("second load rolled over again")
	}
	if !reflect.DeepEqual(first.Record, second.Record) {
		t.Errorf("second load differs:\n got %+v\nwant %+v", second.Record, first.Record)
	}
}

func TestReconcile_AbsentRecord(t *testing.T) {
	r, store := setupTest(t, "2024-05-10", nil)

	first, err := r.Reconcile()
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !first.Created {
		t.Error("Created = false for absent record")
	}
	if store.Saves != 1 {
		t.Errorf("Saves = %d, want 1", store.Saves)
	}

	rec := first.Record
	if rec.Streak != 0 || rec.BreakPoints != 0 || rec.ConsecutiveGoalDays != 0 {
		t.Errorf("fresh counters not zero: %+v", rec)
	}
	if rec.LastLogin != "2024-05-10" || rec.Level != 1 || rec.LevelName != constants.LevelNames[0] {
		t.Errorf("fresh record = %+v", rec)
	}
	if !reflect.DeepEqual(rec.Goals, models.DefaultGoals()) {
		t.Errorf("fresh goals = %v", rec.Goals)
	}

	second, err := r.Reconcile()
	if err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if store.Saves != 1 {
		t.Errorf("Saves after second load = %d, want 1", store.Saves)
	}
	if !reflect.DeepEqual(first.Record, second.Record) {
		t.Errorf("second load is not idempotent:\n got %+v\nwant %+v", second.Record, first.Record)
	}
}

func TestReconcile_CorruptRecord(t *testing.T) {
	store := storage.NewMemoryStoreWith([]byte(`{"streak": "many"`))
	r := New(store, Options{Now: fixedClock(t, "2024-05-10", time.UTC), Location: time.UTC})

	_, err := r.Reconcile()
	if !errors.Is(err, apperrors.ErrCorruptRecord) {
		t.Fatalf("Reconcile() error = %v, want ErrCorruptRecord", err)
	}
	if store.Saves != 0 {
		t.Errorf("corrupt record was overwritten (%d saves)", store.Saves)
	}
}

func TestReconcile_SaveFailureReturnsError(t *testing.T) {
	r, store := setupTest(t, "2024-05-10", recordWith("2024-05-09", 1, 0))
	store.FailSave = errors.New("disk full")

	if _, err := r.Reconcile(); err == nil {
		t.Fatal("Reconcile() should surface the save failure")
	}
}

func TestReconcile_TimezoneDecidesTheDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2024-05-09 20:00 UTC is already 2024-05-10 in Tokyo.
	now := time.Date(2024, 5, 9, 20, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStoreWith(mustEncode(t, *recordWith("2024-05-09", 2, 0)))

	res, err := New(store, Options{Now: func() time.Time { return now }, Location: tokyo}).Reconcile()
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !res.RolledOver || res.Record.LastLogin != "2024-05-10" || res.Record.Streak != 3 {
		t.Errorf("Tokyo reconcile = %+v", res)
	}

	store = storage.NewMemoryStoreWith(mustEncode(t, *recordWith("2024-05-09", 2, 0)))
	res, err = New(store, Options{Now: func() time.Time { return now }, Location: time.UTC}).Reconcile()
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if res.RolledOver {
		t.Error("UTC reconcile rolled over on the same UTC day")
	}
}

func TestRollover_DoesNotMutateInput(t *testing.T) {
	in := *recordWith("2024-05-09", 1, 0, allGoalIDs()...)
	before := in.Clone()

	_, _ = Rollover(in, "2024-05-10", constants.GoalStreakKeep)
	if !reflect.DeepEqual(in, before) {
		t.Error("Rollover mutated its input")
	}
}

func mustEncode(t *testing.T, rec models.UserRecord) []byte {
	t.Helper()
	blob, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return blob
}
