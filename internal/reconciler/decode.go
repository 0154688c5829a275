package reconciler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/utils"
)

// rawRecord mirrors models.UserRecord with pointers where a missing field must be told
// apart from a zero value.
type rawRecord struct {
	Streak              int                   `json:"streak"`
	BreakPoints         int                   `json:"breakPoints"`
	LastLogin           *string               `json:"lastLogin"`
	CompletedGoals      []string              `json:"completedGoals"`
	Habits              []models.Habit        `json:"habits"`
	Goals               *[]models.Goal        `json:"goals"`
	Level               *int                  `json:"level"`
	LevelName           string                `json:"levelName"`
	ConsecutiveGoalDays *int                  `json:"consecutiveGoalDays"`
	Journal             []models.JournalEntry `json:"journal"`
}

// Decode parses a persisted blob and fills the defaults for fields that older versions
// of the record did not carry. Structurally invalid data yields ErrCorruptRecord.
//
// lastLogin may be a YYYY-MM-DD day or an RFC 3339 timestamp; timestamps are projected
// into loc. An absent or unreadable lastLogin decodes as "" which the rollover treats as
// a broken streak.
func Decode(blob []byte, loc *time.Location) (models.UserRecord, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.UserRecord{}, fmt.Errorf("%w: empty document", apperrors.ErrCorruptRecord)
	}

	var raw rawRecord
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %v", apperrors.ErrCorruptRecord, err)
	}

	rec := models.UserRecord{
		Streak:         raw.Streak,
		BreakPoints:    raw.BreakPoints,
		CompletedGoals: raw.CompletedGoals,
		Habits:         raw.Habits,
		Journal:        raw.Journal,
		LevelName:      raw.LevelName,
	}

	if raw.LastLogin != nil {
		if day, err := utils.ParseDayOrTimestamp(*raw.LastLogin, loc); err == nil {
			rec.LastLogin = day
		}
	}

	// A null or absent goals list gets the starter set; an explicit empty list is the
	// user's choice and stays empty.
	if raw.Goals == nil || *raw.Goals == nil {
		rec.Goals = models.DefaultGoals()
	} else {
		rec.Goals = *raw.Goals
	}

	rec.Level = 1
	if raw.Level != nil && *raw.Level >= 1 {
		rec.Level = *raw.Level
	}
	if rec.LevelName == "" {
		rec.LevelName = models.LevelName(rec.Level)
	}

	if raw.ConsecutiveGoalDays != nil {
		rec.ConsecutiveGoalDays = *raw.ConsecutiveGoalDays
	}

	// Clone normalizes every nil slice to an empty one.
	return rec.Clone(), nil
}

// Encode serializes a record for the persistence slot.
func Encode(rec models.UserRecord) ([]byte, error) {
	blob, err := json.Marshal(rec.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return blob, nil
}
