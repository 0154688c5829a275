package models

import "github.com/julianstephens/breakfree/internal/constants"

// DefaultGoals returns the starter goal set given to a new record.
func DefaultGoals() []Goal {
	return []Goal{
		{ID: "pushups_10", Text: "Do 10 pushups", Points: 10, Category: CategoryPhysical},
		{ID: "read_5_pages", Text: "Read 5 pages of a book", Points: 15, Category: CategoryMental},
		{ID: "help_someone", Text: "Help someone today", Points: 20, Category: CategoryEmotional},
		{ID: "go_outside_10", Text: "Go outside for 10 minutes", Points: 10, Category: CategoryPhysical},
		{ID: "journal_1_page", Text: "Write one journal entry", Points: 15, Category: CategoryMental},
		{ID: "no_doomscrolling", Text: "No doomscrolling for 1 hour before bed", Points: 25, Category: CategoryDigitalDetox},
	}
}

// GoalTemplates returns the extra goals a user can add.
func GoalTemplates() []Goal {
	return []Goal{
		{ID: "water_2l", Text: "Drink 2L water", Points: 10, Category: CategoryPhysical},
		{ID: "meditate_5m", Text: "Meditate for 5 minutes", Points: 15, Category: CategoryMental},
		{ID: "no_sugar", Text: "Avoid sugary snacks", Points: 20, Category: CategoryPhysical},
		{ID: "sleep_on_time", Text: "Sleep on time", Points: 15, Category: CategoryPhysical},
		{ID: "connect_friend", Text: "Connect with a friend", Points: 15, Category: CategorySocial},
		{ID: "clean_space_5m", Text: "Tidy workspace for 5 mins", Points: 10, Category: CategoryMental},
	}
}

// NewUserRecord returns the all-zero record created on first login.
func NewUserRecord(today string) UserRecord {
	return UserRecord{
		LastLogin:      today,
		CompletedGoals: []string{},
		Habits:         []Habit{},
		Goals:          DefaultGoals(),
		Level:          1,
		LevelName:      LevelName(1),
		Journal:        []JournalEntry{},
	}
}

// LevelName returns the display name for level, falling back to the first name
// when level is out of range.
func LevelName(level int) string {
	if level >= 1 && level <= len(constants.LevelNames) {
		return constants.LevelNames[level-1]
	}
	return constants.LevelNames[0]
}
