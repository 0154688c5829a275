package constants

import "time"

// GoalStreakPolicy decides what happens to consecutiveGoalDays when the login streak is
// intact but yesterday's goals were not all completed.
type GoalStreakPolicy string

const (
	// GoalStreakKeep leaves consecutiveGoalDays untouched (historical behaviour).
	GoalStreakKeep GoalStreakPolicy = "keep"
	// GoalStreakReset resets consecutiveGoalDays to 0.
	GoalStreakReset GoalStreakPolicy = "reset"
)

const (
	// Config keys
	SettingTimezone         = "timezone"
	SettingGoalStreakOnMiss = "goal_streak_on_miss"
	SettingStore            = "store"
	SettingDebug            = "debug"
	SettingGeneratorBaseURL = "generator.base_url"
	SettingGeneratorModel   = "generator.model"
	SettingGeneratorRPM     = "generator.requests_per_minute"
	SettingGeneratorTimeout = "generator.timeout"

	// Default config values
	DefaultGoalStreakOnMiss = GoalStreakKeep
	DefaultGeneratorBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultGeneratorModel   = "gemini-2.5-flash"
	DefaultGeneratorRPM     = 30
	DefaultGeneratorTimeout = 30 * time.Second

	// Focus timer bounds in minutes
	DefaultFocusMinutes = 25
	MinFocusMinutes     = 5
	MaxFocusMinutes     = 90
	FocusStepMinutes    = 5
)
