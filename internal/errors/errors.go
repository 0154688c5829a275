package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/breakfree/internal/logger"
)

var (
	// ErrCorruptRecord means the persisted user record is not valid JSON or has a field of the wrong type.
	ErrCorruptRecord = errors.New("user record is corrupt")
	// ErrGenerationUnavailable means the text generation backend failed; callers show the fallback text.
	ErrGenerationUnavailable = errors.New("text generation unavailable")
	// ErrGoalNotFound is returned when a goal id does not match any goal.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrHabitNotFound is returned when a habit id does not match any habit.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrDuplicateGoal is returned when a goal id is already in use.
	ErrDuplicateGoal = errors.New("goal already exists")
)

// ValidationError reports a field that failed input validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps err to the process exit status: 0 for nil, 2 for rejected input,
// 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsValidation(err):
		return 2
	default:
		return 1
	}
}

// Fatal reports err on stderr and exits with ExitCode(err). A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(ExitCode(err))
}

// Fatalf is Fatal for a formatted message and always exits 1.
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
