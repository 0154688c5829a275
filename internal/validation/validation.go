// Package validation checks user input before any mutation touches the record.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/breakfree/internal/constants"
	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", notBlank)
	_ = validate.RegisterValidation("goalcategory", goalCategory)
	_ = validate.RegisterValidation("calendarday", calendarDay)
	_ = validate.RegisterValidation("timezone", timezone)
	_ = validate.RegisterValidation("goalstreakpolicy", goalStreakPolicy)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func goalCategory(fl validator.FieldLevel) bool {
	return models.IsValidCategory(models.GoalCategory(fl.Field().String()))
}

func calendarDay(fl validator.FieldLevel) bool {
	return utils.ValidateDay(fl.Field().String())
}

func timezone(fl validator.FieldLevel) bool {
	return utils.ValidateTimezone(fl.Field().String())
}

func goalStreakPolicy(fl validator.FieldLevel) bool {
	switch constants.GoalStreakPolicy(fl.Field().String()) {
	case constants.GoalStreakKeep, constants.GoalStreakReset:
		return true
	}
	return false
}

// Struct validates v against its `validate` tags. The first failing field is returned as
// a *errors.ValidationError.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fieldName(fe), reason(fe))
	}
	return fmt.Errorf("validation failed: %w", err)
}

func ValidateGoal(g models.Goal) error {
	return Struct(g)
}

func ValidateHabit(h models.Habit) error {
	return Struct(h)
}

func ValidateJournalEntry(e models.JournalEntry) error {
	return Struct(e)
}

// fieldName turns "Habit.Completions[2]" into "completions[2]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "goalcategory":
		return fmt.Sprintf("unknown category %q", fe.Value())
	case "calendarday":
		return fmt.Sprintf("%v is not a YYYY-MM-DD day", fe.Value())
	case "timezone":
		return fmt.Sprintf("unknown time zone %q", fe.Value())
	case "goalstreakpolicy":
		return fmt.Sprintf("must be %q or %q", constants.GoalStreakKeep, constants.GoalStreakReset)
	case "url":
		return "must be a valid URL"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
