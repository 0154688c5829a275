package generation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/breakfree/internal/models"
)

func GoalMotivationPrompt(goalText string) string {
	return `The user completed this goal: "` + goalText + `"`
}

func WisdomPrompt(stream string) string {
	return "The chosen Wisdom Stream is: " + stream
}

// ReflectionPrompt numbers the wisdoms from 1 in the order they were seen.
func ReflectionPrompt(wisdoms []string) string {
	parts := make([]string, len(wisdoms))
	for i, w := range wisdoms {
		parts[i] = fmt.Sprintf("Wisdom %d:\n%s", i+1, w)
	}
	return "Here is the wisdom the user has seen:\n\n" + strings.Join(parts, "\n\n")
}

// HabitSuggestionPrompt asks the companion for three new habits, listing the ones
// already tracked.
func HabitSuggestionPrompt(habits []models.Habit) string {
	if len(habits) == 0 {
		return "I want to improve my life by building good habits and breaking bad ones. " +
			"Can you suggest 3 new habits for me to start? " +
			"Please suggest habits that are small, actionable, and easy to start. " +
			"Format your response as a simple bulleted list."
	}

	var b strings.Builder
	b.WriteString("I want to improve my life. Based on my current habits, can you suggest 3 new habits for me to either build or break? Here's what I'm already tracking:\n\n")
	for _, h := range habits {
		fmt.Fprintf(&b, "- %s (%s)\n", h.Name, h.Type)
	}
	b.WriteString("\nPlease suggest habits that are small, actionable, and easy to start. Format your response as a simple bulleted list.")
	return b.String()
}
