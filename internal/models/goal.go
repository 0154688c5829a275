package models

type GoalCategory string

const (
	CategoryPhysical     GoalCategory = "Physical"
	CategoryMental       GoalCategory = "Mental"
	CategoryEmotional    GoalCategory = "Emotional"
	CategoryDigitalDetox GoalCategory = "Digital Detox"
	CategorySocial       GoalCategory = "Social"
)

// GoalCategories lists every category in display order.
var GoalCategories = []GoalCategory{
	CategoryPhysical, CategoryMental, CategoryEmotional, CategoryDigitalDetox, CategorySocial,
}

// Goal is an immutable daily goal template. Two goals are the same goal iff their IDs match.
type Goal struct {
	ID       string       `json:"id" validate:"required"`
	Text     string       `json:"text" validate:"notblank,max=200"`
	Points   int          `json:"points" validate:"gt=0"`
	Category GoalCategory `json:"category" validate:"goalcategory"`
}

// IsValidCategory reports whether c is one of the known goal categories.
func IsValidCategory(c GoalCategory) bool {
	for _, known := range GoalCategories {
		if c == known {
			return true
		}
	}
	return false
}
