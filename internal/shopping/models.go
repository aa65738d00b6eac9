package shopping

import (
	"time"

	"mealweek/internal/fraction"
	"mealweek/internal/plan"
)

// CheckedFrom records who checked a source off.
type CheckedFrom string

const (
	CheckedByUser   CheckedFrom = "user"
	CheckedByFridge CheckedFrom = "fridge"
)

// Source is one contributing placement of an ingredient: a specific
// recipe-at-day-mealtype occurrence, or a manual addition (empty RecipeID).
// The (RecipeID, Day, MealType) triple is the provenance key that matches a
// source across reconciliation passes; checked state survives exactly as
// long as an equivalent provenance is still present in the plan.
type Source struct {
	RecipeID    string            `json:"recipe_id,omitempty"`
	Amount      fraction.Fraction `json:"amount"`
	Unit        string            `json:"unit,omitempty"`
	IsChecked   bool              `json:"is_checked"`
	CheckedFrom CheckedFrom       `json:"checked_from,omitempty"`
	Day         string            `json:"day,omitempty"`
	MealType    plan.MealType     `json:"meal_type,omitempty"`
}

// IsManual reports whether the source was added by hand rather than derived
// from the plan. Manual sources are never touched by plan sync.
func (s Source) IsManual() bool {
	return s.RecipeID == ""
}

// sameProvenance is the exact provenance-key match.
func (s Source) sameProvenance(o Source) bool {
	return s.RecipeID == o.RecipeID && s.Day == o.Day && s.MealType == o.MealType
}

// Item is one shopping-list entry: a distinct normalized ingredient name for
// one user and week, with the list of contributing sources. Items are
// derived, not authored; only the checked state on sources is user-owned.
// An item whose sources empty out is deleted.
type Item struct {
	ID             string    `json:"id"`
	IngredientName string    `json:"ingredient_name"`
	Sources        []Source  `json:"sources"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TotalFor sums the item's mergeable source amounts for display. Sources
// whose units cannot merge with the first unit are excluded; callers render
// them separately.
func (it Item) TotalFor(unit string) fraction.Fraction {
	total := fraction.Zero()
	for _, s := range it.Sources {
		if s.Unit != unit {
			continue
		}
		if sum, ok := total.Add(s.Amount); ok {
			total = sum
		}
	}
	return total
}
