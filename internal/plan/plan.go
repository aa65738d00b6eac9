package plan

import (
	"mealweek/internal/recipe"
)

// MealType identifies one of the four meal-bearing slots of a day.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes is the fixed scan order used everywhere slots are traversed.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Days is the fixed Monday-first day order. Date math depends on it; the
// order is not negotiable.
var Days = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// SlotKind discriminates the two slot-item variants.
type SlotKind string

const (
	SlotRecipe   SlotKind = "recipe"
	SlotLeftover SlotKind = "leftover"
)

// SlotItem is a tagged union: either a planned recipe with a batch
// multiplier, or a planned leftover. Leftovers carry no ingredients and are
// excluded from shopping-list aggregation entirely.
type SlotItem struct {
	ID   string   `json:"id"`
	Kind SlotKind `json:"kind"`

	// Recipe variant. Quantity is a batch multiplier (the whole recipe
	// scaled N times), not a serving-size edit.
	RecipeID string         `json:"recipe_id,omitempty"`
	Recipe   *recipe.Recipe `json:"recipe,omitempty"`
	Quantity float64        `json:"quantity,omitempty"`

	// Leftover variant.
	LeftoverID string `json:"leftover_id,omitempty"`
	Title      string `json:"title,omitempty"`
}

// DayPlan holds the slots for a single day plus free-text notes, which stay
// outside ingredient aggregation.
type DayPlan struct {
	Day   string                  `json:"day"`
	Meals map[MealType][]SlotItem `json:"meals"`
	Notes []string                `json:"notes,omitempty"`
}

// WeeklyPlan is an ordered sequence of exactly 7 day plans, Monday first.
type WeeklyPlan struct {
	Days []DayPlan `json:"days"`
}

// NewWeek returns an empty plan with the fixed 7-day shape.
func NewWeek() *WeeklyPlan {
	p := &WeeklyPlan{Days: make([]DayPlan, 0, len(Days))}
	for _, day := range Days {
		p.Days = append(p.Days, DayPlan{
			Day:   day,
			Meals: map[MealType][]SlotItem{},
		})
	}
	return p
}

// RemoveItem splices out the first slot entry matching the given plan-item
// id, scanning days and meal types in fixed order, and reports whether
// anything was removed. Plan-item ids are assumed unique across the week,
// so the scan stops at the first hit.
func (p *WeeklyPlan) RemoveItem(planItemID string) bool {
	if p == nil || planItemID == "" {
		return false
	}
	for di := range p.Days {
		for _, mt := range MealTypes {
			slots := p.Days[di].Meals[mt]
			for si, item := range slots {
				if item.ID == planItemID {
					p.Days[di].Meals[mt] = append(slots[:si:si], slots[si+1:]...)
					return true
				}
			}
		}
	}
	return false
}

// FindItem returns the slot item with the given id, or nil.
func (p *WeeklyPlan) FindItem(planItemID string) *SlotItem {
	if p == nil {
		return nil
	}
	for di := range p.Days {
		for _, mt := range MealTypes {
			for si := range p.Days[di].Meals[mt] {
				if p.Days[di].Meals[mt][si].ID == planItemID {
					return &p.Days[di].Meals[mt][si]
				}
			}
		}
	}
	return nil
}
