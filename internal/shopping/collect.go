package shopping

import (
	"mealweek/internal/amount"
	"mealweek/internal/fraction"
	"mealweek/internal/plan"
	"mealweek/internal/recipe"
	"mealweek/internal/units"
)

// Collected is the desired state derived from a plan: every recipe
// ingredient occurrence, scaled by slot quantity and grouped by normalized
// ingredient name. Names preserves first-seen order so reconciliation output
// is deterministic.
type Collected struct {
	Names     []string
	Sources   map[string][]Source
	RecipeIDs map[string]struct{}
}

// Collect walks the weekly plan and extracts every ingredient occurrence
// from planned recipes. Leftovers contribute nothing. Amounts that fail to
// parse become zero-amount sources rather than being dropped, so every
// planned ingredient stays visible on the list for checking off.
func Collect(p *plan.WeeklyPlan) *Collected {
	c := &Collected{
		Sources:   map[string][]Source{},
		RecipeIDs: map[string]struct{}{},
	}
	if p == nil {
		return c
	}

	for _, day := range p.Days {
		for _, mt := range plan.MealTypes {
			for _, slot := range day.Meals[mt] {
				switch slot.Kind {
				case plan.SlotLeftover:
					// No ingredients of its own.
				case plan.SlotRecipe:
					c.collectRecipe(slot, day.Day, mt)
				}
			}
		}
	}
	return c
}

func (c *Collected) collectRecipe(slot plan.SlotItem, day string, mt plan.MealType) {
	if slot.RecipeID == "" || slot.Recipe == nil || len(slot.Recipe.Ingredients) == 0 {
		return
	}
	c.RecipeIDs[slot.RecipeID] = struct{}{}

	batches := fraction.Fraction{N: 1, D: 1}
	if slot.Quantity > 0 {
		if q, ok := fraction.FromFloat(slot.Quantity); ok {
			batches = q
		}
	}

	for _, ing := range slot.Recipe.Ingredients {
		name := recipe.NormalizeName(ing.Name)
		if name == "" {
			continue
		}

		scaled := fraction.Zero()
		if amt, ok := amount.Parse(ing.Amount); ok {
			if m, ok := amt.Mul(batches); ok {
				scaled = m
			}
		}

		src := Source{
			RecipeID: slot.RecipeID,
			Amount:   scaled,
			Unit:     units.Normalize(ing.Unit),
			Day:      day,
			MealType: mt,
		}
		c.add(name, src)
	}
}

// add appends a source under the given name, merging into an existing
// source with the same provenance key when the units are mergeable (an
// ingredient listed twice within one recipe). Non-mergeable duplicates stay
// as distinct sources; correctness beats the appearance of de-duplication.
func (c *Collected) add(name string, src Source) {
	list, seen := c.Sources[name]
	if !seen {
		c.Names = append(c.Names, name)
	}

	for i := range list {
		if !list[i].sameProvenance(src) {
			continue
		}
		if !units.Mergeable(list[i].Unit, src.Unit) {
			continue
		}
		if sum, ok := list[i].Amount.Add(src.Amount); ok {
			list[i].Amount = sum
		} else {
			// Exact sum impossible; fall back to a float-derived fraction.
			if f, ok := fraction.FromFloat(list[i].Amount.Float64() + src.Amount.Float64()); ok {
				list[i].Amount = f
			}
		}
		if list[i].Unit == "" {
			list[i].Unit = src.Unit
		}
		c.Sources[name] = list
		return
	}

	c.Sources[name] = append(list, src)
}
