package shopping

import (
	"time"

	"github.com/google/uuid"

	"mealweek/internal/plan"
	"mealweek/internal/recipe"
)

// Reconcile computes the next shopping list from the current persisted list
// and the current plan. It is a pure state merge over snapshots:
//
//   - manual sources always survive untouched;
//   - recipe-derived sources survive only while their recipe stays planned;
//   - checked state is inherited by exact provenance-key match first, then
//     by recipe-id fallback (a recipe moved to another day keeps its checks);
//   - names new to the plan become fresh, unchecked items;
//   - items whose sources empty out are dropped.
//
// Running it twice with the same inputs yields identical output aside from
// UpdatedAt. Callers must serialize read-modify-write cycles per user+week;
// the function itself holds no state.
func Reconcile(current []Item, p *plan.WeeklyPlan, userID string) []Item {
	collected := Collect(p)
	now := time.Now().UTC()

	processed := map[string]bool{}
	var next []Item

	for _, item := range current {
		name := recipe.NormalizeName(item.IngredientName)
		desired, planned := collected.Sources[name]

		if !planned {
			// The plan no longer produces this ingredient; only manual
			// sources keep the item alive.
			var kept []Source
			for _, s := range item.Sources {
				if s.IsManual() {
					kept = append(kept, s)
				}
			}
			if len(kept) == 0 {
				continue
			}
			item.Sources = kept
			item.UpdatedAt = now
			next = append(next, item)
			continue
		}

		var sources []Source
		for _, d := range desired {
			sources = append(sources, inheritChecked(d, item.Sources))
		}
		for _, s := range item.Sources {
			if s.IsManual() {
				sources = append(sources, s)
			}
		}

		item.IngredientName = name
		item.Sources = sources
		item.UpdatedAt = now
		next = append(next, item)
		processed[name] = true
	}

	// Brand-new ingredient names introduced by the plan.
	for _, name := range collected.Names {
		if processed[name] {
			continue
		}
		next = append(next, Item{
			ID:             uuid.NewString(),
			IngredientName: name,
			Sources:        collected.Sources[name],
			UserID:         userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	return next
}

// inheritChecked carries checked state from the previous list onto a freshly
// collected source. Exact provenance match wins; failing that, any previous
// source from the same recipe donates its state, so moving a recipe from
// Monday dinner to Tuesday lunch does not silently uncheck it.
func inheritChecked(d Source, previous []Source) Source {
	for _, s := range previous {
		if s.sameProvenance(d) {
			d.IsChecked = s.IsChecked
			d.CheckedFrom = s.CheckedFrom
			return d
		}
	}
	for _, s := range previous {
		if !s.IsManual() && s.RecipeID == d.RecipeID {
			d.IsChecked = s.IsChecked
			d.CheckedFrom = s.CheckedFrom
			return d
		}
	}
	return d
}

// RemovePlannedItem splices one planned item out of the plan by id and, on
// success, reconciles the list against the mutated plan. This is a
// composition, not a separate algorithm; its correctness rests on Reconcile
// plus uniqueness of plan-item ids.
func RemovePlannedItem(current []Item, p *plan.WeeklyPlan, planItemID, userID string) ([]Item, bool) {
	if !p.RemoveItem(planItemID) {
		return current, false
	}
	return Reconcile(current, p, userID), true
}
