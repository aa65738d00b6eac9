package plan

import "testing"

func TestNewWeek(t *testing.T) {
	p := NewWeek()
	if len(p.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(p.Days))
	}
	if p.Days[0].Day != "Monday" || p.Days[6].Day != "Sunday" {
		t.Errorf("day order wrong: first=%s last=%s", p.Days[0].Day, p.Days[6].Day)
	}
	for _, d := range p.Days {
		if d.Meals == nil {
			t.Errorf("meals map not initialized for %s", d.Day)
		}
	}
}

func TestRemoveItem(t *testing.T) {
	p := NewWeek()
	p.Days[0].Meals[Dinner] = []SlotItem{
		{ID: "a", Kind: SlotRecipe, RecipeID: "r1", Quantity: 1},
		{ID: "b", Kind: SlotLeftover, LeftoverID: "l1", Title: "Soup"},
	}
	p.Days[2].Meals[Lunch] = []SlotItem{
		{ID: "c", Kind: SlotRecipe, RecipeID: "r2", Quantity: 2},
	}

	t.Run("RemovesFirstMatch", func(t *testing.T) {
		if !p.RemoveItem("b") {
			t.Fatal("expected RemoveItem to report removal")
		}
		if len(p.Days[0].Meals[Dinner]) != 1 {
			t.Errorf("expected 1 slot left, got %d", len(p.Days[0].Meals[Dinner]))
		}
		if p.Days[0].Meals[Dinner][0].ID != "a" {
			t.Errorf("wrong slot removed; remaining id %s", p.Days[0].Meals[Dinner][0].ID)
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		if p.RemoveItem("missing") {
			t.Error("expected no removal for unknown id")
		}
	})

	t.Run("NilPlan", func(t *testing.T) {
		var nilPlan *WeeklyPlan
		if nilPlan.RemoveItem("a") {
			t.Error("expected nil plan to report false")
		}
	})
}

func TestFindItem(t *testing.T) {
	p := NewWeek()
	p.Days[4].Meals[Snack] = []SlotItem{{ID: "x", Kind: SlotRecipe, RecipeID: "r9", Quantity: 1}}

	if got := p.FindItem("x"); got == nil || got.RecipeID != "r9" {
		t.Errorf("FindItem(x) = %+v, want recipe r9", got)
	}
	if got := p.FindItem("nope"); got != nil {
		t.Errorf("FindItem(nope) = %+v, want nil", got)
	}
}
