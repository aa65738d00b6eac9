package telegram

import (
	"strings"
	"testing"
	"time"

	"mealweek/internal/fraction"
	"mealweek/internal/plan"
	"mealweek/internal/shopping"
)

func frac(t *testing.T, n, d int64) fraction.Fraction {
	t.Helper()
	f, ok := fraction.New(n, d)
	if !ok {
		t.Fatalf("Invalid fraction %d/%d", n, d)
	}
	return f
}

func TestCurrentWeekID(t *testing.T) {
	// 2026-01-01 falls in ISO week 1 of 2026.
	got := CurrentWeekID(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if got != "2026-W01" {
		t.Errorf("Expected 2026-W01, got %s", got)
	}

	// 2023-01-01 is a Sunday belonging to ISO week 52 of 2022.
	got = CurrentWeekID(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if got != "2022-W52" {
		t.Errorf("Expected 2022-W52, got %s", got)
	}
}

func TestFormatListMarkdown(t *testing.T) {
	items := []shopping.Item{
		{
			ID:             "item-1",
			IngredientName: "rolled oats",
			Sources: []shopping.Source{
				{RecipeID: "r1", Amount: frac(t, 1, 2), Unit: "cup"},
				{RecipeID: "r2", Amount: frac(t, 1, 1), Unit: "cup"},
			},
		},
		{
			ID:             "item-2",
			IngredientName: "butter",
			Sources: []shopping.Source{
				{RecipeID: "r1", Amount: frac(t, 200, 1), Unit: "g", IsChecked: true, CheckedFrom: shopping.CheckedByUser},
			},
		},
		{
			ID:             "item-3",
			IngredientName: "salt",
			Sources: []shopping.Source{
				{RecipeID: "r1", Amount: fraction.Zero()},
			},
		},
	}

	out := formatListMarkdown("2026-W09", items)

	if !strings.Contains(out, "🛒 *Shopping List* (2026-W09)") {
		t.Error("Missing list header")
	}
	if !strings.Contains(out, "◻ rolled oats — 1 1/2 cup") {
		t.Errorf("Expected summed mixed-number line, got:\n%s", out)
	}
	if !strings.Contains(out, "✅ butter — 200 g") {
		t.Errorf("Expected checked butter line, got:\n%s", out)
	}
	// Amount-less ingredients render bare.
	if !strings.Contains(out, "◻ salt\n") {
		t.Errorf("Expected bare salt line, got:\n%s", out)
	}
}

func TestTotalsTextMixedUnits(t *testing.T) {
	item := shopping.Item{
		IngredientName: "milk",
		Sources: []shopping.Source{
			{RecipeID: "r1", Amount: frac(t, 1, 1), Unit: "cup"},
			{RecipeID: "r2", Amount: frac(t, 200, 1), Unit: "ml"},
		},
	}
	got := totalsText(item)
	if got != "1 cup + 200 ml" {
		t.Errorf("Expected per-unit totals, got %q", got)
	}
}

func TestListKeyboard(t *testing.T) {
	items := []shopping.Item{
		{ID: "item-1", IngredientName: "rolled oats", Sources: []shopping.Source{{RecipeID: "r1"}}},
	}
	kb := listKeyboard(items)
	if len(kb.InlineKeyboard) != 1 {
		t.Fatalf("Expected 1 keyboard row, got %d", len(kb.InlineKeyboard))
	}
	btn := kb.InlineKeyboard[0][0]
	if btn.CallbackData == nil || *btn.CallbackData != "toggle|item-1" {
		t.Errorf("Unexpected callback data: %v", btn.CallbackData)
	}
}

func TestFormatPlanMarkdown(t *testing.T) {
	p := plan.NewWeek()
	p.Days[0].Meals[plan.Dinner] = []plan.SlotItem{
		{ID: "s1", Kind: plan.SlotRecipe, RecipeID: "r1", Quantity: 2},
	}
	p.Days[1].Meals[plan.Lunch] = []plan.SlotItem{
		{ID: "s2", Kind: plan.SlotLeftover, Title: "Chili"},
	}
	p.Days[2].Notes = []string{"eating out"}

	out := formatPlanMarkdown("2026-W09", p)

	if !strings.Contains(out, "📅 *Meal Plan* (2026-W09)") {
		t.Error("Missing plan header")
	}
	// No hydrated recipe: falls back to the id.
	if !strings.Contains(out, "• dinner: r1 ×2") {
		t.Errorf("Missing scaled dinner line, got:\n%s", out)
	}
	if !strings.Contains(out, "• lunch: Chili (leftover)") {
		t.Errorf("Missing leftover line, got:\n%s", out)
	}
	if !strings.Contains(out, "_eating out_") {
		t.Errorf("Missing day note, got:\n%s", out)
	}
	// Empty days are skipped entirely.
	if strings.Contains(out, "*Thursday*") {
		t.Errorf("Empty day should be omitted, got:\n%s", out)
	}
}
