package recipe

import (
	"strings"

	"mealweek/internal/amount"
	"mealweek/internal/units"
)

// SplitLine breaks a free-text ingredient line ("1 1/2 cups rolled oats",
// "¾ cup milk", "4 corn tortillas", "Salt to taste") into amount, unit and
// name. The leading tokens that parse as a quantity become the amount; the
// next token becomes the unit only if it is a recognized unit word. A line
// with no parseable quantity comes back with the whole text as the name.
func SplitLine(line string) Ingredient {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Ingredient{}
	}

	// Greedily consume leading tokens that still parse as an amount; this
	// captures mixed numbers ("1 1/2") without swallowing the name.
	consumed := 0
	for i := 1; i <= len(fields) && i <= 2; i++ {
		candidate := strings.Join(fields[:i], " ")
		if _, ok := amount.Parse(candidate); ok {
			consumed = i
		} else if consumed > 0 {
			break
		}
	}

	if consumed == 0 {
		return Ingredient{Name: strings.TrimSpace(line)}
	}

	ing := Ingredient{Amount: strings.Join(fields[:consumed], " ")}
	rest := fields[consumed:]
	if len(rest) > 0 && units.IsKnownUnit(strings.TrimRight(rest[0], ".,")) {
		ing.Unit = units.Normalize(strings.TrimRight(rest[0], ".,"))
		rest = rest[1:]
	}
	ing.Name = strings.TrimSpace(strings.Join(rest, " "))
	return ing
}
