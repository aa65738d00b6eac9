package recipe

import "strings"

// Ingredient is one line of a recipe. Amount keeps the author's original
// text ("1 1/2", "¾", "2-3"); it is parsed into an exact fraction wherever
// quantity math happens, so unparseable amounts degrade to "no amount"
// instead of corrupting the recipe.
type Ingredient struct {
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Name   string `json:"name"`
	Note   string `json:"note,omitempty"`
}

// Recipe is an immutable catalog entity. Plan slots reference recipes by ID;
// a recipe is never embedded by value in a shopping list.
type Recipe struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id,omitempty"`
	Title        string       `json:"title"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	PrepTime     string       `json:"prep_time,omitempty"`
	Servings     string       `json:"servings,omitempty"`
	SourceURL    string       `json:"source_url,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}

// NormalizeName turns a free-text ingredient name into the case-folded,
// trimmed key used for shopping-list aggregation.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
