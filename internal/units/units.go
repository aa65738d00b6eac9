// Package units canonicalizes unit text so that quantities from different
// recipes can be compared and merged. Canonicalization is best-effort:
// unknown units pass through verbatim instead of being rejected, so they can
// still be displayed and merged literally.
package units

import "strings"

// aliases maps common spellings and abbreviations to a canonical short token.
var aliases = map[string]string{
	// weight, metric
	"g":     "g",
	"gr":    "g",
	"gram":  "g",
	"grams": "g",
	"kg":    "kg",
	"kilo":  "kg",
	"kilos": "kg",
	"kilogram":  "kg",
	"kilograms": "kg",

	// weight, imperial
	"oz":     "oz",
	"ounce":  "oz",
	"ounces": "oz",
	"lb":     "lb",
	"lbs":    "lb",
	"pound":  "lb",
	"pounds": "lb",

	// volume
	"ml":          "ml",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"l":      "l",
	"liter":  "l",
	"liters": "l",
	"litre":  "l",
	"litres": "l",
	"cup":  "cup",
	"cups": "cup",
	"c":    "cup",
	"tbsp":        "tbsp",
	"tbsps":       "tbsp",
	"tbs":         "tbsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tsp":       "tsp",
	"tsps":      "tsp",
	"teaspoon":  "tsp",
	"teaspoons": "tsp",
	"floz":         "floz",
	"fl oz":        "floz",
	"fluid ounce":  "floz",
	"fluid ounces": "floz",

	// count
	"pc":     "pc",
	"pcs":    "pc",
	"piece":  "pc",
	"pieces": "pc",
}

// knownWords are unit words recognized by the ingredient-line splitter but
// left unaliased; they merge literally.
var knownWords = map[string]struct{}{
	"pinch":    {},
	"pinches":  {},
	"dash":     {},
	"dashes":   {},
	"clove":    {},
	"cloves":   {},
	"slice":    {},
	"slices":   {},
	"can":      {},
	"cans":     {},
	"package":  {},
	"packages": {},
	"pack":     {},
	"packs":    {},
	"stick":    {},
	"sticks":   {},
	"bunch":    {},
	"bunches":  {},
	"head":     {},
	"heads":    {},
	"sprig":    {},
	"sprigs":   {},
	"handful":  {},
	"handfuls": {},
	"jar":      {},
	"jars":     {},
	"bag":      {},
	"bags":     {},
}

// Normalize lowercases and trims unit text and resolves known aliases to
// their canonical token. Unknown units are returned as-is (trimmed,
// lowercased).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}

// IsKnownUnit reports whether a token is a recognized unit word, aliased or
// not. The ingredient-line splitter uses this to decide whether the token
// after an amount is a unit or the start of the ingredient name.
func IsKnownUnit(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := aliases[s]; ok {
		return true
	}
	_, ok := knownWords[s]
	return ok
}

// Mergeable reports whether two quantities with these units may be summed.
// Units merge when their canonical forms match, or when either side is
// empty: many parsed ingredients carry no unit ("4 corn tortillas") and
// must still aggregate with unit-bearing duplicates.
func Mergeable(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return true
	}
	return na == nb
}
