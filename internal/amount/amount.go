package amount

import (
	"regexp"
	"strconv"
	"strings"

	"mealweek/internal/fraction"
)

// RangePolicy controls how a numeric range such as "4-6" collapses to a
// single value. Ingredient amounts take the upper bound (buy enough for the
// larger quantity), while servings-from-yield text takes the midpoint. The
// two policies are deliberately kept distinct; do not unify them without a
// product decision.
type RangePolicy int

const (
	RangeUpperBound RangePolicy = iota
	RangeAverage
)

// vulgarFractions maps unicode vulgar-fraction glyphs to ascii "a/b" tokens.
// A leading space is included so "1½" expands to "1 1/2".
var vulgarFractions = strings.NewReplacer(
	"½", " 1/2",
	"¼", " 1/4",
	"¾", " 3/4",
	"⅓", " 1/3",
	"⅔", " 2/3",
	"⅕", " 1/5",
	"⅖", " 2/5",
	"⅗", " 3/5",
	"⅘", " 4/5",
	"⅙", " 1/6",
	"⅚", " 5/6",
	"⅐", " 1/7",
	"⅛", " 1/8",
	"⅜", " 3/8",
	"⅝", " 5/8",
	"⅞", " 7/8",
	"⅑", " 1/9",
	"⅒", " 1/10",
)

// Parse converts human-written amount text ("1 1/2", "¾", "2-3", "200")
// into a normalized fraction. ok is false when the text carries no
// parseable quantity; callers treat that as "no amount" rather than an
// error so that aggregation stays total.
func Parse(s string) (fraction.Fraction, bool) {
	return ParseWithPolicy(s, RangeUpperBound)
}

// ParseWithPolicy is Parse with an explicit range policy.
func ParseWithPolicy(s string, policy RangePolicy) (fraction.Fraction, bool) {
	s = vulgarFractions.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return fraction.Fraction{}, false
	}

	// A dash past the first character marks a range ("2-3"). A leading
	// dash is a sign, which the mixed-number branch handles.
	if strings.Contains(s[1:], "-") {
		return parseRange(s, policy)
	}
	return parseSingle(s)
}

// ParseValue handles the loosely typed amounts that arrive from JSON: a
// string, a number, an {n,d} fraction object, or nothing at all.
func ParseValue(v any) (fraction.Fraction, bool) {
	switch a := v.(type) {
	case nil:
		return fraction.Fraction{}, false
	case fraction.Fraction:
		return a.Normalize()
	case float64:
		return fraction.FromFloat(a)
	case int:
		return fraction.Fraction{N: int64(a), D: 1}, true
	case int64:
		return fraction.Fraction{N: a, D: 1}, true
	case string:
		return Parse(a)
	case map[string]any:
		n, nok := a["n"].(float64)
		d, dok := a["d"].(float64)
		if !nok || !dok {
			return fraction.Fraction{}, false
		}
		return fraction.New(int64(n), int64(d))
	default:
		return fraction.Fraction{}, false
	}
}

var servingsRe = regexp.MustCompile(`\d+(?:[.,]\d+)?(?:\s*-\s*\d+(?:[.,]\d+)?)?`)

// ParseServings pulls the serving count out of free-form yield text such as
// "Serves 4-6 people". Ranges resolve to their midpoint.
func ParseServings(s string) (fraction.Fraction, bool) {
	m := servingsRe.FindString(s)
	if m == "" {
		return fraction.Fraction{}, false
	}
	return ParseWithPolicy(strings.ReplaceAll(m, ",", "."), RangeAverage)
}

func parseRange(s string, policy RangePolicy) (fraction.Fraction, bool) {
	parts := strings.Split(s, "-")
	var segments []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	if len(segments) == 0 {
		return fraction.Fraction{}, false
	}

	last, ok := parseSingle(segments[len(segments)-1])
	if !ok {
		return fraction.Fraction{}, false
	}
	if policy == RangeUpperBound || len(segments) == 1 {
		return last, true
	}

	first, ok := parseSingle(segments[0])
	if !ok {
		return fraction.Fraction{}, false
	}
	sum, ok := first.Add(last)
	if !ok {
		return fraction.Fraction{}, false
	}
	return sum.Div(fraction.Fraction{N: 2, D: 1})
}

func parseSingle(s string) (fraction.Fraction, bool) {
	// Mixed number: "<int> <int>/<int>". The sign lives on the whole-number
	// token only; a negative whole subtracts the fractional magnitude.
	if fields := strings.Fields(s); len(fields) == 2 {
		whole, err := strconv.ParseInt(fields[0], 10, 64)
		if err == nil {
			if frac, ok := parseSimpleFraction(fields[1]); ok && frac.N >= 0 {
				base := fraction.Fraction{N: whole, D: 1}
				if whole < 0 {
					res, ok := base.Sub(frac)
					return res, ok
				}
				res, ok := base.Add(frac)
				return res, ok
			}
		}
		return fraction.Fraction{}, false
	}

	if strings.Contains(s, "/") {
		return parseSimpleFraction(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fraction.Fraction{}, false
	}
	return fraction.FromFloat(v)
}

func parseSimpleFraction(s string) (fraction.Fraction, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return fraction.Fraction{}, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return fraction.Fraction{}, false
	}
	d, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || d == 0 {
		return fraction.Fraction{}, false
	}
	return fraction.New(n, d)
}
