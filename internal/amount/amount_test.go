package amount

import (
	"testing"

	"mealweek/internal/fraction"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want fraction.Fraction
		ok   bool
	}{
		{"SimpleFraction", "1/2", fraction.Fraction{N: 1, D: 2}, true},
		{"MixedNumber", "1 1/2", fraction.Fraction{N: 3, D: 2}, true},
		{"UnicodeThreeQuarters", "¾", fraction.Fraction{N: 3, D: 4}, true},
		{"UnicodeMixed", "1½", fraction.Fraction{N: 3, D: 2}, true},
		{"RangeTakesUpperBound", "4-6", fraction.Fraction{N: 6, D: 1}, true},
		{"RangeWithSpaces", "2 - 3", fraction.Fraction{N: 3, D: 1}, true},
		{"PlainInteger", "200", fraction.Fraction{N: 200, D: 1}, true},
		{"Decimal", "2.5", fraction.Fraction{N: 5, D: 2}, true},
		{"ImproperFractionKept", "4/3", fraction.Fraction{N: 4, D: 3}, true},
		{"NegativeMixed", "-1 1/2", fraction.Fraction{N: -3, D: 2}, true},
		{"Empty", "", fraction.Fraction{}, false},
		{"Whitespace", "   ", fraction.Fraction{}, false},
		{"FreeText", "abc", fraction.Fraction{}, false},
		{"IngredientName", "Avocado oil", fraction.Fraction{}, false},
		{"ZeroDenominator", "1/0", fraction.Fraction{}, false},
		{"NonIntegerFraction", "1.5/2", fraction.Fraction{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Parse(c.in)
			if ok != c.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", c.in, ok, c.ok)
			}
			if ok && got != c.want {
				t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestRangePolicies(t *testing.T) {
	// The two policies must stay distinct: upper bound for ingredient
	// amounts, midpoint for servings.
	t.Run("UpperBound", func(t *testing.T) {
		got, ok := ParseWithPolicy("4-6", RangeUpperBound)
		if !ok || got != (fraction.Fraction{N: 6, D: 1}) {
			t.Errorf("ParseWithPolicy(4-6, upper) = %v ok=%v, want 6/1", got, ok)
		}
	})
	t.Run("Average", func(t *testing.T) {
		got, ok := ParseWithPolicy("4-6", RangeAverage)
		if !ok || got != (fraction.Fraction{N: 5, D: 1}) {
			t.Errorf("ParseWithPolicy(4-6, average) = %v ok=%v, want 5/1", got, ok)
		}
	})
	t.Run("AverageOddGap", func(t *testing.T) {
		got, ok := ParseWithPolicy("2-3", RangeAverage)
		if !ok || got != (fraction.Fraction{N: 5, D: 2}) {
			t.Errorf("ParseWithPolicy(2-3, average) = %v ok=%v, want 5/2", got, ok)
		}
	})
}

func TestParseServings(t *testing.T) {
	cases := []struct {
		in   string
		want fraction.Fraction
		ok   bool
	}{
		{"Serves 4-6 people", fraction.Fraction{N: 5, D: 1}, true},
		{"4 people", fraction.Fraction{N: 4, D: 1}, true},
		{"makes 12 cookies", fraction.Fraction{N: 12, D: 1}, true},
		{"a crowd", fraction.Fraction{}, false},
	}
	for _, c := range cases {
		got, ok := ParseServings(c.in)
		if ok != c.ok {
			t.Errorf("ParseServings(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ParseServings(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	if got, ok := ParseValue(nil); ok {
		t.Errorf("ParseValue(nil) = %v, expected not ok", got)
	}
	if got, ok := ParseValue(2.5); !ok || got != (fraction.Fraction{N: 5, D: 2}) {
		t.Errorf("ParseValue(2.5) = %v ok=%v, want 5/2", got, ok)
	}
	if got, ok := ParseValue("1/2"); !ok || got != (fraction.Fraction{N: 1, D: 2}) {
		t.Errorf("ParseValue(\"1/2\") = %v ok=%v, want 1/2", got, ok)
	}
	if got, ok := ParseValue(fraction.Fraction{N: 4, D: 8}); !ok || got != (fraction.Fraction{N: 1, D: 2}) {
		t.Errorf("ParseValue(Fraction 4/8) = %v ok=%v, want 1/2", got, ok)
	}
	if got, ok := ParseValue(map[string]any{"n": 3.0, "d": 4.0}); !ok || got != (fraction.Fraction{N: 3, D: 4}) {
		t.Errorf("ParseValue({n:3,d:4}) = %v ok=%v, want 3/4", got, ok)
	}
}
