package fraction

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Fraction
		want Fraction
		ok   bool
	}{
		{"AlreadyReduced", Fraction{1, 2}, Fraction{1, 2}, true},
		{"Reduces", Fraction{4, 8}, Fraction{1, 2}, true},
		{"NegativeDenominator", Fraction{1, -2}, Fraction{-1, 2}, true},
		{"DoubleNegative", Fraction{-3, -6}, Fraction{1, 2}, true},
		{"Zero", Fraction{0, 5}, Fraction{0, 1}, true},
		{"ZeroDenominator", Fraction{1, 0}, Fraction{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.in.Normalize()
			if ok != c.ok {
				t.Fatalf("Normalize(%v) ok = %v, want %v", c.in, ok, c.ok)
			}
			if got != c.want {
				t.Errorf("Normalize(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestFromFloat(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want Fraction
	}{
		{"Half", 0.5, Fraction{1, 2}},
		{"ThreeQuarters", 0.75, Fraction{3, 4}},
		{"Third", 1.0 / 3.0, Fraction{1, 3}},
		{"Whole", 200, Fraction{200, 1}},
		{"Negative", -1.5, Fraction{-3, 2}},
		{"Zero", 0, Fraction{0, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := FromFloat(c.in)
			if !ok {
				t.Fatalf("FromFloat(%v) not ok", c.in)
			}
			if !got.Eq(c.want) {
				t.Errorf("FromFloat(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}

	t.Run("NaN", func(t *testing.T) {
		if _, ok := FromFloat(nan()); ok {
			t.Error("expected FromFloat(NaN) to fail")
		}
	})
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func TestRoundTrip(t *testing.T) {
	// normalize -> toNumber -> fromNumber -> normalize must return to the
	// original value for denominators within the approximation cap.
	cases := []Fraction{
		{1, 2}, {3, 4}, {2, 3}, {7, 8}, {4, 3}, {1, 9997}, {123, 456}, {-5, 6},
	}
	for _, f := range cases {
		norm, ok := f.Normalize()
		if !ok {
			t.Fatalf("Normalize(%v) failed", f)
		}
		back, ok := FromFloat(norm.Float64())
		if !ok {
			t.Fatalf("FromFloat(%v) failed", norm.Float64())
		}
		if !back.Eq(norm) {
			t.Errorf("round-trip of %v gave %v", norm, back)
		}
	}
}

func TestAddAssociativity(t *testing.T) {
	// Merging 1/3 cup three times must yield exactly 1, not 0.999...
	third := Fraction{1, 3}
	sum := Zero()
	for i := 0; i < 3; i++ {
		var ok bool
		sum, ok = sum.Add(third)
		if !ok {
			t.Fatal("Add failed")
		}
	}
	if sum != (Fraction{1, 1}) {
		t.Errorf("1/3 + 1/3 + 1/3 = %v, want 1/1", sum)
	}
}

func TestArithmetic(t *testing.T) {
	half := Fraction{1, 2}
	third := Fraction{1, 3}

	if got, _ := half.Add(third); got != (Fraction{5, 6}) {
		t.Errorf("1/2 + 1/3 = %v, want 5/6", got)
	}
	if got, _ := half.Sub(third); got != (Fraction{1, 6}) {
		t.Errorf("1/2 - 1/3 = %v, want 1/6", got)
	}
	if got, _ := half.Mul(third); got != (Fraction{1, 6}) {
		t.Errorf("1/2 * 1/3 = %v, want 1/6", got)
	}
	if got, _ := half.Div(third); got != (Fraction{3, 2}) {
		t.Errorf("1/2 / 1/3 = %v, want 3/2", got)
	}
	if _, ok := half.Div(Zero()); ok {
		t.Error("expected division by zero to fail")
	}
	if _, ok := half.Add(Fraction{1, 0}); ok {
		t.Error("expected add with invalid operand to fail")
	}
}

func TestMixedString(t *testing.T) {
	cases := []struct {
		in   Fraction
		want string
	}{
		{Fraction{1, 2}, "1/2"},
		{Fraction{3, 2}, "1 1/2"},
		{Fraction{4, 3}, "1 1/3"},
		{Fraction{200, 1}, "200"},
		{Fraction{0, 1}, "0"},
		{Fraction{-3, 2}, "-1 1/2"},
		{Fraction{-1, 2}, "-1/2"},
	}
	for _, c := range cases {
		if got := c.in.MixedString(); got != c.want {
			t.Errorf("MixedString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	if got := FormatFloat(1.5); got != "1 1/2" {
		t.Errorf("FormatFloat(1.5) = %q, want %q", got, "1 1/2")
	}
	if got := FormatFloat(2); got != "2" {
		t.Errorf("FormatFloat(2) = %q, want %q", got, "2")
	}
}
