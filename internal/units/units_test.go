package units

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cup", "cup"},
		{"cups", "cup"},
		{"Cups", "cup"},
		{"  tbsp ", "tbsp"},
		{"tablespoons", "tbsp"},
		{"grams", "g"},
		{"lbs", "lb"},
		{"fluid ounces", "floz"},
		{"knob", "knob"}, // unknown units pass through
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMergeable(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"cup", "cups", true},
		{"g", "", true},
		{"", "", true},
		{"g", "ml", false},
		{"tbsp", "tablespoon", true},
		{"knob", "knob", true},
		{"knob", "g", false},
	}
	for _, c := range cases {
		if got := Mergeable(c.a, c.b); got != c.want {
			t.Errorf("Mergeable(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIsKnownUnit(t *testing.T) {
	known := []string{"cup", "cups", "pinch", "cloves", "can", "stick", "g"}
	for _, s := range known {
		if !IsKnownUnit(s) {
			t.Errorf("IsKnownUnit(%q) = false, want true", s)
		}
	}
	unknown := []string{"corn", "tortillas", "", "chicken"}
	for _, s := range unknown {
		if IsKnownUnit(s) {
			t.Errorf("IsKnownUnit(%q) = true, want false", s)
		}
	}
}
