package fraction

import (
	"fmt"
	"math"
)

// Fraction is an exact rational number. Quantities on a shopping list are
// merged and scaled many times over the life of a plan, and repeated float
// math drifts (three additions of 1/3 cup must equal exactly 1 cup), so all
// quantity arithmetic runs on Fractions and only converts to float64 at the
// display boundary.
type Fraction struct {
	N int64 `json:"n"`
	D int64 `json:"d"`
}

const (
	// maxDenominator bounds FromFloat's continued-fraction search.
	maxDenominator = 10000
	// fromFloatTolerance is the acceptable error when approximating a float.
	fromFloatTolerance = 1e-9
	// eqEpsilon is the cross-multiplication tolerance used by Eq.
	eqEpsilon = 1e-12
)

// Zero returns the canonical zero fraction.
func Zero() Fraction {
	return Fraction{N: 0, D: 1}
}

// New builds a normalized fraction from a numerator and denominator.
// ok is false when the denominator is zero.
func New(n, d int64) (Fraction, bool) {
	return Fraction{N: n, D: d}.Normalize()
}

// Normalize reduces the fraction to lowest terms with a positive
// denominator. A normalized fraction has d > 0 and gcd(|n|, d) = 1,
// or is exactly 0/1. ok is false for a zero denominator.
func (f Fraction) Normalize() (Fraction, bool) {
	if f.D == 0 {
		return Fraction{}, false
	}
	n, d := f.N, f.D
	if d < 0 {
		n, d = -n, -d
	}
	if n == 0 {
		return Fraction{N: 0, D: 1}, true
	}
	g := gcd(abs(n), d)
	return Fraction{N: n / g, D: d / g}, true
}

// FromFloat approximates a finite float as a fraction using continued
// fractions, with denominators capped at 10000. ok is false for NaN or
// infinities.
func FromFloat(v float64) (Fraction, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Fraction{}, false
	}
	neg := v < 0
	if neg {
		v = -v
	}

	// Continued-fraction expansion: track convergents h/k until the
	// approximation is within tolerance or the denominator cap is hit.
	h0, k0 := int64(0), int64(1)
	h1, k1 := int64(1), int64(0)
	x := v
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(x))
		h2 := a*h1 + h0
		k2 := a*k1 + k0
		if k2 > maxDenominator {
			break
		}
		h0, k0 = h1, k1
		h1, k1 = h2, k2
		if math.Abs(v-float64(h1)/float64(k1)) < fromFloatTolerance {
			break
		}
		frac := x - math.Floor(x)
		if frac == 0 {
			break
		}
		x = 1 / frac
	}
	if k1 == 0 {
		return Fraction{}, false
	}
	if neg {
		h1 = -h1
	}
	return Fraction{N: h1, D: k1}.Normalize()
}

// Float64 returns the fraction's floating point value.
func (f Fraction) Float64() float64 {
	if f.D == 0 {
		return 0
	}
	return float64(f.N) / float64(f.D)
}

// Add returns f + g. ok is false when either operand has a zero denominator.
func (f Fraction) Add(g Fraction) (Fraction, bool) {
	if f.D == 0 || g.D == 0 {
		return Fraction{}, false
	}
	return Fraction{N: f.N*g.D + g.N*f.D, D: f.D * g.D}.Normalize()
}

// Sub returns f - g. ok is false when either operand has a zero denominator.
func (f Fraction) Sub(g Fraction) (Fraction, bool) {
	if f.D == 0 || g.D == 0 {
		return Fraction{}, false
	}
	return Fraction{N: f.N*g.D - g.N*f.D, D: f.D * g.D}.Normalize()
}

// Mul returns f * g. ok is false when either operand has a zero denominator.
func (f Fraction) Mul(g Fraction) (Fraction, bool) {
	if f.D == 0 || g.D == 0 {
		return Fraction{}, false
	}
	return Fraction{N: f.N * g.N, D: f.D * g.D}.Normalize()
}

// Div returns f / g. ok is false for invalid operands or when g is zero.
func (f Fraction) Div(g Fraction) (Fraction, bool) {
	if f.D == 0 || g.D == 0 || g.N == 0 {
		return Fraction{}, false
	}
	return Fraction{N: f.N * g.D, D: f.D * g.N}.Normalize()
}

// Eq reports whether two fractions represent the same value, compared by
// cross-multiplication within a small epsilon to tolerate float-derived
// operands.
func (f Fraction) Eq(g Fraction) bool {
	if f.D == 0 || g.D == 0 {
		return false
	}
	return math.Abs(float64(f.N)*float64(g.D)-float64(g.N)*float64(f.D)) < eqEpsilon
}

// IsZero reports whether the fraction is exactly zero.
func (f Fraction) IsZero() bool {
	return f.N == 0 && f.D != 0
}

// MixedString formats the fraction as a mixed number ("1 1/2"), a bare
// fraction ("1/2") when there is no whole part, or a plain integer.
func (f Fraction) MixedString() string {
	n, ok := f.Normalize()
	if !ok {
		return ""
	}
	if n.D == 1 {
		return fmt.Sprintf("%d", n.N)
	}
	whole := n.N / n.D
	rem := n.N % n.D
	if rem < 0 {
		rem = -rem
	}
	if whole == 0 {
		if n.N < 0 {
			return fmt.Sprintf("-%d/%d", rem, n.D)
		}
		return fmt.Sprintf("%d/%d", rem, n.D)
	}
	return fmt.Sprintf("%d %d/%d", whole, rem, n.D)
}

// FormatFloat renders a floating point quantity as a mixed-number display
// string, falling back to a trimmed decimal when no close fraction exists.
func FormatFloat(v float64) string {
	if f, ok := FromFloat(v); ok {
		return f.MixedString()
	}
	return fmt.Sprintf("%g", v)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
