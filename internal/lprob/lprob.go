// internal/lprob/lprob.go
package lprob

import "math"

// Values below this are treated as probability zero.
const zeroTolerance = -1e300

// Zero returns the log-space representation of probability 0.
func Zero() float64 { return math.Inf(-1) }

// One returns log(1).
func One() float64 { return 0 }

// IsZero reports whether x represents probability 0.
func IsZero(x float64) bool { return math.IsInf(x, -1) || x < zeroTolerance }

// Add returns log(exp(a) + exp(b)) using the max-shift trick.
func Add(a, b float64) float64 {
	if IsZero(a) {
		return b
	}
	if IsZero(b) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// Sum folds Add over xs. The empty sum is Zero.
func Sum(xs ...float64) float64 {
	s := Zero()
	for _, x := range xs {
		s = Add(s, x)
	}
	return s
}

// Normalize returns a copy of xs shifted so that Sum(result...) == 0.
// An all-zero input comes back unchanged.
func Normalize(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	z := Sum(xs...)
	if IsZero(z) {
		return out
	}
	for i := range out {
		out[i] -= z
	}
	return out
}

// Log1mExp returns log(1 - exp(x)) for x <= 0.
func Log1mExp(x float64) float64 {
	if x >= 0 {
		return Zero()
	}
	if IsZero(x) {
		return 0
	}
	if x > -math.Ln2 {
		return math.Log(-math.Expm1(x))
	}
	return math.Log1p(-math.Exp(x))
}
