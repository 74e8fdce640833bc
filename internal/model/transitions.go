// Package model assembles Plan7 profile HMMs into decodable state graphs.
package model

import (
	"errors"
	"math"

	"iseq/internal/lprob"
)

// ErrZeroLength is returned when special transitions are requested for an
// empty target.
var ErrZeroLength = errors.New("target length cannot be zero")

// Transitions are the log-probabilities leaving one profile node.
type Transitions struct {
	MM, MI, MD float64
	IM, II     float64
	DM, DD     float64
}

// ZeroTransitions has every transition at probability zero.
func ZeroTransitions() Transitions {
	z := lprob.Zero()
	return Transitions{z, z, z, z, z, z, z}
}

// Normalize rescales the M, I and D distributions to unit mass each.
func (t *Transitions) Normalize() {
	m := lprob.Normalize([]float64{t.MM, t.MI, t.MD})
	t.MM, t.MI, t.MD = m[0], m[1], m[2]
	i := lprob.Normalize([]float64{t.IM, t.II})
	t.IM, t.II = i[0], i[1]
	d := lprob.Normalize([]float64{t.DM, t.DD})
	t.DM, t.DD = d[0], d[1]
}

// SpecialTransitions parameterize the flanking states for one target length.
type SpecialTransitions struct {
	NN, NB float64
	EC, CC float64
	CT     float64
	EJ, JJ float64
	JB     float64
	RR     float64
	BM, ME float64
}

// TargetLength derives the special transitions for a target of length L.
// With multipleHits the E state returns to J half of the time.
func TargetLength(L int, multipleHits bool) (SpecialTransitions, error) {
	if L <= 0 {
		return SpecialTransitions{}, ErrZeroLength
	}
	q, logQ := 0.0, lprob.Zero()
	if multipleHits {
		q, logQ = 0.5, math.Log(0.5)
	}
	l := float64(L)
	denom := math.Log(l + 2 + q/(1-q))
	lp := math.Log(l) - denom
	l1p := math.Log(2+q/(1-q)) - denom

	return SpecialTransitions{
		NN: lp, CC: lp, JJ: lp,
		NB: l1p, CT: l1p, JB: l1p,
		RR: math.Log(l) - math.Log(l+1),
		EJ: logQ,
		EC: math.Log(1 - q),
	}, nil
}

// FragmentLength returns t with the uniform local fragment-length prior for a
// model of length m installed in BM and ME.
func FragmentLength(t SpecialTransitions, m int) SpecialTransitions {
	if m == 0 {
		return t
	}
	t.BM = math.Log(2) - math.Log(float64(m)) - math.Log(float64(m+1))
	t.ME = 0
	return t
}
