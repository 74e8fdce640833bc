package state

import (
	"fmt"

	"iseq/internal/alphabet"
	"iseq/internal/lprob"
)

// Normal emits exactly one symbol from a per-symbol table.
type Normal struct {
	base
	lprobs []float64
	anyLP  float64
}

// NewNormal copies lprobs, which must have one entry per alphabet symbol.
func NewNormal(name string, role Role, a *alphabet.Alphabet, lprobs []float64) (*Normal, error) {
	if len(lprobs) != a.Len() {
		return nil, fmt.Errorf("state %s: %d log-probabilities for %d-symbol %s alphabet", name, len(lprobs), a.Len(), a)
	}
	s := &Normal{base: base{name: name, role: role, alpha: a}, lprobs: append([]float64(nil), lprobs...)}
	s.anyLP = lprob.Sum(s.lprobs...)
	return s, nil
}

// NewUnitNormal puts all mass on sym.
func NewUnitNormal(name string, role Role, a *alphabet.Alphabet, sym byte) (*Normal, error) {
	lps := make([]float64, a.Len())
	for i := range lps {
		lps[i] = lprob.Zero()
	}
	i, ok := a.Index(sym)
	if ok && i < a.Len() {
		lps[i] = 0
	}
	return NewNormal(name, role, a, lps)
}

func (s *Normal) Kind() Kind  { return KindNormal }
func (s *Normal) MinLen() int { return 1 }
func (s *Normal) MaxLen() int { return 1 }

// Table returns a copy of the per-symbol log-probabilities.
func (s *Normal) Table() []float64 { return append([]float64(nil), s.lprobs...) }

func (s *Normal) LProb(seq []byte) float64 {
	if len(seq) != 1 {
		return lprob.Zero()
	}
	i, ok := s.alpha.Index(seq[0])
	if !ok {
		return lprob.Zero()
	}
	if i == s.alpha.Len() {
		return s.anyLP
	}
	return s.lprobs[i]
}

// Mute consumes nothing.
type Mute struct{ base }

func NewMute(name string, role Role, a *alphabet.Alphabet) *Mute {
	return &Mute{base{name: name, role: role, alpha: a}}
}

func (s *Mute) Kind() Kind  { return KindMute }
func (s *Mute) MinLen() int { return 0 }
func (s *Mute) MaxLen() int { return 0 }

func (s *Mute) LProb(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}
	return lprob.Zero()
}
