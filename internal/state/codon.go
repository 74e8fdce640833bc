package state

import (
	"fmt"
	"math"

	"iseq/internal/alphabet"
	"iseq/internal/gencode"
	"iseq/internal/lprob"
)

// CodonProb is a distribution over the 64 codons of a nucleotide alphabet.
type CodonProb struct {
	base   *alphabet.Alphabet
	lprobs [64]float64
}

// NewCodonProb returns a distribution with zero mass everywhere.
func NewCodonProb(base *alphabet.Alphabet) (*CodonProb, error) {
	if base.Len() != 4 {
		return nil, fmt.Errorf("codon distribution needs a 4-symbol base alphabet, got %s", base)
	}
	p := &CodonProb{base: base}
	for i := range p.lprobs {
		p.lprobs[i] = lprob.Zero()
	}
	return p, nil
}

// CodonProbFromAmino spreads each residue's mass uniformly over its codons and
// renormalizes. aminoLProbs is indexed by gc.Amino(); stop codons get nothing.
func CodonProbFromAmino(aminoLProbs []float64, gc *gencode.GeneticCode) (*CodonProb, error) {
	amino := gc.Amino()
	if len(aminoLProbs) != amino.Len() {
		return nil, fmt.Errorf("codon distribution: %d residue log-probabilities for %d-symbol alphabet", len(aminoLProbs), amino.Len())
	}
	p, err := NewCodonProb(gc.Base())
	if err != nil {
		return nil, err
	}
	for i, aa := range amino.Symbols() {
		cods := gc.Codons(aa)
		if len(cods) == 0 {
			continue
		}
		lp := aminoLProbs[i] - math.Log(float64(len(cods)))
		for _, c := range cods {
			if err := p.Set(c, lp); err != nil {
				return nil, err
			}
		}
	}
	p.Normalize()
	return p, nil
}

func (p *CodonProb) Base() *alphabet.Alphabet { return p.base }

func (p *CodonProb) index(c gencode.Codon) (int, bool) {
	a, ok1 := p.base.Index(c[0])
	b, ok2 := p.base.Index(c[1])
	d, ok3 := p.base.Index(c[2])
	if !ok1 || !ok2 || !ok3 || a == 4 || b == 4 || d == 4 {
		return 0, false
	}
	return a*16 + b*4 + d, true
}

// Set assigns the log-probability of a non-degenerate codon.
func (p *CodonProb) Set(c gencode.Codon, lp float64) error {
	i, ok := p.index(c)
	if !ok {
		return fmt.Errorf("codon %s is not over the %s alphabet", c, p.base)
	}
	p.lprobs[i] = lp
	return nil
}

// LProb returns the log-probability of a non-degenerate codon.
func (p *CodonProb) LProb(c gencode.Codon) float64 {
	i, ok := p.index(c)
	if !ok {
		return lprob.Zero()
	}
	return p.lprobs[i]
}

// Normalize rescales the distribution to unit mass.
func (p *CodonProb) Normalize() {
	n := lprob.Normalize(p.lprobs[:])
	copy(p.lprobs[:], n)
}

// Codon returns the i-th codon in base alphabet order.
func (p *CodonProb) Codon(i int) gencode.Codon {
	return gencode.Codon{p.base.Symbol(i / 16), p.base.Symbol(i / 4 % 4), p.base.Symbol(i % 4)}
}

// codonTable marginalizes a CodonProb over wildcard positions. Index 4 in any
// position stands for "any base".
type codonTable [125]float64

func newCodonTable(p *CodonProb) codonTable {
	var t codonTable
	for i := range t {
		t[i] = lprob.Zero()
	}
	for i, lp := range p.lprobs {
		a, b, c := i/16, i/4%4, i%4
		for _, x := range [2]int{a, 4} {
			for _, y := range [2]int{b, 4} {
				for _, z := range [2]int{c, 4} {
					k := x*25 + y*5 + z
					t[k] = lprob.Add(t[k], lp)
				}
			}
		}
	}
	return t
}

func (t *codonTable) at(a, b, c int) float64 { return t[a*25+b*5+c] }

// Codon emits exactly three bases drawn from a codon distribution.
type Codon struct {
	base
	prob  *CodonProb
	table codonTable
}

func NewCodon(name string, role Role, p *CodonProb) *Codon {
	return &Codon{base: base{name: name, role: role, alpha: p.base}, prob: p, table: newCodonTable(p)}
}

// NewUnitCodon puts all mass on c.
func NewUnitCodon(name string, role Role, base *alphabet.Alphabet, c gencode.Codon) (*Codon, error) {
	p, err := NewCodonProb(base)
	if err != nil {
		return nil, err
	}
	if err := p.Set(c, 0); err != nil {
		return nil, err
	}
	return NewCodon(name, role, p), nil
}

func (s *Codon) Kind() Kind       { return KindCodon }
func (s *Codon) MinLen() int      { return 3 }
func (s *Codon) MaxLen() int      { return 3 }
func (s *Codon) Prob() *CodonProb { return s.prob }

func (s *Codon) LProb(seq []byte) float64 {
	if len(seq) != 3 {
		return lprob.Zero()
	}
	idx, ok := indices(s.alpha, seq)
	if !ok {
		return lprob.Zero()
	}
	return s.table.at(idx[0], idx[1], idx[2])
}

// Decode returns the most probable codon consistent with a three-base
// window, wildcards matching anything. Ties keep the first codon in base order.
func (s *Codon) Decode(seq []byte) (gencode.Codon, float64) {
	best, bestLP := s.prob.Codon(0), lprob.Zero()
	idx, ok := indices(s.alpha, seq)
	if len(seq) != 3 || !ok {
		return best, bestLP
	}
	for i, lp := range s.prob.lprobs {
		if !consistent(i, idx) {
			continue
		}
		if lp > bestLP {
			best, bestLP = s.prob.Codon(i), lp
		}
	}
	return best, bestLP
}

func consistent(codon int, idx []int) bool {
	cod := [3]int{codon / 16, codon / 4 % 4, codon % 4}
	for k := 0; k < 3; k++ {
		if idx[k] != 4 && idx[k] != cod[k] {
			return false
		}
	}
	return true
}

// indices maps seq onto alphabet positions, 4 meaning wildcard.
func indices(a *alphabet.Alphabet, seq []byte) ([]int, bool) {
	idx := make([]int, len(seq))
	for i, c := range seq {
		j, ok := a.Index(c)
		if !ok {
			return nil, false
		}
		idx[i] = j
	}
	return idx, true
}
