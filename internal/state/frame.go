package state

import (
	"fmt"
	"math"

	"iseq/internal/gencode"
	"iseq/internal/lprob"
)

// Frame emits a codon that may have lost or gained bases. With indel
// probability epsilon, up to two bases are deleted and up to two random bases
// inserted, so one emission consumes between one and five symbols.
type Frame struct {
	base
	prob    *CodonProb
	table   codonTable
	baseLP  [5]float64
	epsilon float64
	minLen  int
	maxLen  int
	// patterns[L] enumerates the deletion/insertion layouts producing length L.
	patterns [6][]framePattern
}

type framePattern struct {
	weight float64 // log P(D) P(I) / (C(3,D) C(L,I))
	del    uint8   // deleted codon positions
	ins    uint8   // inserted output positions
}

// NewFrame builds a frame state over p. epsilon must lie in [0, 1).
func NewFrame(name string, role Role, p *CodonProb, epsilon float64) (*Frame, error) {
	if math.IsNaN(epsilon) || epsilon < 0 || epsilon >= 1 {
		return nil, fmt.Errorf("state %s: epsilon %v outside [0, 1)", name, epsilon)
	}
	s := &Frame{
		base:    base{name: name, role: role, alpha: p.base},
		prob:    p,
		table:   newCodonTable(p),
		epsilon: epsilon,
		minLen:  3,
		maxLen:  3,
	}
	s.baseLP = baseTable(p)
	for l := 1; l <= 5; l++ {
		for d := 0; d <= 2; d++ {
			i := l - 3 + d
			if i < 0 || i > 2 {
				continue
			}
			w := binom(2, d) * math.Pow(epsilon, float64(d)) * math.Pow(1-epsilon, float64(2-d)) *
				binom(2, i) * math.Pow(epsilon, float64(i)) * math.Pow(1-epsilon, float64(2-i)) /
				(binom(3, d) * binom(l, i))
			if w == 0 {
				continue
			}
			lw := math.Log(w)
			for _, del := range subsets(3, d) {
				for _, ins := range subsets(l, i) {
					s.patterns[l] = append(s.patterns[l], framePattern{weight: lw, del: del, ins: ins})
				}
			}
		}
		if len(s.patterns[l]) > 0 {
			s.minLen = min(s.minLen, l)
			s.maxLen = max(s.maxLen, l)
		}
	}
	return s, nil
}

func (s *Frame) Kind() Kind       { return KindFrame }
func (s *Frame) MinLen() int      { return s.minLen }
func (s *Frame) MaxLen() int      { return s.maxLen }
func (s *Frame) Epsilon() float64 { return s.epsilon }
func (s *Frame) Prob() *CodonProb { return s.prob }

// LProb sums over every codon and every indel layout that yields seq.
func (s *Frame) LProb(seq []byte) float64 {
	if len(seq) < s.minLen || len(seq) > s.maxLen {
		return lprob.Zero()
	}
	idx, ok := indices(s.alpha, seq)
	if !ok {
		return lprob.Zero()
	}
	total := lprob.Zero()
	for _, pat := range s.patterns[len(seq)] {
		cod := [3]int{4, 4, 4}
		lp := pat.weight
		k := 0
		for j, x := range idx {
			if pat.ins&(1<<j) != 0 {
				lp += s.baseLP[x]
				continue
			}
			for pat.del&(1<<k) != 0 {
				k++
			}
			cod[k] = x
			k++
		}
		total = lprob.Add(total, lp+s.table.at(cod[0], cod[1], cod[2]))
	}
	return total
}

// Decode returns the codon maximizing p(codon) p(seq | codon) and that
// log-probability. Ties keep the first codon in base order.
func (s *Frame) Decode(seq []byte) (gencode.Codon, float64) {
	best, bestLP := s.prob.Codon(0), lprob.Zero()
	if len(seq) < s.minLen || len(seq) > s.maxLen {
		return best, bestLP
	}
	idx, ok := indices(s.alpha, seq)
	if !ok {
		return best, bestLP
	}
	for c, clp := range s.prob.lprobs {
		if lprob.IsZero(clp) {
			continue
		}
		cod := [3]int{c / 16, c / 4 % 4, c % 4}
		cond := lprob.Zero()
		for _, pat := range s.patterns[len(seq)] {
			lp := pat.weight
			k := 0
			for j, x := range idx {
				if pat.ins&(1<<j) != 0 {
					lp += s.baseLP[x]
					continue
				}
				for pat.del&(1<<k) != 0 {
					k++
				}
				if x != 4 && x != cod[k] {
					lp = lprob.Zero()
					break
				}
				k++
			}
			cond = lprob.Add(cond, lp)
		}
		if v := clp + cond; v > bestLP {
			best, bestLP = s.prob.Codon(c), v
		}
	}
	return best, bestLP
}

// baseTable is the probability of each base at a uniformly chosen codon
// position. The wildcard entry is log(1).
func baseTable(p *CodonProb) [5]float64 {
	var t [5]float64
	for i := 0; i < 4; i++ {
		t[i] = lprob.Zero()
	}
	log3 := math.Log(3)
	for c, lp := range p.lprobs {
		for _, b := range [3]int{c / 16, c / 4 % 4, c % 4} {
			t[b] = lprob.Add(t[b], lp-log3)
		}
	}
	t[4] = 0
	return t
}

func binom(n, k int) float64 {
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}

// subsets lists the k-element subsets of {0..n-1} as bitmasks, ascending.
func subsets(n, k int) []uint8 {
	var out []uint8
	for m := 0; m < 1<<n; m++ {
		if popcount(uint8(m)) == k {
			out = append(out, uint8(m))
		}
	}
	return out
}

func popcount(m uint8) int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}
	return n
}
