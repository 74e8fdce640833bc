// internal/gencode/gencode.go
package gencode

import (
	"fmt"
	"sort"

	"iseq/internal/alphabet"
)

// Codon is a triplet over a nucleotide alphabet.
type Codon [3]byte

func (c Codon) String() string { return string(c[:]) }

// GeneticCode translates codons of a base alphabet into residues of an amino
// alphabet using one of the NCBI translation tables.
type GeneticCode struct {
	id     int
	name   string
	base   *alphabet.Alphabet
	amino  *alphabet.Alphabet
	table  [64]byte
	codons map[byte][]Codon
}

// Canonical maps the table aliases NCBI accepts (0, 7, 8) onto real tables.
func Canonical(id int) int {
	switch id {
	case 0:
		return 1
	case 7:
		return 4
	case 8:
		return 1
	}
	return id
}

// IDs lists the supported table identifiers in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(ncbieaa))
	for id := range ncbieaa {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Name returns the NCBI name of a table, or "" if unknown.
func Name(id int) string { return names[Canonical(id)] }

// New builds table id over base (DNA or RNA) and amino.
func New(base, amino *alphabet.Alphabet, id int) (*GeneticCode, error) {
	if base == nil || !base.IsNucleic() {
		return nil, fmt.Errorf("genetic code: base alphabet must be DNA or RNA, got %v", base)
	}
	cid := Canonical(id)
	aa, ok := ncbieaa[cid]
	if !ok {
		return nil, fmt.Errorf("genetic code: unknown translation table %d", id)
	}
	g := &GeneticCode{
		id:     cid,
		name:   names[cid],
		base:   base,
		amino:  amino,
		codons: make(map[byte][]Codon),
	}
	copy(g.table[:], aa)

	syms := base.Symbols()
	for _, a := range syms {
		for _, b := range syms {
			for _, c := range syms {
				cod := Codon{a, b, c}
				r := g.table[tcagIndex(a)*16+tcagIndex(b)*4+tcagIndex(c)]
				g.codons[r] = append(g.codons[r], cod)
			}
		}
	}
	return g, nil
}

// Standard returns NCBI table 1 over base and the canonical amino alphabet.
func Standard(base *alphabet.Alphabet) *GeneticCode {
	g, err := New(base, alphabet.Amino(), 1)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *GeneticCode) ID() int                   { return g.id }
func (g *GeneticCode) Name() string              { return g.name }
func (g *GeneticCode) Base() *alphabet.Alphabet  { return g.base }
func (g *GeneticCode) Amino() *alphabet.Alphabet { return g.amino }

// AminoAcid decodes a codon. Stops come back as '*'. Degenerate codons decode
// to the residue shared by every expansion, or 'X' when expansions disagree.
func (g *GeneticCode) AminoAcid(c Codon) byte {
	if i, ok := exactIndex(c); ok {
		return g.table[i]
	}
	var out byte
	for _, a := range expand(c[0]) {
		for _, b := range expand(c[1]) {
			for _, d := range expand(c[2]) {
				r := g.table[a*16+b*4+d]
				if out == 0 {
					out = r
				} else if out != r {
					return 'X'
				}
			}
		}
	}
	if out == 0 {
		return 'X'
	}
	return out
}

// Codons lists the codons decoding to aa, ordered by the base alphabet.
func (g *GeneticCode) Codons(aa byte) []Codon {
	return append([]Codon(nil), g.codons[upper(aa)]...)
}

// Translate decodes seq codon by codon; a trailing partial codon is dropped.
func (g *GeneticCode) Translate(seq []byte) []byte {
	out := make([]byte, 0, len(seq)/3)
	for i := 0; i+3 <= len(seq); i += 3 {
		out = append(out, g.AminoAcid(Codon{seq[i], seq[i+1], seq[i+2]}))
	}
	return out
}

func exactIndex(c Codon) (int, bool) {
	a, b, d := tcagIndex(c[0]), tcagIndex(c[1]), tcagIndex(c[2])
	if a < 0 || b < 0 || d < 0 {
		return 0, false
	}
	return a*16 + b*4 + d, true
}

func tcagIndex(c byte) int {
	switch upper(c) {
	case 'T', 'U':
		return 0
	case 'C':
		return 1
	case 'A':
		return 2
	case 'G':
		return 3
	}
	return -1
}

// bit0=A bit1=C bit2=G bit3=T
var iupacMask [256]byte

func init() {
	set := func(c byte, bits byte) { iupacMask[c] = bits; iupacMask[c+'a'-'A'] = bits }
	set('A', 1)
	set('C', 2)
	set('G', 4)
	set('T', 8)
	set('U', 8)
	set('R', 1|4)
	set('Y', 2|8)
	set('S', 2|4)
	set('W', 1|8)
	set('K', 4|8)
	set('M', 1|2)
	set('B', 2|4|8)
	set('D', 1|4|8)
	set('H', 1|2|8)
	set('V', 1|2|4)
	set('N', 1|2|4|8)
}

// expand returns the TCAG indices a (possibly ambiguous) base stands for.
func expand(c byte) []int {
	m := iupacMask[c]
	var out []int
	if m&8 != 0 {
		out = append(out, 0)
	}
	if m&2 != 0 {
		out = append(out, 1)
	}
	if m&1 != 0 {
		out = append(out, 2)
	}
	if m&4 != 0 {
		out = append(out, 3)
	}
	return out
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
