// internal/alphabet/alphabet.go
package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlphabet is returned when a symbol set matches none of DNA, RNA or amino.
var ErrUnknownAlphabet = errors.New("could not infer alphabet")

// Alphabet is an immutable ordered symbol set plus one wildcard symbol.
type Alphabet struct {
	name    string
	symbols []byte
	any     byte
	index   [256]int16 // -1 = not a member; len(symbols) = wildcard
}

// New builds an alphabet over symbols with wildcard any. Symbols are upper-cased.
func New(name string, symbols string, any byte) (*Alphabet, error) {
	a := &Alphabet{name: name, any: upper(any)}
	for i := range a.index {
		a.index[i] = -1
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("alphabet %q: no symbols", name)
	}
	for i := 0; i < len(symbols); i++ {
		c := upper(symbols[i])
		if c == a.any {
			return nil, fmt.Errorf("alphabet %q: wildcard %q is also a symbol", name, c)
		}
		if a.index[c] >= 0 {
			return nil, fmt.Errorf("alphabet %q: duplicate symbol %q", name, c)
		}
		a.index[c] = int16(i)
		a.index[lower(c)] = int16(i)
		a.symbols = append(a.symbols, c)
	}
	a.index[a.any] = int16(len(a.symbols))
	a.index[lower(a.any)] = int16(len(a.symbols))
	return a, nil
}

func mustNew(name, symbols string, any byte) *Alphabet {
	a, err := New(name, symbols, any)
	if err != nil {
		panic(err)
	}
	return a
}

var (
	dna   = mustNew("dna", "ACGT", 'N')
	rna   = mustNew("rna", "ACGU", 'N')
	amino = mustNew("amino", "ACDEFGHIKLMNPQRSTVWY", 'X')
)

// DNA returns the canonical DNA alphabet (wildcard N).
func DNA() *Alphabet { return dna }

// RNA returns the canonical RNA alphabet (wildcard N).
func RNA() *Alphabet { return rna }

// Amino returns the 20 canonical residues (wildcard X).
func Amino() *Alphabet { return amino }

// ByName maps a HMMER ALPH value to an alphabet.
func ByName(name string) (*Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dna":
		return dna, nil
	case "rna":
		return rna, nil
	case "amino":
		return amino, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlphabet, name)
}

func (a *Alphabet) Name() string    { return a.name }
func (a *Alphabet) Len() int        { return len(a.symbols) }
func (a *Alphabet) Any() byte       { return a.any }
func (a *Alphabet) Symbols() []byte { return append([]byte(nil), a.symbols...) }
func (a *Alphabet) Symbol(i int) byte {
	if i == len(a.symbols) {
		return a.any
	}
	return a.symbols[i]
}

// Index maps a symbol to its position. The wildcard maps to Len().
func (a *Alphabet) Index(b byte) (int, bool) {
	i := a.index[b]
	if i < 0 {
		return 0, false
	}
	return int(i), true
}

// Contains reports whether b is a symbol or the wildcard.
func (a *Alphabet) Contains(b byte) bool { return a.index[b] >= 0 }

// IsAny reports whether b is the wildcard.
func (a *Alphabet) IsAny(b byte) bool { return upper(b) == a.any }

// Valid reports whether every byte of seq belongs to the alphabet.
func (a *Alphabet) Valid(seq []byte) bool {
	for _, c := range seq {
		if a.index[c] < 0 {
			return false
		}
	}
	return true
}

// IsNucleic reports whether a is DNA or RNA shaped (four symbols).
func (a *Alphabet) IsNucleic() bool { return a.name == "dna" || a.name == "rna" }

func (a *Alphabet) String() string { return a.name }

// Infer classifies seq as DNA, RNA or amino. Each candidate's wildcard is ignored.
func Infer(seq []byte) (*Alphabet, error) {
	for _, cand := range []*Alphabet{dna, rna, amino} {
		if onlySymbols(cand, seq) {
			return cand, nil
		}
	}
	return nil, ErrUnknownAlphabet
}

// InferAll classifies a set of sequences jointly.
func InferAll(seqs [][]byte) (*Alphabet, error) {
	for _, cand := range []*Alphabet{dna, rna, amino} {
		ok := true
		for _, s := range seqs {
			if !onlySymbols(cand, s) {
				ok = false
				break
			}
		}
		if ok {
			return cand, nil
		}
	}
	return nil, ErrUnknownAlphabet
}

func onlySymbols(a *Alphabet, seq []byte) bool {
	for _, c := range seq {
		if a.IsAny(c) {
			continue
		}
		if i := a.index[c]; i < 0 || int(i) == len(a.symbols) {
			return false
		}
	}
	return true
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
