package profile

import (
	"fmt"

	"iseq/internal/alphabet"
	"iseq/internal/gencode"
	"iseq/internal/hmmer"
	"iseq/internal/lprob"
	"iseq/internal/model"
	"iseq/internal/state"
)

// Frame searches nucleotide targets with an amino acid model, tolerating
// frameshifts through Frame states.
type Frame struct {
	*core
	gc *gencode.GeneticCode
}

// Codon searches nucleotide targets with exact codon states.
type Codon struct {
	*core
	gc *gencode.GeneticCode
}

func (p *Frame) GeneticCode() *gencode.GeneticCode { return p.gc }
func (p *Codon) GeneticCode() *gencode.GeneticCode { return p.gc }

// NewFrame builds a frameshift-aware profile over opts.Base.
func NewFrame(m *hmmer.Model, opts Options) (*Frame, error) {
	mk := func(name string, role state.Role, cp *state.CodonProb) (state.State, error) {
		return state.NewFrame(name, role, cp, opts.Epsilon)
	}
	p, gc, err := buildCodonProfile(KindFrame, m, opts, mk)
	if err != nil {
		return nil, err
	}
	return &Frame{core: p, gc: gc}, nil
}

// NewCodon builds a profile whose states emit exactly one codon.
func NewCodon(m *hmmer.Model, opts Options) (*Codon, error) {
	mk := func(name string, role state.Role, cp *state.CodonProb) (state.State, error) {
		return state.NewCodon(name, role, cp), nil
	}
	p, gc, err := buildCodonProfile(KindCodon, m, opts, mk)
	if err != nil {
		return nil, err
	}
	return &Codon{core: p, gc: gc}, nil
}

type codonStateFunc func(name string, role state.Role, cp *state.CodonProb) (state.State, error)

// buildCodonProfile spreads each amino table over its synonymous codons and
// hands the codon distribution to mk.
func buildCodonProfile(kind Kind, m *hmmer.Model, opts Options, mk codonStateFunc) (*core, *gencode.GeneticCode, error) {
	if m.Alphabet != alphabet.Amino() {
		return nil, nil, fmt.Errorf("profile %s: %s profiles need an amino model, got %s", m.Name(), kind, m.Alphabet)
	}
	base := opts.Base
	if base == nil {
		base = alphabet.DNA()
	}
	gc, err := gencode.New(base, m.Alphabet, opts.GeneticCode)
	if err != nil {
		return nil, nil, err
	}
	p := newCore(kind, m, base, opts)

	fromAmino := func(name string, role state.Role, lps []float64) (state.State, error) {
		cp, err := state.CodonProbFromAmino(lprob.Normalize(lps), gc)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", name, err)
		}
		return mk(name, role, cp)
	}

	nodes := make([]model.Node, 0, m.M())
	for k := 1; k <= m.M(); k++ {
		mat, err := fromAmino(nodeName("M", k), state.CoreMatch, m.Match(k))
		if err != nil {
			return nil, nil, err
		}
		ins, err := fromAmino(nodeName("I", k), state.CoreInsert, m.Insert(k))
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, model.Node{M: mat, I: ins, D: state.NewMute(nodeName("D", k), state.CoreDelete, base)})
	}
	null := m.Insert(0)
	flank := func(name string, role state.Role) (state.State, error) {
		return fromAmino(name, role, null)
	}
	if err := p.assemble(flank, nodes, normalizedTrans(m), model.EntryUniform); err != nil {
		return nil, nil, err
	}
	return p, gc, nil
}
