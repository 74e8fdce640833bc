package profile

import (
	"fmt"
	"math"

	"iseq/internal/alphabet"
	"iseq/internal/hmmer"
	"iseq/internal/lprob"
	"iseq/internal/model"
	"iseq/internal/state"
)

// Standard emits symbols of the model alphabet directly.
type Standard struct{ *core }

// NewStandard builds a probability profile: emissions and transitions are
// renormalized and the null distribution is the node 0 insert table.
func NewStandard(m *hmmer.Model, opts Options) (*Standard, error) {
	a := m.Alphabet
	p := newCore(KindStandard, m, a, opts)
	null := lprob.Normalize(m.Insert(0))

	nodes := make([]model.Node, 0, m.M())
	for k := 1; k <= m.M(); k++ {
		mat, err := state.NewNormal(nodeName("M", k), state.CoreMatch, a, lprob.Normalize(m.Match(k)))
		if err != nil {
			return nil, err
		}
		ins, err := state.NewNormal(nodeName("I", k), state.CoreInsert, a, lprob.Normalize(m.Insert(k)))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, model.Node{M: mat, I: ins, D: state.NewMute(nodeName("D", k), state.CoreDelete, a)})
	}
	flank := func(name string, role state.Role) (state.State, error) {
		return state.NewNormal(name, role, a, null)
	}
	if err := p.assemble(flank, nodes, normalizedTrans(m), model.EntryUniform); err != nil {
		return nil, err
	}
	return &Standard{p}, nil
}

// NewHMMER3 builds a log-odds profile scored like HMMER3: match emissions are
// divided by the background, inserts and flanks score zero and entry follows
// opts.Entry. In compat mode the reported alternative score drops by 3 nats.
func NewHMMER3(m *hmmer.Model, opts Options) (*Standard, error) {
	if opts.Entry == model.EntryFull {
		return nil, fmt.Errorf("profile %s: hmmer3 profiles enter uniformly or by occupancy", m.Name())
	}
	a := m.Alphabet
	p := newCore(KindHMMER3, m, a, opts)
	bg := Background(a)
	zeros := make([]float64, a.Len())

	nodes := make([]model.Node, 0, m.M())
	for k := 1; k <= m.M(); k++ {
		match := m.Match(k)
		for i := range match {
			match[i] -= bg[i]
		}
		mat, err := state.NewNormal(nodeName("M", k), state.CoreMatch, a, match)
		if err != nil {
			return nil, err
		}
		ins, err := state.NewNormal(nodeName("I", k), state.CoreInsert, a, zeros)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, model.Node{M: mat, I: ins, D: state.NewMute(nodeName("D", k), state.CoreDelete, a)})
	}
	trans := make([]model.Transitions, m.M()+1)
	for k := range trans {
		trans[k] = m.Trans(k)
	}
	flank := func(name string, role state.Role) (state.State, error) {
		return state.NewNormal(name, role, a, zeros)
	}
	if err := p.assemble(flank, nodes, trans, opts.Entry); err != nil {
		return nil, err
	}
	if opts.HMMER3Compat {
		p.altOffset = -3
	}
	return &Standard{p}, nil
}

// Background is the null residue distribution HMMER3 uses: Swiss-Prot 50.8
// frequencies for amino acids, uniform for nucleotides.
func Background(a *alphabet.Alphabet) []float64 {
	out := make([]float64, a.Len())
	if a != alphabet.Amino() {
		for i := range out {
			out[i] = -math.Log(float64(a.Len()))
		}
		return out
	}
	for i, c := range a.Symbols() {
		out[i] = math.Log(swissProt[c])
	}
	return out
}

var swissProt = map[byte]float64{
	'A': 0.0787945, 'C': 0.0151600, 'D': 0.0535222, 'E': 0.0668298,
	'F': 0.0397062, 'G': 0.0695071, 'H': 0.0229198, 'I': 0.0590092,
	'K': 0.0594422, 'L': 0.0963728, 'M': 0.0237718, 'N': 0.0414386,
	'P': 0.0482904, 'Q': 0.0395639, 'R': 0.0540978, 'S': 0.0683364,
	'T': 0.0540687, 'V': 0.0673417, 'W': 0.0114135, 'Y': 0.0304133,
}
