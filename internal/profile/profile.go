// Package profile builds searchable profiles from HMMER3 models and scores
// target sequences against them window by window.
package profile

import (
	"fmt"
	"strings"

	"iseq/internal/alphabet"
	"iseq/internal/gencode"
	"iseq/internal/hmmer"
	"iseq/internal/model"
	"iseq/internal/result"
	"iseq/internal/state"
)

// Kind names a profile flavour.
type Kind string

const (
	KindStandard Kind = "standard"
	KindHMMER3   Kind = "hmmer3"
	KindFrame    Kind = "frame"
	KindCodon    Kind = "codon"
)

// ParseKind accepts the lower-case kind names.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindStandard, KindHMMER3, KindFrame, KindCodon:
		return k, nil
	}
	return "", fmt.Errorf("unknown profile kind %q (want standard, hmmer3, frame or codon)", s)
}

// Options tune profile construction and search.
type Options struct {
	MultipleHits bool
	HMMER3Compat bool
	// Entry is honoured by HMMER3 profiles; the others enter uniformly.
	Entry       model.Entry
	Epsilon     float64
	GeneticCode int
	// Base is the nucleotide alphabet of frame and codon targets.
	Base *alphabet.Alphabet
}

func DefaultOptions() Options {
	return Options{
		MultipleHits: true,
		Entry:        model.EntryOccupancy,
		Epsilon:      0.01,
		GeneticCode:  1,
		Base:         alphabet.DNA(),
	}
}

// Profile scores targets against one model.
type Profile interface {
	Kind() Kind
	Name() string
	Accession() string
	// Alphabet is the target alphabet.
	Alphabet() *alphabet.Alphabet
	// Length is the number of core nodes.
	Length() int
	Options() Options
	Search(seq []byte, window int) (*result.SearchResults, error)
}

// Translator is implemented by profiles over codons.
type Translator interface {
	GeneticCode() *gencode.GeneticCode
}

// New dispatches on kind.
func New(kind Kind, m *hmmer.Model, opts Options) (Profile, error) {
	switch kind {
	case KindStandard:
		return NewStandard(m, opts)
	case KindHMMER3:
		return NewHMMER3(m, opts)
	case KindFrame:
		return NewFrame(m, opts)
	case KindCodon:
		return NewCodon(m, opts)
	}
	return nil, fmt.Errorf("unknown profile kind %q", kind)
}

type core struct {
	kind      Kind
	name, acc string
	alpha     *alphabet.Alphabet
	alt       *model.AltModel
	null      *model.NullModel
	opts      Options
	altOffset float64
}

func (p *core) Kind() Kind                   { return p.kind }
func (p *core) Name() string                 { return p.name }
func (p *core) Accession() string            { return p.acc }
func (p *core) Alphabet() *alphabet.Alphabet { return p.alpha }
func (p *core) Length() int                  { return p.alt.Len() }
func (p *core) Options() Options             { return p.opts }
func (p *core) AltModel() *model.AltModel    { return p.alt }
func (p *core) NullModel() *model.NullModel  { return p.null }

// Search decodes seq with special transitions for its full length. Each
// window is scored as its alternative log-likelihood minus the null
// log-likelihood of the window subsequence.
func (p *core) Search(seq []byte, window int) (*result.SearchResults, error) {
	if !p.alpha.Valid(seq) {
		return nil, fmt.Errorf("profile %s: target has symbols outside the %s alphabet", p.name, p.alpha)
	}
	t, err := model.TargetLength(len(seq), p.opts.MultipleHits)
	if err != nil {
		return nil, err
	}
	alt, err := p.alt.Viterbi(seq, t, p.opts.HMMER3Compat, window)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.name, err)
	}
	rs := result.NewSearchResults(seq)
	for _, r := range alt {
		null, err := p.null.LogLikelihood(seq[r.Window.Start:r.Window.Stop], t)
		if err != nil {
			return nil, fmt.Errorf("profile %s: null model: %w", p.name, err)
		}
		rs.Append(r.LogLik-null, r.LogLik+p.altOffset, r.Window, r.Path)
	}
	return rs, nil
}

// assemble wraps nodes in the Plan7 shell. flank builds N, J, C and the
// null state R over the same emission table.
func (p *core) assemble(flank func(name string, role state.Role) (state.State, error), nodes []model.Node, trans []model.Transitions, entry model.Entry) error {
	states := make(map[string]state.State, 4)
	for _, f := range []struct {
		name string
		role state.Role
	}{{"N", state.Flank}, {"J", state.Flank}, {"C", state.Flank}, {"R", state.Null}} {
		s, err := flank(f.name, f.role)
		if err != nil {
			return fmt.Errorf("profile %s: %w", p.name, err)
		}
		states[f.name] = s
	}
	sn := model.SpecialNode{
		S: state.NewMute("S", state.Start, p.alpha),
		N: states["N"],
		B: state.NewMute("B", state.Begin, p.alpha),
		E: state.NewMute("E", state.End, p.alpha),
		J: states["J"],
		C: states["C"],
		T: state.NewMute("T", state.Terminal, p.alpha),
	}
	alt, err := model.NewAltModel(sn, nodes, trans, entry)
	if err != nil {
		return fmt.Errorf("profile %s: %w", p.name, err)
	}
	p.alt = alt
	p.null = model.NewNullModel(states["R"])
	return nil
}

func newCore(kind Kind, m *hmmer.Model, alpha *alphabet.Alphabet, opts Options) *core {
	return &core{kind: kind, name: m.Name(), acc: m.Acc(), alpha: alpha, opts: opts}
}

func nodeName(prefix string, k int) string { return fmt.Sprintf("%s%d", prefix, k) }

// normalizedTrans returns every transition set of m rescaled to unit mass.
func normalizedTrans(m *hmmer.Model) []model.Transitions {
	out := make([]model.Transitions, m.M()+1)
	for k := range out {
		out[k] = m.Trans(k)
		out[k].Normalize()
	}
	return out
}
