package model

import (
	"fmt"
	"math"
	"strings"

	"iseq/internal/lprob"
	"iseq/internal/state"
	"iseq/internal/viterbi"
)

// Node is one profile position.
type Node struct {
	M state.State
	I state.State
	D *state.Mute
}

// SpecialNode holds the seven Plan7 states surrounding the core.
type SpecialNode struct {
	S *state.Mute
	N state.State
	B *state.Mute
	E *state.Mute
	J state.State
	C state.State
	T *state.Mute
}

func (sn SpecialNode) states() []state.State {
	return []state.State{sn.S, sn.N, sn.B, sn.E, sn.J, sn.C, sn.T}
}

// Entry selects how B enters and E leaves the core.
type Entry uint8

const (
	// EntryUniform enters every match state with the local fragment-length prior.
	EntryUniform Entry = iota
	// EntryOccupancy weights entry by how often an alignment occupies each node.
	EntryOccupancy
	// EntryFull enters at the first node and leaves at the last.
	EntryFull
)

func (e Entry) String() string {
	switch e {
	case EntryUniform:
		return "uniform"
	case EntryOccupancy:
		return "occupancy"
	case EntryFull:
		return "full"
	}
	return fmt.Sprintf("entry(%d)", uint8(e))
}

// ParseEntry accepts the names String returns.
func ParseEntry(s string) (Entry, error) {
	for _, e := range []Entry{EntryUniform, EntryOccupancy, EntryFull} {
		if strings.EqualFold(strings.TrimSpace(s), e.String()) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown entry distribution %q (want uniform, occupancy or full)", s)
}

// AltModel is the homology model: special states plus profile nodes.
type AltModel struct {
	special SpecialNode
	nodes   []Node
	trans   []Transitions
	entry   Entry
	occ     []float64
	logZ    float64
}

// NewAltModel wires nodes with trans, where trans[k] leaves node k and
// trans[0] leaves B. len(trans) must be len(nodes)+1.
func NewAltModel(special SpecialNode, nodes []Node, trans []Transitions, entry Entry) (*AltModel, error) {
	if len(trans) != len(nodes)+1 {
		return nil, fmt.Errorf("model: %d transition sets for %d nodes", len(trans), len(nodes))
	}
	m := &AltModel{
		special: special,
		nodes:   append([]Node(nil), nodes...),
		trans:   append([]Transitions(nil), trans...),
		entry:   entry,
	}
	if len(nodes) > 0 {
		m.occ, m.logZ = occupancy(m.trans)
	}
	return m, nil
}

func (m *AltModel) Special() SpecialNode { return m.special }
func (m *AltModel) Nodes() []Node        { return m.nodes }
func (m *AltModel) Len() int             { return len(m.nodes) }
func (m *AltModel) Entry() Entry         { return m.entry }

// Graph assembles the state graph for special transitions t. In hmmer3Compat
// mode the N, C and J self-loops score zero, as in the HMMER3 Viterbi filter.
func (m *AltModel) Graph(t SpecialTransitions, hmmer3Compat bool) (*viterbi.Graph, error) {
	b := viterbi.NewBuilder()
	sn := m.special
	for _, s := range sn.states() {
		b.AddState(s)
	}
	for _, n := range m.nodes {
		b.AddState(n.M)
		b.AddState(n.I)
		b.AddState(n.D)
	}

	for i := 1; i < len(m.nodes); i++ {
		prev, next, tr := m.nodes[i-1], m.nodes[i], m.trans[i]
		b.SetTransition(prev.M, next.M, tr.MM)
		b.SetTransition(prev.M, prev.I, tr.MI)
		b.SetTransition(prev.M, next.D, tr.MD)
		b.SetTransition(prev.I, next.M, tr.IM)
		b.SetTransition(prev.I, prev.I, tr.II)
		b.SetTransition(prev.D, next.M, tr.DM)
		b.SetTransition(prev.D, next.D, tr.DD)
	}
	m.wireEntry(b, t)

	if hmmer3Compat {
		t.NN, t.CC, t.JJ = 0, 0, 0
	}
	b.SetTransition(sn.S, sn.B, t.NB)
	b.SetTransition(sn.S, sn.N, t.NN)
	b.SetTransition(sn.N, sn.N, t.NN)
	b.SetTransition(sn.N, sn.B, t.NB)

	b.SetTransition(sn.E, sn.T, t.EC+t.CT)
	b.SetTransition(sn.E, sn.C, t.EC+t.CC)
	b.SetTransition(sn.C, sn.C, t.CC)
	b.SetTransition(sn.C, sn.T, t.CT)

	b.SetTransition(sn.E, sn.B, t.EJ+t.JB)
	b.SetTransition(sn.E, sn.J, t.EJ+t.JJ)
	b.SetTransition(sn.J, sn.J, t.JJ)
	b.SetTransition(sn.J, sn.B, t.JB)

	return b.Build(sn.S, sn.T)
}

func (m *AltModel) wireEntry(b *viterbi.Builder, t SpecialTransitions) {
	n := len(m.nodes)
	if n == 0 {
		return
	}
	B, E := m.special.B, m.special.E
	switch m.entry {
	case EntryFull:
		b.SetTransition(B, m.nodes[0].M, 0)
		b.SetTransition(m.nodes[n-1].M, E, 0)
		b.SetTransition(m.nodes[n-1].D, E, 0)
		return
	case EntryOccupancy:
		for k, node := range m.nodes {
			b.SetTransition(B, node.M, m.occ[k]-m.logZ)
		}
	default:
		t = FragmentLength(t, n)
		for _, node := range m.nodes {
			b.SetTransition(B, node.M, t.BM)
		}
	}
	for _, node := range m.nodes {
		b.SetTransition(node.M, E, 0)
	}
	for _, node := range m.nodes[1:] {
		b.SetTransition(node.D, E, 0)
	}
}

// Viterbi decodes seq window by window.
func (m *AltModel) Viterbi(seq []byte, t SpecialTransitions, hmmer3Compat bool, window int) ([]viterbi.Result, error) {
	g, err := m.Graph(t, hmmer3Compat)
	if err != nil {
		return nil, err
	}
	return g.DecodeWindows(seq, window), nil
}

// occupancy follows the HMMER3 recursion for match occupancy and returns the
// per-node log-occupancy with the local-entry normalizer.
func occupancy(trans []Transitions) ([]float64, float64) {
	n := len(trans) - 1
	occ := make([]float64, n)
	occ[0] = lprob.Add(trans[0].MI, trans[0].MM)
	for k := 1; k < n; k++ {
		tr := trans[k]
		stay := occ[k-1] + lprob.Add(tr.MM, tr.MI)
		enter := lprob.Log1mExp(occ[k-1]) + tr.DM
		occ[k] = lprob.Add(stay, enter)
	}
	logZ := lprob.Zero()
	for k, v := range occ {
		logZ = lprob.Add(logZ, v+math.Log(float64(n-k)))
	}
	return occ, logZ
}

// NullModel scores a sequence as a run of one emitting state.
type NullModel struct {
	r     state.State
	start *state.Mute
	end   *state.Mute
}

func NewNullModel(r state.State) *NullModel {
	return &NullModel{
		r:     r,
		start: state.NewMute("S", state.Start, r.Alphabet()),
		end:   state.NewMute("T", state.Terminal, r.Alphabet()),
	}
}

func (m *NullModel) State() state.State { return m.r }

// LogLikelihood is the best score of seq under R with self-loop RR.
func (m *NullModel) LogLikelihood(seq []byte, t SpecialTransitions) (float64, error) {
	b := viterbi.NewBuilder()
	b.SetTransition(m.start, m.r, 0)
	b.SetTransition(m.r, m.r, t.RR)
	b.SetTransition(m.r, m.end, 0)
	g, err := b.Build(m.start, m.end)
	if err != nil {
		return lprob.Zero(), err
	}
	ll, _ := g.Decode(seq)
	return ll, nil
}
