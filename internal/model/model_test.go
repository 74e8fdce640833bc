package model

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"iseq/internal/alphabet"
	"iseq/internal/lprob"
	"iseq/internal/state"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTransitionsNormalize(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		tr := Transitions{
			MM: math.Log(r.Float64()), MI: math.Log(r.Float64()), MD: math.Log(r.Float64()),
			IM: math.Log(r.Float64()), II: math.Log(r.Float64()),
			DM: math.Log(r.Float64()), DD: math.Log(r.Float64()),
		}
		tr.Normalize()
		if s := lprob.Sum(tr.MM, tr.MI, tr.MD); math.Abs(s) > 1e-6 {
			t.Fatalf("M group sums to %v", s)
		}
		if s := lprob.Sum(tr.IM, tr.II); math.Abs(s) > 1e-6 {
			t.Fatalf("I group sums to %v", s)
		}
		if s := lprob.Sum(tr.DM, tr.DD); math.Abs(s) > 1e-6 {
			t.Fatalf("D group sums to %v", s)
		}
	}
	z := ZeroTransitions()
	z.Normalize()
	if !lprob.IsZero(z.MM) || !lprob.IsZero(z.DD) {
		t.Fatalf("all-zero transitions changed: %+v", z)
	}
}

func TestTargetLength(t *testing.T) {
	if _, err := TargetLength(0, true); !errors.Is(err, ErrZeroLength) {
		t.Fatalf("L=0: %v", err)
	}
	st, err := TargetLength(10, true)
	if err != nil {
		t.Fatal(err)
	}
	if !near(st.NN, math.Log(10.0/13)) || !near(st.NB, math.Log(3.0/13)) || !near(st.RR, math.Log(10.0/11)) {
		t.Fatalf("multi-hit: %+v", st)
	}
	if st.NN != st.CC || st.CC != st.JJ || st.NB != st.CT || st.CT != st.JB {
		t.Fatalf("tied transitions differ: %+v", st)
	}
	if !near(st.EJ, math.Log(0.5)) || !near(st.EC, math.Log(0.5)) {
		t.Fatalf("EJ/EC = %v/%v", st.EJ, st.EC)
	}
	st, _ = TargetLength(10, false)
	if !near(st.NN, math.Log(10.0/12)) || !lprob.IsZero(st.EJ) || st.EC != 0 {
		t.Fatalf("single-hit: %+v", st)
	}
	if f := FragmentLength(st, 3); !near(f.BM, math.Log(1.0/6)) || f.ME != 0 {
		t.Fatalf("fragment length: %+v", f)
	}
}

func TestOccupancy(t *testing.T) {
	p := func(x float64) float64 { return math.Log(x) }
	trans := []Transitions{
		{MM: p(.8), MI: p(.1), MD: p(.1), IM: 0, II: lprob.Zero(), DM: 0, DD: lprob.Zero()},
		{MM: p(.7), MI: p(.2), MD: p(.1), IM: p(.5), II: p(.5), DM: p(.6), DD: p(.4)},
		ZeroTransitions(),
	}
	occ, logZ := occupancy(trans)
	if !near(math.Exp(occ[0]), .9) || !near(math.Exp(occ[1]), .87) {
		t.Fatalf("occ = %v", []float64{math.Exp(occ[0]), math.Exp(occ[1])})
	}
	if !near(math.Exp(logZ), 2.67) {
		t.Fatalf("Z = %v", math.Exp(logZ))
	}
}

type fixture struct {
	special SpecialNode
	nodes   []Node
	trans   []Transitions
}

// twoNode builds a model whose match states emit A then C with certainty.
func twoNode(t *testing.T) fixture {
	t.Helper()
	a := alphabet.DNA()
	unif := []float64{math.Log(.25), math.Log(.25), math.Log(.25), math.Log(.25)}
	flank := func(name string) state.State {
		s, err := state.NewNormal(name, state.Flank, a, unif)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	node := func(k string, sym byte) Node {
		m, _ := state.NewUnitNormal("M"+k, state.CoreMatch, a, sym)
		i, _ := state.NewNormal("I"+k, state.CoreInsert, a, unif)
		return Node{M: m, I: i, D: state.NewMute("D"+k, state.CoreDelete, a)}
	}
	p := math.Log
	trans := []Transitions{
		{MM: 0, MI: lprob.Zero(), MD: lprob.Zero(), IM: 0, II: lprob.Zero(), DM: 0, DD: lprob.Zero()},
		{MM: p(.9), MI: p(.05), MD: p(.05), IM: p(.5), II: p(.5), DM: p(.5), DD: p(.5)},
		{MM: 0, MI: lprob.Zero(), MD: lprob.Zero(), IM: 0, II: lprob.Zero(), DM: 0, DD: lprob.Zero()},
	}
	return fixture{
		special: SpecialNode{
			S: state.NewMute("S", state.Start, a),
			N: flank("N"),
			B: state.NewMute("B", state.Begin, a),
			E: state.NewMute("E", state.End, a),
			J: flank("J"),
			C: flank("C"),
			T: state.NewMute("T", state.Terminal, a),
		},
		nodes: []Node{node("1", 'A'), node("2", 'C')},
		trans: trans,
	}
}

func TestAltModelUniform(t *testing.T) {
	f := twoNode(t)
	m, err := NewAltModel(f.special, f.nodes, f.trans, EntryUniform)
	if err != nil {
		t.Fatal(err)
	}
	st, _ := TargetLength(2, true)
	res, err := m.Viterbi([]byte("AC"), st, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("%d windows", len(res))
	}
	want := st.NB + (math.Log(2) - math.Log(2) - math.Log(3)) + math.Log(.9) + st.EC + st.CT
	if !near(res[0].LogLik, want) {
		t.Fatalf("loglik = %v want %v", res[0].LogLik, want)
	}
	if got := res[0].Path.Names(); !reflect.DeepEqual(got, []string{"S", "B", "M1", "M2", "E", "T"}) {
		t.Fatalf("path = %v", got)
	}
}

func TestAltModelFull(t *testing.T) {
	f := twoNode(t)
	m, _ := NewAltModel(f.special, f.nodes, f.trans, EntryFull)
	st, _ := TargetLength(2, false)
	g, err := m.Graph(st, true)
	if err != nil {
		t.Fatal(err)
	}
	ll, p := g.Decode([]byte("AC"))
	want := st.NB + math.Log(.9) + st.EC + st.CT
	if !near(ll, want) {
		t.Fatalf("loglik = %v want %v", ll, want)
	}
	if len(p) != 6 {
		t.Fatalf("path = %v", p.Names())
	}
	// Full entry cannot start at M2.
	if ll, _ := g.Decode([]byte("C")); !lprob.IsZero(ll) {
		t.Fatalf("entered at M2: %v", ll)
	}
}

func TestAltModelRejectsMismatchedTransitions(t *testing.T) {
	f := twoNode(t)
	if _, err := NewAltModel(f.special, f.nodes, f.trans[:2], EntryUniform); err == nil {
		t.Fatalf("mismatch accepted")
	}
}

func TestNullModel(t *testing.T) {
	a := alphabet.DNA()
	r, _ := state.NewNormal("R", state.Null, a, []float64{math.Log(.1), math.Log(.2), math.Log(.3), math.Log(.4)})
	nm := NewNullModel(r)
	st, _ := TargetLength(3, true)
	ll, err := nm.LogLikelihood([]byte("ACG"), st)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Log(.1) + math.Log(.2) + math.Log(.3) + 2*st.RR
	if !near(ll, want) {
		t.Fatalf("null loglik = %v want %v", ll, want)
	}
}

func TestParseEntry(t *testing.T) {
	for _, e := range []Entry{EntryUniform, EntryOccupancy, EntryFull} {
		got, err := ParseEntry(strings.ToUpper(e.String()))
		if err != nil || got != e {
			t.Fatalf("ParseEntry(%s) = %v, %v", e, got, err)
		}
	}
	if _, err := ParseEntry("local"); err == nil {
		t.Fatal("accepted an unknown entry")
	}
}
