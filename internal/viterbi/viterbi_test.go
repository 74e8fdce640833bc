package viterbi

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"iseq/internal/alphabet"
	"iseq/internal/lprob"
	"iseq/internal/span"
	"iseq/internal/state"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func normal(t *testing.T, name string, ps ...float64) *state.Normal {
	t.Helper()
	lps := make([]float64, len(ps))
	for i, p := range ps {
		lps[i] = math.Log(p)
	}
	s, err := state.NewNormal(name, state.Flank, alphabet.DNA(), lps)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// S -> A -> T with A looping, plus a competing S -> C -> T branch.
func twoBranch(t *testing.T) (*Graph, *state.Normal, *state.Normal) {
	t.Helper()
	a := alphabet.DNA()
	S := state.NewMute("S", state.Start, a)
	T := state.NewMute("T", state.Terminal, a)
	A := normal(t, "A", 0.7, 0.1, 0.1, 0.1)
	C := normal(t, "C", 0.1, 0.7, 0.1, 0.1)
	b := NewBuilder()
	b.AddState(S)
	b.SetTransition(S, A, math.Log(0.5))
	b.SetTransition(S, C, math.Log(0.5))
	b.SetTransition(A, A, math.Log(0.5))
	b.SetTransition(A, T, math.Log(0.5))
	b.SetTransition(C, T, 0)
	g, err := b.Build(S, T)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g, A, C
}

func TestDecodeBestPath(t *testing.T) {
	g, A, _ := twoBranch(t)
	ll, p := g.Decode([]byte("AAG"))
	want := math.Log(0.5) + math.Log(0.7) + math.Log(0.5) + math.Log(0.7) + math.Log(0.5) + math.Log(0.1) + math.Log(0.5)
	if !near(ll, want) {
		t.Fatalf("loglik = %v want %v", ll, want)
	}
	if got := p.Names(); !reflect.DeepEqual(got, []string{"S", "A", "A", "A", "T"}) {
		t.Fatalf("path = %v", got)
	}
	if p.SeqLen() != 3 || p[1].State != A || p[0].Len != 0 {
		t.Fatalf("steps = %+v", p)
	}
}

func TestDecodeSingleSymbolPrefersCheaperBranch(t *testing.T) {
	g, _, _ := twoBranch(t)
	ll, p := g.Decode([]byte("C"))
	if got := p.Names(); !reflect.DeepEqual(got, []string{"S", "C", "T"}) {
		t.Fatalf("path = %v", got)
	}
	if !near(ll, math.Log(0.5)+math.Log(0.7)) {
		t.Fatalf("loglik = %v", ll)
	}
}

func TestDecodeNoPath(t *testing.T) {
	g, _, _ := twoBranch(t)
	// C -> T only accepts one symbol; A accepts anything, so use an invalid symbol.
	ll, p := g.Decode([]byte("AXA"))
	if !lprob.IsZero(ll) || len(p) != 0 {
		t.Fatalf("expected no path, got %v %v", ll, p.Names())
	}
	ll, p = g.Decode(nil)
	if !lprob.IsZero(ll) || len(p) != 0 {
		t.Fatalf("empty sequence decoded: %v %v", ll, p.Names())
	}
}

func TestTieBreakPrefersFirstEdge(t *testing.T) {
	a := alphabet.DNA()
	S := state.NewMute("S", state.Start, a)
	T := state.NewMute("T", state.Terminal, a)
	X := normal(t, "X", 0.25, 0.25, 0.25, 0.25)
	Y := normal(t, "Y", 0.25, 0.25, 0.25, 0.25)
	b := NewBuilder()
	b.SetTransition(S, X, math.Log(0.5))
	b.SetTransition(S, Y, math.Log(0.5))
	b.SetTransition(Y, T, 0)
	b.SetTransition(X, T, 0)
	g, err := b.Build(S, T)
	if err != nil {
		t.Fatal(err)
	}
	_, p := g.Decode([]byte("G"))
	if p[1].State != Y {
		t.Fatalf("tie went to %s", p[1].State.Name())
	}
}

func TestMuteChain(t *testing.T) {
	a := alphabet.DNA()
	S := state.NewMute("S", state.Start, a)
	D1 := state.NewMute("D1", state.CoreDelete, a)
	D2 := state.NewMute("D2", state.CoreDelete, a)
	T := state.NewMute("T", state.Terminal, a)
	X := normal(t, "X", 1, 0, 0, 0)
	b := NewBuilder()
	b.AddState(S)
	b.AddState(T)
	b.AddState(D2)
	b.AddState(D1)
	b.AddState(X)
	b.SetTransition(S, X, 0)
	b.SetTransition(X, D1, math.Log(0.5))
	b.SetTransition(D1, D2, math.Log(0.5))
	b.SetTransition(D2, T, 0)
	g, err := b.Build(S, T)
	if err != nil {
		t.Fatal(err)
	}
	ll, p := g.Decode([]byte("A"))
	if !near(ll, math.Log(0.25)) {
		t.Fatalf("loglik = %v", ll)
	}
	if got := p.Names(); !reflect.DeepEqual(got, []string{"S", "X", "D1", "D2", "T"}) {
		t.Fatalf("path = %v", got)
	}

	b.SetTransition(D2, D1, math.Log(0.5))
	if _, err := b.Build(S, T); !errors.Is(err, ErrMuteCycle) {
		t.Fatalf("cycle not detected: %v", err)
	}
}

func TestSetTransitionOverwriteAndRemove(t *testing.T) {
	a := alphabet.DNA()
	S := state.NewMute("S", state.Start, a)
	X := normal(t, "X", 1, 0, 0, 0)
	b := NewBuilder()
	b.SetTransition(S, X, math.Log(0.5))
	b.SetTransition(S, X, math.Log(0.25))
	if !near(b.Transition(S, X), math.Log(0.25)) {
		t.Fatalf("overwrite: %v", b.Transition(S, X))
	}
	b.SetTransition(S, X, lprob.Zero())
	if !lprob.IsZero(b.Transition(S, X)) {
		t.Fatalf("edge not removed")
	}
}

func TestWindows(t *testing.T) {
	cases := []struct {
		n, w int
		want []span.Interval
	}{
		{10, 0, []span.Interval{{Start: 0, Stop: 10}}},
		{10, 20, []span.Interval{{Start: 0, Stop: 10}}},
		{10, 4, []span.Interval{{Start: 0, Stop: 4}, {Start: 2, Stop: 6}, {Start: 4, Stop: 8}, {Start: 6, Stop: 10}}},
		{7, 4, []span.Interval{{Start: 0, Stop: 4}, {Start: 2, Stop: 6}, {Start: 4, Stop: 7}}},
		{3, 1, []span.Interval{{Start: 0, Stop: 1}, {Start: 1, Stop: 2}, {Start: 2, Stop: 3}}},
	}
	for _, c := range cases {
		if got := Windows(c.n, c.w); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("Windows(%d, %d) = %v want %v", c.n, c.w, got, c.want)
		}
	}
}

func TestDecodeWindows(t *testing.T) {
	g, _, _ := twoBranch(t)
	res := g.DecodeWindows([]byte("AAAAA"), 4)
	if len(res) != 2 {
		t.Fatalf("%d windows", len(res))
	}
	if res[1].Window != span.New(2, 5) || res[1].Path.SeqLen() != 3 {
		t.Fatalf("second window = %+v", res[1])
	}
}
