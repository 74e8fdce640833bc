// Package viterbi finds the most likely state path of a sequence through a
// directed graph of emission states.
//
// States may consume a variable number of symbols, and mute states consume
// none. Mute states must not form a cycle. Scores are natural-log
// probabilities; ties are broken by preferring the shortest emission, then
// the earliest-inserted incoming edge.
package viterbi

import (
	"errors"
	"fmt"

	"iseq/internal/lprob"
	"iseq/internal/state"
)

// ErrMuteCycle is returned by Build when mute states form a cycle.
var ErrMuteCycle = errors.New("mute states form a cycle")

type edge struct {
	from int
	lp   float64
}

// Builder accumulates states and transitions. Transitions follow set
// semantics: setting an existing pair overwrites its value in place.
type Builder struct {
	states []state.State
	ids    map[state.State]int
	in     [][]edge
	pos    map[[2]int]int
}

func NewBuilder() *Builder {
	return &Builder{ids: make(map[state.State]int), pos: make(map[[2]int]int)}
}

// AddState registers s once and returns its id.
func (b *Builder) AddState(s state.State) int {
	if id, ok := b.ids[s]; ok {
		return id
	}
	id := len(b.states)
	b.states = append(b.states, s)
	b.ids[s] = id
	b.in = append(b.in, nil)
	return id
}

// SetTransition sets the log-probability of moving from a to c. Both states
// are added if needed. A zero probability removes the edge.
func (b *Builder) SetTransition(a, c state.State, lp float64) {
	from, to := b.AddState(a), b.AddState(c)
	key := [2]int{from, to}
	if i, ok := b.pos[key]; ok {
		if lprob.IsZero(lp) {
			b.in[to] = append(b.in[to][:i], b.in[to][i+1:]...)
			delete(b.pos, key)
			for j := i; j < len(b.in[to]); j++ {
				b.pos[[2]int{b.in[to][j].from, to}] = j
			}
			return
		}
		b.in[to][i].lp = lp
		return
	}
	if lprob.IsZero(lp) {
		return
	}
	b.pos[key] = len(b.in[to])
	b.in[to] = append(b.in[to], edge{from: from, lp: lp})
}

// Transition returns the log-probability of moving from a to c.
func (b *Builder) Transition(a, c state.State) float64 {
	from, ok1 := b.ids[a]
	to, ok2 := b.ids[c]
	if !ok1 || !ok2 {
		return lprob.Zero()
	}
	if i, ok := b.pos[[2]int{from, to}]; ok {
		return b.in[to][i].lp
	}
	return lprob.Zero()
}

// Build freezes the graph for decoding from start to end.
func (b *Builder) Build(start, end state.State) (*Graph, error) {
	s, ok := b.ids[start]
	if !ok {
		return nil, fmt.Errorf("viterbi: start state %s not in graph", start.Name())
	}
	e, ok := b.ids[end]
	if !ok {
		return nil, fmt.Errorf("viterbi: end state %s not in graph", end.Name())
	}
	g := &Graph{
		states: append([]state.State(nil), b.states...),
		in:     make([][]edge, len(b.in)),
		start:  s,
		end:    e,
	}
	for i, es := range b.in {
		g.in[i] = append([]edge(nil), es...)
	}
	order, err := g.mutesInOrder()
	if err != nil {
		return nil, err
	}
	for i, st := range g.states {
		if !state.IsMute(st) {
			g.emitting = append(g.emitting, i)
		}
	}
	g.mutes = order
	return g, nil
}

// Graph is an immutable state graph ready for decoding. It is safe for
// concurrent use.
type Graph struct {
	states   []state.State
	in       [][]edge
	emitting []int
	mutes    []int // topological order
	start    int
	end      int
}

func (g *Graph) NumStates() int { return len(g.states) }

// mutesInOrder sorts mute states so that every mute-to-mute edge points
// forward. Ties keep insertion order.
func (g *Graph) mutesInOrder() ([]int, error) {
	indeg := make(map[int]int)
	out := make(map[int][]int)
	var mutes []int
	for i, st := range g.states {
		if !state.IsMute(st) {
			continue
		}
		mutes = append(mutes, i)
		indeg[i] += 0
		for _, e := range g.in[i] {
			if e.from != i && !state.IsMute(g.states[e.from]) {
				continue
			}
			indeg[i]++
			out[e.from] = append(out[e.from], i)
		}
	}
	done := make(map[int]bool, len(mutes))
	order := make([]int, 0, len(mutes))
	for len(order) < len(mutes) {
		progressed := false
		for _, i := range mutes {
			if done[i] || indeg[i] > 0 {
				continue
			}
			done[i] = true
			order = append(order, i)
			for _, j := range out[i] {
				indeg[j]--
			}
			progressed = true
			break
		}
		if !progressed {
			return nil, ErrMuteCycle
		}
	}
	return order, nil
}
