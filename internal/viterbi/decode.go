package viterbi

import (
	"iseq/internal/lprob"
	"iseq/internal/span"
	"iseq/internal/state"
)

// Result is the best path through one window.
type Result struct {
	Window span.Interval
	LogLik float64
	Path   state.Path
}

type back struct {
	from int32 // -1: path starts here
	len  int32
}

// Decode returns the best log-likelihood of emitting exactly seq on a path
// from the start state to the end state, and that path. When no such path
// exists the log-likelihood is zero probability and the path is empty.
func (g *Graph) Decode(seq []byte) (float64, state.Path) {
	n := len(seq)
	ns := len(g.states)
	score := make([]float64, (n+1)*ns)
	bp := make([]back, (n+1)*ns)
	for i := range score {
		score[i] = lprob.Zero()
	}

	relax := func(pos, s int, v float64, from, l int) {
		k := pos*ns + s
		if v > score[k] {
			score[k] = v
			bp[k] = back{from: int32(from), len: int32(l)}
		}
	}

	for pos := 0; pos <= n; pos++ {
		for _, s := range g.emitting {
			st := g.states[s]
			lo, hi := st.MinLen(), st.MaxLen()
			if lo < 1 {
				lo = 1
			}
			for l := lo; l <= hi && l <= pos; l++ {
				e := st.LProb(seq[pos-l : pos])
				if lprob.IsZero(e) {
					continue
				}
				prev := pos - l
				if s == g.start && prev == 0 {
					relax(pos, s, e, -1, l)
				}
				for _, ed := range g.in[s] {
					v := score[prev*ns+ed.from]
					if lprob.IsZero(v) {
						continue
					}
					relax(pos, s, v+ed.lp+e, ed.from, l)
				}
			}
		}
		for _, s := range g.mutes {
			if s == g.start && pos == 0 {
				relax(pos, s, 0, -1, 0)
			}
			for _, ed := range g.in[s] {
				v := score[pos*ns+ed.from]
				if lprob.IsZero(v) {
					continue
				}
				relax(pos, s, v+ed.lp, ed.from, 0)
			}
		}
	}

	best := score[n*ns+g.end]
	if lprob.IsZero(best) {
		return lprob.Zero(), nil
	}
	var rev state.Path
	pos, s := n, g.end
	for {
		b := bp[pos*ns+s]
		rev = append(rev, state.Step{State: g.states[s], Len: int(b.len)})
		if b.from < 0 {
			break
		}
		pos -= int(b.len)
		s = int(b.from)
	}
	path := make(state.Path, len(rev))
	for i, st := range rev {
		path[len(rev)-1-i] = st
	}
	return best, path
}

// Windows splits [0, n) into windows of length w overlapping by half. A zero
// w gives one window over the whole sequence.
func Windows(n, w int) []span.Interval {
	if w <= 0 || w >= n {
		return []span.Interval{span.New(0, n)}
	}
	step := w / 2
	if step < 1 {
		step = 1
	}
	var out []span.Interval
	for start := 0; ; start += step {
		stop := min(start+w, n)
		out = append(out, span.New(start, stop))
		if stop == n {
			break
		}
	}
	return out
}

// DecodeWindows decodes every window of seq independently.
func (g *Graph) DecodeWindows(seq []byte, w int) []Result {
	wins := Windows(len(seq), w)
	out := make([]Result, 0, len(wins))
	for _, win := range wins {
		ll, p := g.Decode(seq[win.Start:win.Stop])
		out = append(out, Result{Window: win, LogLik: ll, Path: p})
	}
	return out
}
