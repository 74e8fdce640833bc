package result

import (
	"iseq/internal/span"
	"iseq/internal/state"
	"iseq/internal/stitch"
)

// SearchResult is the outcome of decoding one window.
type SearchResult struct {
	// LogLik is the alternative log-likelihood minus the null one.
	LogLik    float64
	AltLogLik float64
	Fragments []*Fragment
	// Intervals are the fragment positions within the window.
	Intervals []span.Interval
}

// NewSearchResult segments path over the window subsequence seq.
func NewSearchResult(loglik, altLogLik float64, seq []byte, path state.Path) *SearchResult {
	r := &SearchResult{LogLik: loglik, AltLogLik: altLogLik}
	for _, sg := range Segments(path) {
		steps := append(state.Path(nil), path[sg.Steps.Start:sg.Steps.Stop]...)
		r.Fragments = append(r.Fragments, &Fragment{
			Seq:        seq[sg.Seq.Start:sg.Seq.Stop],
			Path:       steps,
			Homologous: sg.Homologous,
		})
		r.Intervals = append(r.Intervals, sg.Seq)
	}
	return r
}

// Homologous counts the homologous fragments.
func (r *SearchResult) Homologous() int {
	n := 0
	for _, f := range r.Fragments {
		if f.Homologous {
			n++
		}
	}
	return n
}

// SearchResults collects one SearchResult per scan window of a target.
type SearchResults struct {
	Seq     []byte
	Windows []span.Interval
	Results []*SearchResult
}

func NewSearchResults(seq []byte) *SearchResults { return &SearchResults{Seq: seq} }

// Append records the decoded path of window.
func (r *SearchResults) Append(loglik, altLogLik float64, window span.Interval, path state.Path) {
	sub := r.Seq[window.Start:window.Stop]
	r.Results = append(r.Results, NewSearchResult(loglik, altLogLik, sub, path))
	r.Windows = append(r.Windows, window)
}

// Hit is a homologous fragment placed on the whole target.
type Hit struct {
	Interval span.Interval
	Window   int
	LogLik   float64
	Fragment *Fragment
}

// Hits stitches the homologous fragments of every window, in the order they
// become final. Fragments found again by a later window are reported once.
func (r *SearchResults) Hits() []Hit {
	var (
		st  stitch.Stitcher[Hit]
		out []Hit
	)
	for w, res := range r.Results {
		var cands []stitch.Item[Hit]
		for i, f := range res.Fragments {
			if !f.Homologous {
				continue
			}
			iv := res.Intervals[i].Shift(r.Windows[w].Start)
			cands = append(cands, stitch.Item[Hit]{
				Interval: iv,
				Value:    Hit{Interval: iv, Window: w, LogLik: res.LogLik, Fragment: f},
			})
		}
		for _, it := range st.Push(cands) {
			out = append(out, it.Value)
		}
	}
	for _, it := range st.Flush() {
		out = append(out, it.Value)
	}
	return out
}
