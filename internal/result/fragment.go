// Package result turns decoded Viterbi paths into fragments of a target
// sequence and hardens frame alignments into codons and residues.
package result

import (
	"errors"
	"fmt"

	"iseq/internal/alphabet"
	"iseq/internal/gencode"
	"iseq/internal/span"
	"iseq/internal/state"
)

// ErrWrongStateKind is returned when a fragment holds a state its decoder
// cannot handle. It signals a construction bug upstream.
var ErrWrongStateKind = errors.New("wrong state kind")

// Segment is one homologous or non-homologous stretch of a path.
type Segment struct {
	Seq        span.Interval // symbol positions
	Steps      span.Interval // step positions
	Homologous bool
}

// Segments partitions path into alternating segments. The flag turns on at
// the first core match state (or at T if it never did) and off at E. Empty
// segments are skipped, so a path with no emission yields none.
func Segments(path state.Path) []Segment {
	var out []Segment
	fragStart, fragStop := 0, 0
	stepStart := 0
	homologous := false
	for i, st := range path {
		r := st.State.Role()
		change := (!homologous && r == state.CoreMatch) ||
			(homologous && r == state.End) ||
			(!homologous && r == state.Terminal)
		if change {
			if fragStart < fragStop {
				out = append(out, Segment{
					Seq:        span.New(fragStart, fragStop),
					Steps:      span.New(stepStart, i),
					Homologous: homologous,
				})
			}
			fragStart = fragStop
			stepStart = i
			homologous = !homologous
		}
		fragStop += st.Len
	}
	return out
}

// Fragment is a subsequence with the path that emitted it.
type Fragment struct {
	Seq        []byte
	Path       state.Path
	Homologous bool
}

// Item pairs one step with the symbols it consumed.
type Item struct {
	Step state.Step
	Seq  []byte
}

// Items walks the fragment step by step.
func (f *Fragment) Items() []Item {
	out := make([]Item, 0, len(f.Path))
	pos := 0
	for _, st := range f.Path {
		out = append(out, Item{Step: st, Seq: f.Seq[pos : pos+st.Len]})
		pos += st.Len
	}
	return out
}

// DecodeCodons hardens every frame or codon step into the most likely codon,
// giving a fragment over the same base alphabet where each emitting step
// consumes exactly three symbols.
func (f *Fragment) DecodeCodons() (*Fragment, error) {
	out := &Fragment{Homologous: f.Homologous}
	for _, it := range f.Items() {
		var (
			c   gencode.Codon
			abc *alphabet.Alphabet
		)
		switch s := it.Step.State.(type) {
		case *state.Mute:
			out.Path = append(out.Path, state.Step{State: s, Len: 0})
			continue
		case *state.Frame:
			c, _ = s.Decode(it.Seq)
			abc = s.Alphabet()
		case *state.Codon:
			c, _ = s.Decode(it.Seq)
			abc = s.Alphabet()
		case *state.Normal:
			return nil, fmt.Errorf("%w: %s is a %s state", ErrWrongStateKind, s.Name(), s.Kind())
		default:
			return nil, fmt.Errorf("%w: %T", ErrWrongStateKind, s)
		}
		cs, err := state.NewUnitCodon(it.Step.State.Name(), it.Step.State.Role(), abc, c)
		if err != nil {
			return nil, err
		}
		out.Seq = append(out.Seq, c[:]...)
		out.Path = append(out.Path, state.Step{State: cs, Len: 3})
	}
	return out, nil
}

// Translate turns a codon fragment into residues using gc. Every codon step
// becomes a single-residue step.
func (f *Fragment) Translate(gc *gencode.GeneticCode) (*Fragment, error) {
	out := &Fragment{Homologous: f.Homologous}
	amino := gc.Amino()
	for _, it := range f.Items() {
		switch s := it.Step.State.(type) {
		case *state.Mute:
			out.Path = append(out.Path, state.Step{State: state.NewMute(s.Name(), s.Role(), amino), Len: 0})
		case *state.Codon:
			if len(it.Seq) != 3 {
				return nil, fmt.Errorf("%w: codon step %s consumed %d symbols", ErrWrongStateKind, s.Name(), len(it.Seq))
			}
			aa := gc.AminoAcid(gencode.Codon{it.Seq[0], it.Seq[1], it.Seq[2]})
			n, err := state.NewUnitNormal(s.Name(), s.Role(), amino, aa)
			if err != nil {
				return nil, err
			}
			out.Seq = append(out.Seq, aa)
			out.Path = append(out.Path, state.Step{State: n, Len: 1})
		case *state.Normal, *state.Frame:
			return nil, fmt.Errorf("%w: %s is a %s state", ErrWrongStateKind, s.Name(), s.Kind())
		default:
			return nil, fmt.Errorf("%w: %T", ErrWrongStateKind, s)
		}
	}
	return out, nil
}
