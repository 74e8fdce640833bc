package engine

import (
	"fmt"

	"iseq/internal/profile"
	"iseq/internal/result"
)

type Config struct {
	// Window is the scan window length; 0 decodes the whole target at once.
	Window int
	// Decode fills Hit.Codons and Hit.Amino for profiles over codons.
	Decode bool
}

type Engine struct {
	p   profile.Profile
	cfg Config
}

func New(p profile.Profile, c Config) *Engine { return &Engine{p: p, cfg: c} }

func (e *Engine) Profile() profile.Profile { return e.p }

// Result is the outcome of scanning one target.
type Result struct {
	SequenceID string
	Search     *result.SearchResults
	Hits       []Hit
}

// Scan searches seq and returns its stitched hits in target order of
// finalization.
func (e *Engine) Scan(seqID string, seq []byte) (Result, error) {
	rs, err := e.p.Search(seq, e.cfg.Window)
	if err != nil {
		return Result{}, fmt.Errorf("target %s: %w", seqID, err)
	}
	res := Result{SequenceID: seqID, Search: rs}

	profAlph := e.p.Alphabet().Name()
	tr, isCodon := e.p.(profile.Translator)
	if isCodon {
		profAlph = tr.GeneticCode().Amino().Name()
	}
	opts := e.p.Options()

	for _, h := range rs.Hits() {
		hit := Hit{
			SequenceID:  seqID,
			ProfileName: e.p.Name(),
			ProfileAcc:  e.p.Accession(),
			ProfileAlph: profAlph,
			TargetAlph:  e.p.Alphabet().Name(),
			Start:       h.Interval.Start,
			End:         h.Interval.Stop,
			Window:      e.cfg.Window,
			WindowIndex: h.Window,
			Epsilon:     opts.Epsilon,
			LogLik:      h.LogLik,
			States:      h.Fragment.Path.Names(),
			Seq:         string(h.Fragment.Seq),
		}
		if isCodon && e.cfg.Decode {
			codons, err := h.Fragment.DecodeCodons()
			if err != nil {
				return Result{}, fmt.Errorf("target %s: %w", seqID, err)
			}
			amino, err := codons.Translate(tr.GeneticCode())
			if err != nil {
				return Result{}, fmt.Errorf("target %s: %w", seqID, err)
			}
			hit.Codons = string(codons.Seq)
			hit.Amino = string(amino.Seq)
		}
		res.Hits = append(res.Hits, hit)
	}
	return res, nil
}
