package cmdutil

import (
	"context"

	"iseq/internal/engine"
	"iseq/internal/fasta"
	"iseq/internal/pipeline"
)

// Stats counts the outcome of one RunStream call.
type Stats struct {
	Targets int
	Failed  int
	Hits    int
}

// RunStream runs the shared pipeline over targets, calls visit for every
// target (failed ones included) and streams hits via send. It returns the
// counts and the first error that stopped the run.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	targets []fasta.Record,
	sc pipeline.Scanner,
	visit func(pipeline.Item) error,
	send func(engine.Hit) error,
) (Stats, error) {
	var st Stats
	err := pipeline.ForEachResult(ctx, cfg, targets, sc, func(it pipeline.Item) error {
		st.Targets++
		if vErr := visit(it); vErr != nil {
			return vErr
		}
		if it.Err != nil {
			st.Failed++
			return nil
		}
		for _, h := range it.Result.Hits {
			if err := send(h); err != nil {
				return err
			}
			st.Hits++
		}
		return nil
	})
	return st, err
}
