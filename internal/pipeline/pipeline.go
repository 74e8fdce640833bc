// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"iseq/internal/engine"
	"iseq/internal/fasta"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads    int    // number of worker goroutines (>=1)
	SourceFile string // copied into every hit
}

// Item is the outcome of one target. A failed target carries Err and the
// batch goes on.
type Item struct {
	Index  int
	Target fasta.Record
	Result engine.Result
	Err    error
}

// ForEachResult scans every target and calls visit once per target, in the
// order of targets. It returns the first visit error or ctx.Err().
func ForEachResult(
	ctx context.Context,
	cfg Config,
	targets []fasta.Record,
	sc Scanner,
	visit func(Item) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan int, cfg.Threads*2)
	results := make(chan Item, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					rec := targets[i]
					res, err := sc.Scan(rec.ID, rec.Seq)
					for k := range res.Hits {
						res.Hits[k].SourceFile = cfg.SourceFile
					}
					select {
					case results <- Item{Index: i, Target: rec, Result: res, Err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: release items strictly in input order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Item)
		next := 0
		for it := range results {
			pending[it.Index] = it
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				if err := visit(ready); err != nil {
					cerr = err
				}
			}
		}
	}()

	// Feed work
feed:
	for i := range targets {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
