// Package evalue merges hmmscan significance scores into iseq GFF output.
package evalue

import (
	"context"
	"fmt"
	"io"

	"iseq/internal/fileio"
	"iseq/internal/gff"
	"iseq/internal/hmmscan"
)

// Attributes written by the merge, in this order.
var Attributes = []string{"E-value", "Score", "Bias"}

type Options struct {
	// MaxEValue drops features above the threshold or without an E-value.
	// Zero disables filtering.
	MaxEValue float64
}

// Stats summarizes one merge.
type Stats struct {
	Items, Matched, Dropped int
}

// Apply updates items from tbl. A feature matches the row whose query is its
// ID and whose target is its profile name and accession.
func Apply(items []gff.Item, tbl *hmmscan.Table, opts Options) ([]gff.Item, Stats) {
	st := Stats{Items: len(items)}
	out := make([]gff.Item, 0, len(items))
	for _, it := range items {
		it.Attrs = append([]gff.Attr(nil), it.Attrs...)
		id, _ := it.Get("ID")
		name, _ := it.Get("Profile_name")
		acc, ok := it.Get("Profile_acc")
		if !ok {
			acc = "-"
		}
		if row, ok := tbl.Find(id, name, acc); ok {
			it.Set("E-value", row.Full.EValue)
			it.Set("Score", row.Full.Score)
			it.Set("Bias", row.Full.Bias)
			st.Matched++
		} else {
			for _, k := range Attributes {
				it.Delete(k)
			}
		}
		out = append(out, it)
	}
	if opts.MaxEValue > 0 {
		kept := gff.Filter(out, opts.MaxEValue)
		st.Dropped = len(out) - len(kept)
		out = kept
	}
	return out, st
}

// Merge rewrites the GFF file at path in place.
func Merge(path string, tbl *hmmscan.Table, opts Options) (Stats, error) {
	f, err := gff.ReadFile(path)
	if err != nil {
		return Stats{}, err
	}
	items, st := Apply(f.Items, tbl, opts)
	f.Items = items
	err = fileio.Replace(path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	return st, err
}

// Run presses db when needed, scans the amino FASTA against it and merges
// the table into the GFF file.
func Run(ctx context.Context, cfg hmmscan.Config, db, amino, gffPath string, opts Options) (Stats, error) {
	if !hmmscan.Pressed(db) {
		if err := cfg.Press(ctx, db); err != nil {
			return Stats{}, fmt.Errorf("press %s: %w", db, err)
		}
	}
	tbl, err := cfg.Scan(ctx, db, amino)
	if err != nil {
		return Stats{}, err
	}
	return Merge(gffPath, tbl, opts)
}
