// internal/appcore/tools.go
package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"iseq/internal/alphabet"
	"iseq/internal/cli"
	"iseq/internal/cmdutil"
	"iseq/internal/evalue"
	"iseq/internal/fasta"
	"iseq/internal/fileio"
	"iseq/internal/gencode"
	"iseq/internal/gff"
	"iseq/internal/hmmscan"
	"iseq/internal/writers"
)

// exitCode maps a run error onto the process exit code.
func exitCode(stderr io.Writer, err error) int {
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}
	fmt.Fprintln(stderr, "error:", err)
	return 3
}

func mergeSummary(stderr io.Writer, quiet bool, path string, st evalue.Stats) {
	cmdutil.Infof(stderr, quiet, "%s: %s of %s hit(s) scored, %s dropped",
		path, cmdutil.Count(st.Matched), cmdutil.Count(st.Items), cmdutil.Count(st.Dropped))
}

// RunPress presses a profile database unless it already is.
func RunPress(ctx context.Context, stdout, stderr io.Writer, o cli.PressOptions) int {
	if err := o.HMMER.Validate(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if !o.Force && hmmscan.Pressed(o.Profile) {
		cmdutil.Infof(stderr, o.Quiet, "%s is already pressed", o.Profile)
		return 0
	}
	if err := o.HMMER.Config().Press(ctx, o.Profile); err != nil {
		return exitCode(stderr, err)
	}
	cmdutil.Infof(stderr, o.Quiet, "pressed %s", o.Profile)
	return 0
}

// RunEValue scores scan hits with hmmscan and merges the scores in place.
func RunEValue(ctx context.Context, stdout, stderr io.Writer, o cli.EValueOptions) int {
	if err := o.Validate(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	st, err := evalue.Run(ctx, o.HMMER.Config(), o.Profile, o.Amino, o.GFF, evalue.Options{MaxEValue: o.MaxEValue})
	if err != nil {
		return exitCode(stderr, err)
	}
	mergeSummary(stderr, o.Quiet, o.GFF, st)
	return 0
}

// RunMerge merges an existing hmmscan table into a GFF file.
func RunMerge(ctx context.Context, stdout, stderr io.Writer, o cli.MergeOptions) int {
	if err := o.Validate(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	rc, err := fileio.Open(o.Tblout)
	if err != nil {
		return exitCode(stderr, err)
	}
	tbl, err := hmmscan.ParseTblout(rc)
	_ = rc.Close()
	if err != nil {
		return exitCode(stderr, fmt.Errorf("%s: %w", o.Tblout, err))
	}
	st, err := evalue.Merge(o.GFF, tbl, evalue.Options{MaxEValue: o.MaxEValue})
	if err != nil {
		return exitCode(stderr, err)
	}
	mergeSummary(stderr, o.Quiet, o.GFF, st)
	return 0
}

// RunTranslate turns a codon FASTA into amino acids.
func RunTranslate(ctx context.Context, stdout, stderr io.Writer, o cli.TranslateOptions) int {
	recs, err := fasta.ReadFile(o.Input)
	if err != nil {
		return exitCode(stderr, err)
	}
	out, err := fileio.Create(o.Output, stdout)
	if err != nil {
		return exitCode(stderr, err)
	}
	fw := fasta.NewWriter(out, fasta.Width)
	codes := map[*alphabet.Alphabet]*gencode.GeneticCode{}
	for _, r := range recs {
		if err := ctx.Err(); err != nil {
			_ = out.Close()
			return exitCode(stderr, err)
		}
		base, err := alphabet.Infer(r.Seq)
		if err == nil && !base.IsNucleic() {
			err = fmt.Errorf("%w: %s is not a codon sequence", alphabet.ErrUnknownAlphabet, base)
		}
		if err != nil {
			_ = out.Close()
			return exitCode(stderr, fmt.Errorf("record %s: %w", r.ID, err))
		}
		gc, ok := codes[base]
		if !ok {
			if gc, err = gencode.New(base, alphabet.Amino(), o.GCode); err != nil {
				_ = out.Close()
				fmt.Fprintln(stderr, "error:", err)
				return 2
			}
			codes[base] = gc
		}
		if err := fw.WriteRecord(fasta.Record{ID: r.ID, Desc: r.Desc, Seq: gc.Translate(r.Seq)}); err != nil {
			_ = out.Close()
			return exitCode(stderr, err)
		}
	}
	return exitCode(stderr, out.Close())
}

// RunDedup drops overlapping features of a GFF file.
func RunDedup(ctx context.Context, stdout, stderr io.Writer, o cli.DedupOptions) int {
	if err := o.Validate(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	f, err := gff.ReadFile(o.Input)
	if err != nil {
		return exitCode(stderr, err)
	}
	items := f.Items
	if o.MaxEValue > 0 {
		items = gff.Filter(items, o.MaxEValue)
	}
	f.Items = gff.Dedup(items)

	out, err := fileio.Create(o.Output, stdout)
	if err != nil {
		return exitCode(stderr, err)
	}
	if _, err := f.WriteTo(out); err != nil {
		_ = out.Close()
		return exitCode(stderr, err)
	}
	return exitCode(stderr, out.Close())
}
