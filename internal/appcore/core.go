// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"iseq/internal/alphabet"
	"iseq/internal/cli"
	"iseq/internal/cliutil"
	"iseq/internal/cmdutil"
	"iseq/internal/engine"
	"iseq/internal/fasta"
	"iseq/internal/fileio"
	"iseq/internal/hmmer"
	"iseq/internal/output"
	"iseq/internal/pipeline"
	"iseq/internal/profile"
	"iseq/internal/runutil"
	"iseq/internal/writers"
)

type targetFile struct {
	path string
	recs []fasta.Record
}

// loadTargets reads every target file and infers their common alphabet.
func loadTargets(paths []string) ([]targetFile, *alphabet.Alphabet, int, error) {
	var (
		files []targetFile
		seqs  [][]byte
		ids   []string
	)
	for _, p := range paths {
		recs, err := fasta.ReadFile(p)
		if err != nil {
			return nil, nil, 0, err
		}
		files = append(files, targetFile{path: p, recs: recs})
		for _, r := range recs {
			seqs = append(seqs, r.Seq)
			ids = append(ids, r.ID)
		}
	}
	if len(seqs) == 0 {
		return files, nil, 0, nil
	}
	abc, err := alphabet.InferAll(seqs)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("targets: %w", err)
	}
	return files, abc, len(runutil.DuplicateIDs(ids)), nil
}

// RunScan scans every target against every profile of o.Profile. Per-target
// failures are warnings; the exit code is 3 only when every target failed or
// an I/O error occurred.
func RunScan(parent context.Context, stdout, stderr io.Writer, o cli.ScanOptions, wf WriterFactory) int {
	kind, popts, err := o.ProfileOptions()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	paths, err := cliutil.ExpandPositionals(o.Targets)
	if err == nil {
		err = cliutil.CheckInputs(append([]string{o.Profile}, paths...))
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	files, abc, dups, err := loadTargets(paths)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	var nrec, nres int
	for _, tf := range files {
		nrec += len(tf.recs)
		for _, r := range tf.recs {
			nres += len(r.Seq)
		}
	}
	cmdutil.Infof(stderr, o.Quiet, "read %s target(s), %s of sequence, from %s file(s)",
		cmdutil.Count(nrec), cmdutil.Size(int64(nres)), cmdutil.Count(len(files)))
	if dups > 0 {
		cmdutil.Warnf(stderr, o.Quiet, "%s target ID(s) appear more than once", cmdutil.Count(dups))
	}
	if abc != nil && (kind == profile.KindFrame || kind == profile.KindCodon) {
		if !abc.IsNucleic() {
			fmt.Fprintf(stderr, "error: %s profiles need nucleotide targets, got %s\n", kind, abc)
			return 2
		}
		popts.Base = abc
	}

	thr := runutil.EffectiveThreads(o.Threads)

	out, err := fileio.Create(o.Output, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	sinks := writers.Sinks{Out: out}
	var sides []io.WriteCloser
	for _, side := range []struct {
		path string
		dst  *io.Writer
	}{{o.OCodon, &sinks.Codon}, {o.OAmino, &sinks.Amino}} {
		if side.path == "" {
			continue
		}
		f, err := fileio.Create(side.path, stdout)
		if err != nil {
			_ = out.Close()
			fmt.Fprintln(stderr, "error:", err)
			return 3
		}
		*side.dst = f
		sides = append(sides, f)
	}

	// The report shares stdout, so a table on stdout silences it.
	var rep *bufio.Writer
	if o.Quiet || o.Output == "-" {
		rep = bufio.NewWriter(io.Discard)
	} else {
		rep = bufio.NewWriter(stdout)
	}

	inCh, writeErr, err := wf.Start(sinks, thr*4)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total := 0
	if o.Progress && !o.Quiet {
		total, _ = hmmer.Count(o.Profile)
	}
	bar := cmdutil.StartProgress(stderr, total, o.Progress && !o.Quiet)

	start := time.Now()
	var (
		agg      cmdutil.Stats
		profiles int
		built    int
		perr     error
	)
	perr = forEachModel(o.Profile, func(m *hmmer.Model) error {
		defer bar.Increment()
		profiles++
		prof, err := profile.New(kind, m, popts)
		if err != nil {
			cmdutil.Warnf(stderr, o.Quiet, "profile %s: %v", m.Name(), err)
			return nil
		}
		built++
		for _, w := range runutil.CheckWindow(o.Window, prof.Length(), kind) {
			cmdutil.Warnf(stderr, o.Quiet, "profile %s: %s", m.Name(), w)
		}
		if err := output.WriteTitle(rep, "Profile"); err != nil {
			return err
		}
		if err := output.WriteProfile(rep, m); err != nil {
			return err
		}
		if err := output.WriteTitle(rep, "Targets"); err != nil {
			return err
		}
		eng := engine.New(prof, engine.Config{Window: o.Window, Decode: wf.NeedDecode(kind)})
		for _, tf := range files {
			st, err := cmdutil.RunStream(ctx,
				pipeline.Config{Threads: thr, SourceFile: tf.path},
				tf.recs,
				eng,
				func(it pipeline.Item) error {
					if it.Err != nil {
						cmdutil.Warnf(stderr, o.Quiet, "profile %s / target %s: %v", m.Name(), it.Target.ID, it.Err)
						return nil
					}
					return output.WriteTarget(rep, it.Target, it.Result.Search)
				},
				func(h engine.Hit) error {
					select {
					case inCh <- h:
						return nil
					case <-ctx.Done():
						return ctx.Err()
					}
				},
			)
			agg.Targets += st.Targets
			agg.Failed += st.Failed
			agg.Hits += st.Hits
			if err != nil {
				return err
			}
		}
		return nil
	})
	bar.Finish()

	close(inCh)

	code := 0
	if werr := <-writeErr; werr != nil && !writers.IsBrokenPipe(werr) {
		fmt.Fprintln(stderr, werr)
		code = 3
	}
	if o.Output != "-" && code == 0 {
		fmt.Fprintf(rep, "Writing hits to <%s> file.\n", o.Output)
	}
	if e := rep.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		fmt.Fprintln(stderr, e)
		code = 3
	}
	for _, c := range append(sides, out) {
		if e := c.Close(); e != nil && code == 0 {
			fmt.Fprintln(stderr, e)
			code = 3
		}
	}
	if code != 0 {
		return code
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		if writers.IsBrokenPipe(perr) {
			return 0
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	cmdutil.Infof(stderr, o.Quiet, "scanned %s profile(s) against %s target(s): %s hit(s) in %s",
		cmdutil.Count(profiles), cmdutil.Count(agg.Targets), cmdutil.Count(agg.Hits), cmdutil.Since(start))
	if profiles > 0 && built == 0 {
		fmt.Fprintln(stderr, "error: no profile could be built")
		return 3
	}
	if agg.Targets > 0 && agg.Failed == agg.Targets {
		fmt.Fprintln(stderr, "error: every target failed")
		return 3
	}
	return 0
}

// forEachModel streams the models of path into fn.
func forEachModel(path string, fn func(*hmmer.Model) error) error {
	rc, err := fileio.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	rd := hmmer.NewReader(rc)
	for {
		m, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := fn(m); err != nil {
			return err
		}
	}
}
