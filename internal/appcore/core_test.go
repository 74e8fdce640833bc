package appcore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"iseq/internal/cli"
	"iseq/internal/gff"
)

const tinyHMM = "../profile/testdata/tiny.hmm"

func scanOpts(t *testing.T, args ...string) cli.ScanOptions {
	t.Helper()
	o, err := cli.ParseScanArgs(cli.NewFlagSet("scan"), args)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return o
}

func factory(o cli.ScanOptions) HitWriterFactory {
	return NewHitWriterFactory(o.Format, o.Prefix, !o.NoHeader, o.OCodon, o.OAmino)
}

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunScanFrame(t *testing.T) {
	dir := t.TempDir()
	target := write(t, dir, "t.fa", ">n1 first\nCCATGAAATGGCC\n>n2\nGGGGGGGG\n")
	o := scanOpts(t,
		"--output", filepath.Join(dir, "out.gff"),
		"--ocodon", filepath.Join(dir, "codon.fa"),
		"--oamino", filepath.Join(dir, "amino.fa"),
		tinyHMM, target)

	var stdout, stderr bytes.Buffer
	if code := RunScan(context.Background(), &stdout, &stderr, o, factory(o)); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	f, err := gff.ReadFile(o.Output)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Items) == 0 {
		t.Fatalf("no hits; report:\n%s", stdout.String())
	}
	it := f.Items[0]
	if it.SeqID != "n1" || it.Source != "iseq" {
		t.Fatalf("item = %s", it.String())
	}
	if v, _ := it.Get("Target_alph"); v != "dna" {
		t.Fatalf("target alphabet %q", v)
	}
	amino, _ := os.ReadFile(o.OAmino)
	if !strings.HasPrefix(string(amino), ">item1\n") || !strings.Contains(string(amino), "MKW") {
		t.Fatalf("amino fasta = %q", amino)
	}
	rep := stdout.String()
	for _, want := range []string{"Name         tiny", ">n1 first", "Found ", "Writing hits to <"} {
		if !strings.Contains(rep, want) {
			t.Fatalf("report lacks %q:\n%s", want, rep)
		}
	}
	if !strings.Contains(stderr.String(), "scanned 1 profile(s) against 2 target(s)") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "read 2 target(s), 21 B of sequence, from 1 file(s)") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunScanStdoutTable(t *testing.T) {
	dir := t.TempDir()
	target := write(t, dir, "t.fa", ">p1\nMKWAAAAMKW\n")
	o := scanOpts(t, "--kind", "standard", "--output", "-", "--format", "tsv", "-q", tinyHMM, target)
	var stdout, stderr bytes.Buffer
	if code := RunScan(context.Background(), &stdout, &stderr, o, factory(o)); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "id\t") || !strings.HasPrefix(lines[1], "item1\tp1\t1\t3\t") {
		t.Fatalf("stdout:\n%s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("quiet run wrote %q", stderr.String())
	}
}

func TestRunScanRejectsAminoTargetsForFrame(t *testing.T) {
	dir := t.TempDir()
	target := write(t, dir, "t.fa", ">p1\nMKWLLE\n")
	o := scanOpts(t, "--output", filepath.Join(dir, "o.gff"), tinyHMM, target)
	var stdout, stderr bytes.Buffer
	if code := RunScan(context.Background(), &stdout, &stderr, o, factory(o)); code != 2 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
}

func TestRunScanMissingTarget(t *testing.T) {
	o := scanOpts(t, tinyHMM, filepath.Join(t.TempDir(), "none.fa"))
	var stdout, stderr bytes.Buffer
	if code := RunScan(context.Background(), &stdout, &stderr, o, factory(o)); code != 2 {
		t.Fatalf("exit %d", code)
	}
}

func TestRunScanCancelled(t *testing.T) {
	dir := t.TempDir()
	target := write(t, dir, "t.fa", ">n1\nATGAAATGG\n")
	o := scanOpts(t, "-q", "--output", filepath.Join(dir, "o.gff"), tinyHMM, target)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	if code := RunScan(ctx, &stdout, &stderr, o, factory(o)); code != 130 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
}
