package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"iseq/internal/version"
)

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	for _, args := range [][]string{{"version"}, {"--version"}} {
		code, out, _ := run(args...)
		if code != 0 || out != "iseq version "+version.Version+"\n" {
			t.Fatalf("%v: code=%d out=%q", args, code, out)
		}
	}
}

func TestHelp(t *testing.T) {
	code, out, _ := run("--help")
	if code != 0 || !strings.Contains(out, "scan") || !strings.Contains(out, "evalue") {
		t.Fatalf("help: code=%d\n%s", code, out)
	}
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"nope"},
		{"scan"},
		{"scan", "--window", "-3", "a.hmm", "b.fa"},
		{"scan", "--no-such-flag", "a.hmm", "b.fa"},
		{"merge", "only.gff"},
		{"version", "extra"},
	} {
		if code, _, _ := run(args...); code != 2 {
			t.Fatalf("%v: exit %d, want 2", args, code)
		}
	}
}

func TestScanThenDedup(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "p.fa")
	if err := os.WriteFile(target, []byte(">p1\nMKWAAAAMKW\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.gff")
	code, stdout, stderr := run("scan", "-k", "standard", "-o", out, "../profile/testdata/tiny.hmm", target)
	if code != 0 {
		t.Fatalf("scan exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Found 2 homologous fragment(s)") {
		t.Fatalf("report:\n%s", stdout)
	}
	code, stdout, stderr = run("dedup", out)
	if code != 0 || strings.Count(stdout, "\tiseq\t") != 2 {
		t.Fatalf("dedup exit %d: %s\n%s", code, stderr, stdout)
	}
}
