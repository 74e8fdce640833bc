// internal/fasta/reader_test.go
package fasta

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plain = `>seq1 first record
ACGT
acgt
>seq2
NNnn
`

func writeGz(t *testing.T, name string, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(p)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	gw.Close()
	fh.Close()
	return p
}

func TestRead(t *testing.T) {
	recs, err := Read(strings.NewReader(plain))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].ID != "seq1" || recs[0].Desc != "first record" || string(recs[0].Seq) != "ACGTacgt" {
		t.Fatalf("record 0 = %+v", recs[0])
	}
	if recs[0].Defline() != "seq1 first record" || recs[1].Defline() != "seq2" {
		t.Fatalf("deflines %q %q", recs[0].Defline(), recs[1].Defline())
	}
}

func TestReadFileGzip(t *testing.T) {
	gzPath := writeGz(t, "test.fa.gz", plain)
	recs, err := ReadFile(gzPath)
	if err != nil {
		t.Fatalf("read gz: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "seq1" || recs[1].ID != "seq2" {
		t.Fatalf("gzip parse failed, recs=%v", recs)
	}
}

func TestReadFileStdin(t *testing.T) {
	// fake stdin by swapping os.Stdin
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() { io.WriteString(w, plain); w.Close() }()

	recs, err := ReadFile("-")
	if err != nil {
		t.Fatalf("read stdin: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", len(recs))
	}
}

func TestWriterWraps(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Width)
	seq := bytes.Repeat([]byte("A"), 61)
	if err := w.Write("item1", seq); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 || lines[0] != ">item1" || len(lines[1]) != 60 || lines[2] != "A" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	back, err := Read(&buf)
	if err != nil || len(back) != 1 || len(back[0].Seq) != 61 {
		t.Fatalf("read back: %v %+v", err, back)
	}
}
