// internal/fasta/reader.go
package fasta

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"iseq/internal/fileio"
)

// Record is one FASTA entry. ID is the first word of the defline.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// Defline rebuilds the header line without the leading '>'.
func (r Record) Defline() string {
	if r.Desc == "" {
		return r.ID
	}
	return r.ID + " " + r.Desc
}

// Read parses every record from r. Sequence case is preserved.
func Read(r io.Reader) ([]Record, error) {
	template := linear.NewSeq("", nil, alphabet.Protein)
	sc := seqio.NewScanner(biofasta.NewReader(r, template))
	var out []Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("fasta: unexpected sequence type %T", sc.Seq())
		}
		out = append(out, Record{
			ID:   s.Name(),
			Desc: strings.TrimSpace(s.Description()),
			Seq:  append([]byte(nil), alphabet.LettersToBytes(s.Seq)...),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("fasta: %w", err)
	}
	return out, nil
}

// ReadFile reads path ("-" = stdin, gzip aware).
func ReadFile(path string) ([]Record, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	recs, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
