package fasta

import (
	"io"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Width is the line length used for sequence output.
const Width = 60

// Writer emits FASTA records wrapped at a fixed width.
type Writer struct {
	w *biofasta.Writer
}

func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{w: biofasta.NewWriter(w, width)}
}

// Write emits one record with header ">id".
func (w *Writer) Write(id string, seq []byte) error {
	s := linear.NewSeq(id, alphabet.BytesToLetters(append([]byte(nil), seq...)), alphabet.Protein)
	_, err := w.w.Write(s)
	return err
}

// WriteRecord emits r, description included.
func (w *Writer) WriteRecord(r Record) error {
	s := linear.NewSeq(r.ID, alphabet.BytesToLetters(append([]byte(nil), r.Seq...)), alphabet.Protein)
	s.Desc = r.Desc
	_, err := w.w.Write(s)
	return err
}
