// internal/writers/hits.go
package writers

import (
	"bufio"
	"io"
	"strconv"

	"iseq/internal/engine"
	"iseq/internal/fasta"
	"iseq/internal/gff"
	"iseq/internal/output"
	"iseq/pkg/api"
)

// Sinks are the destinations of one scan. Codon and Amino may be nil.
type Sinks struct {
	Out    io.Writer
	Codon  io.Writer
	Amino  io.Writer
	Prefix string // item ID prefix, "item" when empty
	Header bool   // tsv header row
}

// IDs hands out item IDs in emission order: prefix1, prefix2, ...
type IDs struct {
	prefix string
	n      int
}

func NewIDs(prefix string) *IDs {
	if prefix == "" {
		prefix = "item"
	}
	return &IDs{prefix: prefix}
}

func (g *IDs) Next() string {
	g.n++
	return g.prefix + strconv.Itoa(g.n)
}

// sides writes the codon and amino records of a hit.
type sides struct {
	codon, amino *fasta.Writer
}

func newSides(s Sinks) sides {
	var sd sides
	if s.Codon != nil {
		sd.codon = fasta.NewWriter(s.Codon, fasta.Width)
	}
	if s.Amino != nil {
		sd.amino = fasta.NewWriter(s.Amino, fasta.Width)
	}
	return sd
}

func (sd sides) write(id string, h engine.Hit) error {
	if h.Codons == "" {
		return nil
	}
	if sd.codon != nil {
		if err := sd.codon.Write(id, []byte(h.Codons)); err != nil {
			return err
		}
	}
	if sd.amino != nil {
		if err := sd.amino.Write(id, []byte(h.Amino)); err != nil {
			return err
		}
	}
	return nil
}

// startHits runs emit for every hit in its own goroutine. After the first
// error the channel is drained so senders never block.
func startHits(s Sinks, bufSize int, emit func(id string, h engine.Hit) error, finish func() error) (chan<- engine.Hit, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.Hit, bufSize)
	errCh := make(chan error, 1)

	go func() {
		ids := NewIDs(s.Prefix)
		sd := newSides(s)
		var err error
		for h := range in {
			if err != nil {
				continue
			}
			id := ids.Next()
			if err = emit(id, h); err == nil {
				err = sd.write(id, h)
			}
		}
		if err == nil && finish != nil {
			err = finish()
		}
		errCh <- err
	}()

	return in, errCh
}

// StartGFFWriter streams hits as GFF3 features. The header is written even
// when no hit arrives.
func StartGFFWriter(s Sinks, bufSize int) (chan<- engine.Hit, <-chan error) {
	gw := gff.NewWriter(s.Out, "")
	return startHits(s, bufSize, func(id string, h engine.Hit) error {
		it := output.GFFItem(h, id)
		return gw.Write(&it)
	}, gw.Flush)
}

// StartTSVWriter streams hits as tab-separated rows.
func StartTSVWriter(s Sinks, bufSize int) (chan<- engine.Hit, <-chan error) {
	bw := bufio.NewWriter(s.Out)
	wroteHeader := !s.Header
	header := func() error {
		if wroteHeader {
			return nil
		}
		wroteHeader = true
		_, err := io.WriteString(bw, output.TSVHeader+"\n")
		return err
	}
	return startHits(s, bufSize, func(id string, h engine.Hit) error {
		if err := header(); err != nil {
			return err
		}
		_, err := io.WriteString(bw, output.FormatRowTSV(h, id)+"\n")
		return err
	}, func() error {
		if err := header(); err != nil {
			return err
		}
		return bw.Flush()
	})
}

// StartJSONWriter buffers every hit and writes one JSON array at the end.
func StartJSONWriter(s Sinks, bufSize int) (chan<- engine.Hit, <-chan error) {
	var buf []api.HitV1
	return startHits(s, bufSize, func(id string, h engine.Hit) error {
		buf = append(buf, output.ToAPIHit(h, id))
		return nil
	}, func() error {
		return output.WriteJSON(s.Out, buf)
	})
}
