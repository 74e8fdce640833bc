// internal/output/report.go
package output

import (
	"fmt"
	"io"
	"strings"

	"iseq/internal/fasta"
	"iseq/internal/hmmer"
	"iseq/internal/result"
)

// SummaryWidth bounds the sequence line of the report.
const SummaryWidth = 79

// SequenceSummary elides the middle of sequences longer than SummaryWidth.
func SequenceSummary(seq string) string {
	if len(seq) <= SummaryWidth {
		return seq
	}
	const middle = " ... "
	begin := (SummaryWidth - len(middle)) / 2
	end := begin + (SummaryWidth-len(middle))%2
	return seq[:begin] + middle + seq[len(seq)-end:]
}

// WriteTitle prints an underlined section title followed by a blank line.
func WriteTitle(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	return err
}

// WriteProfile prints the header block of a model.
func WriteProfile(w io.Writer, m *hmmer.Model) error {
	_, err := fmt.Fprintf(w,
		"Header       %s\nAlphabet     %s\nModel length %d\nName         %s\nAccession    %s\n\n",
		m.Header, m.Alphabet, m.M(), m.Name(), m.Acc(),
	)
	return err
}

// WriteTarget prints the defline, the sequence summary and every window of
// rs with its homologous fragments. Positions are 1-based and inclusive.
func WriteTarget(w io.Writer, rec fasta.Record, rs *result.SearchResults) error {
	if _, err := fmt.Fprintf(w, ">%s\n%s\n", rec.Defline(), SequenceSummary(string(rec.Seq))); err != nil {
		return err
	}
	for i, res := range rs.Results {
		win := rs.Windows[i]
		if _, err := fmt.Fprintf(w, "\nFound %d homologous fragment(s) within the range [%d, %d].\n",
			res.Homologous(), win.Start+1, win.Stop); err != nil {
			return err
		}
		j := 0
		for k, f := range res.Fragments {
			if !f.Homologous {
				continue
			}
			j++
			iv := res.Intervals[k].Shift(win.Start)
			states := make([]string, 0, len(f.Path))
			seqs := make([]string, 0, len(f.Path))
			for _, it := range f.Items() {
				states = append(states, it.Step.State.Name())
				seqs = append(seqs, string(it.Seq))
			}
			if _, err := fmt.Fprintf(w, "Fragment=%d; Position=[%d, %d]\n%s\n%s\n",
				j, iv.Start+1, iv.Stop, strings.Join(states, "\t"), strings.Join(seqs, "\t")); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
