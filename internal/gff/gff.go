// Package gff reads and writes the GFF3 feature tables iseq emits.
package gff

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"iseq/internal/fileio"
)

// Header is the mandatory first line.
const Header = "##gff-version 3"

// Attr is one key=value attribute. Order is preserved.
type Attr struct {
	Key, Value string
}

// Item is one feature line. Start is 1-based, End inclusive.
type Item struct {
	SeqID  string
	Source string
	Type   string
	Start  int
	End    int
	Score  string
	Strand string
	Phase  string
	Attrs  []Attr
}

// Get returns the value of key.
func (it *Item) Get(key string) (string, bool) {
	for _, a := range it.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Set replaces key in place or appends it.
func (it *Item) Set(key, value string) {
	for i := range it.Attrs {
		if it.Attrs[i].Key == key {
			it.Attrs[i].Value = value
			return
		}
	}
	it.Attrs = append(it.Attrs, Attr{key, value})
}

// Delete drops key if present.
func (it *Item) Delete(key string) {
	out := it.Attrs[:0]
	for _, a := range it.Attrs {
		if a.Key != key {
			out = append(out, a)
		}
	}
	it.Attrs = out
}

// Attributes renders column 9.
func (it *Item) Attributes() string {
	if len(it.Attrs) == 0 {
		return "."
	}
	parts := make([]string, len(it.Attrs))
	for i, a := range it.Attrs {
		parts[i] = a.Key + "=" + a.Value
	}
	return strings.Join(parts, ";")
}

func (it *Item) String() string {
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s",
		dot(it.SeqID), dot(it.Source), dot(it.Type),
		it.Start, it.End,
		dot(it.Score), dot(it.Strand), dot(it.Phase),
		it.Attributes(),
	)
}

func dot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

// ParseLine parses one tab-separated feature line.
func ParseLine(line string) (Item, error) {
	f := strings.Split(line, "\t")
	if len(f) != 9 {
		return Item{}, fmt.Errorf("gff: %d columns, want 9", len(f))
	}
	start, err := strconv.Atoi(f[3])
	if err != nil {
		return Item{}, fmt.Errorf("gff: start %q: %w", f[3], err)
	}
	end, err := strconv.Atoi(f[4])
	if err != nil {
		return Item{}, fmt.Errorf("gff: end %q: %w", f[4], err)
	}
	it := Item{
		SeqID:  f[0],
		Source: f[1],
		Type:   f[2],
		Start:  start,
		End:    end,
		Score:  f[5],
		Strand: f[6],
		Phase:  f[7],
	}
	if f[8] != "." && f[8] != "" {
		for _, kv := range strings.Split(f[8], ";") {
			if kv == "" {
				continue
			}
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return Item{}, fmt.Errorf("gff: attribute %q has no value", kv)
			}
			it.Attrs = append(it.Attrs, Attr{k, v})
		}
	}
	return it, nil
}

// File is a header plus feature lines.
type File struct {
	Header string
	Items  []Item
}

// Read parses a GFF3 stream. Comment lines other than the first are dropped.
func Read(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	f := &File{Header: Header}
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if n == 1 {
				f.Header = line
			}
			continue
		}
		it, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		f.Items = append(f.Items, it)
	}
	return f, sc.Err()
}

func ReadFile(path string) (*File, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	f, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteTo writes the header and every item.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	gw := NewWriter(w, f.Header)
	for i := range f.Items {
		if err := gw.Write(&f.Items[i]); err != nil {
			return gw.n, err
		}
	}
	err := gw.Flush()
	return gw.n, err
}

// Writer streams items after a header line.
type Writer struct {
	bw     *bufio.Writer
	header string
	wrote  bool
	n      int64
}

// NewWriter writes header ("" = Header) before the first item or on Flush.
func NewWriter(w io.Writer, header string) *Writer {
	if header == "" {
		header = Header
	}
	return &Writer{bw: bufio.NewWriter(w), header: header}
}

func (w *Writer) writeHeader() error {
	if w.wrote {
		return nil
	}
	w.wrote = true
	n, err := fmt.Fprintln(w.bw, w.header)
	w.n += int64(n)
	return err
}

func (w *Writer) Write(it *Item) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	n, err := fmt.Fprintln(w.bw, it.String())
	w.n += int64(n)
	return err
}

func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.bw.Flush()
}

// Filter keeps items whose E-value attribute parses and is at most maxE.
func Filter(items []Item, maxE float64) []Item {
	var out []Item
	for _, it := range items {
		v, ok := it.Get("E-value")
		if !ok {
			continue
		}
		e, err := strconv.ParseFloat(v, 64)
		if err != nil || e > maxE {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Dedup works per sequence: items are sorted by start, the longest feature
// of each start is kept and every following feature that ends inside it is
// dropped. Sequences keep their order of first appearance.
func Dedup(items []Item) []Item {
	rank := make(map[string]int)
	for _, it := range items {
		if _, ok := rank[it.SeqID]; !ok {
			rank[it.SeqID] = len(rank)
		}
	}
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SeqID != b.SeqID {
			return rank[a.SeqID] < rank[b.SeqID]
		}
		return a.Start < b.Start
	})

	var out []Item
	for i := 0; i < len(sorted); {
		best := i
		j := i + 1
		for ; j < len(sorted) && sorted[j].SeqID == sorted[i].SeqID && sorted[j].Start == sorted[i].Start; j++ {
			if sorted[j].End > sorted[best].End {
				best = j
			}
		}
		out = append(out, sorted[best])
		seq, maxEnd := sorted[best].SeqID, sorted[best].End
		i = j
		for i < len(sorted) && sorted[i].SeqID == seq && sorted[i].End <= maxEnd {
			i++
		}
	}
	return out
}
