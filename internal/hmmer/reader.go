// Package hmmer reads profile HMMs in the HMMER3 text format.
//
// Probabilities in the file are stored as negative natural logarithms with
// "*" for zero; the reader converts them to natural-log probabilities.
package hmmer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"iseq/internal/alphabet"
	"iseq/internal/fileio"
	"iseq/internal/lprob"
	"iseq/internal/model"
)

// ErrFormat reports a malformed profile.
var ErrFormat = errors.New("malformed HMMER3 profile")

// Model is one parsed profile.
type Model struct {
	Header   string
	Meta     map[string]string
	keys     []string
	Symbols  string
	Alphabet *alphabet.Alphabet
	Compo    []float64

	insert [][]float64 // 0..M
	match  [][]float64 // 1..M, index 0 unused
	trans  []model.Transitions
}

// M is the number of match states.
func (m *Model) M() int { return len(m.match) - 1 }

func (m *Model) Name() string { return m.Get("NAME") }
func (m *Model) Acc() string  { return m.Get("ACC") }

// Get returns a header field, or "-" when absent.
func (m *Model) Get(key string) string {
	if v, ok := m.Meta[key]; ok && v != "" {
		return v
	}
	return "-"
}

// Keys lists header fields in file order.
func (m *Model) Keys() []string { return append([]string(nil), m.keys...) }

// Match returns the emission log-probabilities of node k (1..M).
func (m *Model) Match(k int) []float64 { return append([]float64(nil), m.match[k]...) }

// Insert returns the insert emission log-probabilities of node k (0..M).
func (m *Model) Insert(k int) []float64 { return append([]float64(nil), m.insert[k]...) }

// Trans returns the transitions leaving node k (0..M); node 0 is B.
func (m *Model) Trans(k int) model.Transitions { return m.trans[k] }

// Reader streams models from an HMMER3 text file.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Reader{sc: sc}
}

func (r *Reader) next() (string, bool) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimRight(r.sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line, true
	}
	return "", false
}

func (r *Reader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, r.line, fmt.Sprintf(format, args...))
}

// Read returns the next model, or io.EOF when the input is exhausted.
func (r *Reader) Read() (*Model, error) {
	line, ok := r.next()
	if !ok {
		if err := r.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	if !strings.HasPrefix(line, "HMMER3") {
		return nil, r.errorf("expected HMMER3 header, got %q", line)
	}
	m := &Model{Header: line, Meta: make(map[string]string)}

	// Meta section up to the HMM line.
	for {
		line, ok = r.next()
		if !ok {
			return nil, r.errorf("unexpected end of file in header")
		}
		key, val := splitField(line)
		if key == "HMM" {
			m.Symbols = strings.Join(strings.Fields(val), "")
			break
		}
		if _, dup := m.Meta[key]; !dup {
			m.keys = append(m.keys, key)
		}
		m.Meta[key] = val
	}
	if err := m.resolveAlphabet(); err != nil {
		return nil, r.errorf("%v", err)
	}
	k := len(m.Symbols)

	// Transition column header.
	if _, ok = r.next(); !ok {
		return nil, r.errorf("missing transition header")
	}

	line, ok = r.next()
	if !ok {
		return nil, r.errorf("missing node 0")
	}
	if f := strings.Fields(line); len(f) > 0 && f[0] == "COMPO" {
		vals, err := r.parseValues(f[1:], k)
		if err != nil {
			return nil, err
		}
		m.Compo = vals
		if line, ok = r.next(); !ok {
			return nil, r.errorf("missing node 0")
		}
	}
	ins, err := r.parseValues(strings.Fields(line), k)
	if err != nil {
		return nil, err
	}
	tr, err := r.parseTrans()
	if err != nil {
		return nil, err
	}
	m.insert = append(m.insert, ins)
	m.match = append(m.match, nil)
	m.trans = append(m.trans, tr)

	for {
		line, ok = r.next()
		if !ok {
			return nil, r.errorf("missing // terminator")
		}
		if strings.HasPrefix(line, "//") {
			break
		}
		f := strings.Fields(line)
		node, err := strconv.Atoi(f[0])
		if err != nil || node != len(m.match) {
			return nil, r.errorf("expected node %d, got %q", len(m.match), f[0])
		}
		if len(f) < 1+k {
			return nil, r.errorf("node %d: %d match values, want %d", node, len(f)-1, k)
		}
		mat, err := r.parseValues(f[1:1+k], k)
		if err != nil {
			return nil, err
		}
		if line, ok = r.next(); !ok {
			return nil, r.errorf("node %d: missing insert emissions", node)
		}
		ins, err := r.parseValues(strings.Fields(line), k)
		if err != nil {
			return nil, err
		}
		tr, err := r.parseTrans()
		if err != nil {
			return nil, err
		}
		m.match = append(m.match, mat)
		m.insert = append(m.insert, ins)
		m.trans = append(m.trans, tr)
	}
	if leng, ok := m.Meta["LENG"]; ok {
		if n, err := strconv.Atoi(leng); err != nil || n != m.M() {
			return nil, r.errorf("LENG %s but %d nodes", leng, m.M())
		}
	}
	return m, nil
}

func (r *Reader) parseTrans() (model.Transitions, error) {
	line, ok := r.next()
	if !ok {
		return model.Transitions{}, r.errorf("missing transitions")
	}
	v, err := r.parseValues(strings.Fields(line), 7)
	if err != nil {
		return model.Transitions{}, err
	}
	return model.Transitions{MM: v[0], MI: v[1], MD: v[2], IM: v[3], II: v[4], DM: v[5], DD: v[6]}, nil
}

func (r *Reader) parseValues(fields []string, n int) ([]float64, error) {
	if len(fields) != n {
		return nil, r.errorf("got %d values, want %d", len(fields), n)
	}
	out := make([]float64, n)
	for i, f := range fields {
		if f == "*" {
			out[i] = lprob.Zero()
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, r.errorf("bad value %q", f)
		}
		out[i] = -v
	}
	return out, nil
}

func (m *Model) resolveAlphabet() error {
	if alph, ok := m.Meta["ALPH"]; ok {
		a, err := alphabet.ByName(alph)
		if err != nil {
			return err
		}
		m.Alphabet = a
	} else {
		for _, a := range []*alphabet.Alphabet{alphabet.DNA(), alphabet.RNA(), alphabet.Amino()} {
			if string(a.Symbols()) == strings.ToUpper(m.Symbols) {
				m.Alphabet = a
			}
		}
		if m.Alphabet == nil {
			return fmt.Errorf("%w: symbols %q", alphabet.ErrUnknownAlphabet, m.Symbols)
		}
	}
	if string(m.Alphabet.Symbols()) != strings.ToUpper(m.Symbols) {
		return fmt.Errorf("HMM symbols %q do not match %s alphabet", m.Symbols, m.Alphabet)
	}
	return nil
}

func splitField(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

// ReadAll parses every model in r.
func ReadAll(r io.Reader) ([]*Model, error) {
	rd := NewReader(r)
	var out []*Model
	for {
		m, err := rd.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
}

// ReadFile parses every model in path ("-" = stdin, gzip aware).
func ReadFile(path string) ([]*Model, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	ms, err := ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

// Count returns the number of models in path without keeping them.
func Count(path string) (int, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "//") {
			n++
		}
	}
	return n, sc.Err()
}
