package hmmscan

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Score is one E-value/score/bias triple, kept as printed.
type Score struct {
	EValue, Score, Bias string
}

// Row is one line of a --tblout table.
type Row struct {
	TargetName, TargetAcc string
	QueryName, QueryAcc   string
	Full                  Score
	BestDomain            Score
	Description           string
}

// Key identifies a row the way hits are looked up: the query is the
// sequence, the target is the profile.
type Key struct {
	Query, Target, TargetAcc string
}

func (r Row) Key() Key { return Key{Query: r.QueryName, Target: r.TargetName, TargetAcc: r.TargetAcc} }

type Table struct {
	Rows  []Row
	index map[Key]int
}

// Find looks a row up; acc "-" matches a missing accession.
func (t *Table) Find(query, target, acc string) (Row, bool) {
	i, ok := t.index[Key{Query: query, Target: target, TargetAcc: acc}]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// ParseTblout reads a whitespace-separated table, skipping # comments. The
// last column (description) may contain spaces.
func ParseTblout(r io.Reader) (*Table, error) {
	t := &Table{index: make(map[Key]int)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 18 {
			return nil, fmt.Errorf("tblout line %d: %d columns, want at least 18", n, len(f))
		}
		row := Row{
			TargetName: f[0],
			TargetAcc:  f[1],
			QueryName:  f[2],
			QueryAcc:   f[3],
			Full:       Score{EValue: f[4], Score: f[5], Bias: f[6]},
			BestDomain: Score{EValue: f[7], Score: f[8], Bias: f[9]},
		}
		if len(f) > 18 {
			row.Description = strings.Join(f[18:], " ")
		}
		k := row.Key()
		if _, dup := t.index[k]; dup {
			return nil, fmt.Errorf("tblout line %d: duplicate row for %s/%s", n, k.Query, k.Target)
		}
		t.index[k] = len(t.Rows)
		t.Rows = append(t.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
