package gff

import (
	"bytes"
	"strings"
	"testing"
)

const sample = `##gff-version 3
seq1	iseq	.	1	9	0.0	+	.	ID=item1;Profile_name=tiny;E-value=1e-5
seq1	iseq	.	4	6	0.0	+	.	ID=item2;Profile_name=tiny
seq2	iseq	.	2	30	0.0	+	.	ID=item3;Profile_name=tiny;E-value=0.5
`

func TestReadWriteRoundTrip(t *testing.T) {
	f, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if f.Header != Header || len(f.Items) != 3 {
		t.Fatalf("header=%q items=%d", f.Header, len(f.Items))
	}
	it := f.Items[0]
	if it.SeqID != "seq1" || it.Start != 1 || it.End != 9 || it.Strand != "+" {
		t.Fatalf("item = %+v", it)
	}
	if v, ok := it.Get("E-value"); !ok || v != "1e-5" {
		t.Fatalf("E-value = %q %v", v, ok)
	}
	var b bytes.Buffer
	if _, err := f.WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	if b.String() != sample {
		t.Fatalf("round trip:\n%s", b.String())
	}
}

func TestAttributeEditing(t *testing.T) {
	it, err := ParseLine("s\tiseq\t.\t1\t3\t0.0\t+\t.\tID=item1;Window=0")
	if err != nil {
		t.Fatal(err)
	}
	it.Set("Window", "48")
	it.Set("E-value", "0.1")
	if got := it.Attributes(); got != "ID=item1;Window=48;E-value=0.1" {
		t.Fatalf("attributes = %q", got)
	}
	it.Delete("ID")
	it.Delete("missing")
	if got := it.Attributes(); got != "Window=48;E-value=0.1" {
		t.Fatalf("after delete = %q", got)
	}
	if _, err := ParseLine("too\tfew"); err == nil {
		t.Fatalf("short line accepted")
	}
	if _, err := ParseLine("s\tiseq\t.\tx\t3\t0.0\t+\t.\t."); err == nil {
		t.Fatalf("bad start accepted")
	}
}

func TestWriterEmitsHeaderOnce(t *testing.T) {
	var b bytes.Buffer
	w := NewWriter(&b, "")
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if b.String() != Header+"\n" {
		t.Fatalf("empty file = %q", b.String())
	}
	b.Reset()
	w = NewWriter(&b, "")
	for i := 0; i < 2; i++ {
		if err := w.Write(&Item{SeqID: "s", Source: "iseq", Start: 1, End: 2}); err != nil {
			t.Fatal(err)
		}
	}
	_ = w.Flush()
	if n := strings.Count(b.String(), Header); n != 1 {
		t.Fatalf("header written %d times", n)
	}
	if !strings.Contains(b.String(), "s\tiseq\t.\t1\t2\t.\t.\t.\t.") {
		t.Fatalf("dots missing: %q", b.String())
	}
}

func TestFilter(t *testing.T) {
	f, _ := Read(strings.NewReader(sample))
	got := Filter(f.Items, 1e-3)
	if len(got) != 1 {
		t.Fatalf("filtered = %+v", got)
	}
	if id, _ := got[0].Get("ID"); id != "item1" {
		t.Fatalf("kept %s", id)
	}
}

func TestDedup(t *testing.T) {
	items := []Item{
		{SeqID: "a", Start: 5, End: 9},
		{SeqID: "a", Start: 1, End: 4},
		{SeqID: "a", Start: 1, End: 10},
		{SeqID: "a", Start: 3, End: 8},
		{SeqID: "a", Start: 12, End: 20},
		{SeqID: "b", Start: 1, End: 4},
	}
	got := Dedup(items)
	want := [][2]int{{1, 10}, {12, 20}, {1, 4}}
	if len(got) != len(want) {
		t.Fatalf("dedup = %+v", got)
	}
	for i, w := range want {
		if got[i].Start != w[0] || got[i].End != w[1] {
			t.Fatalf("item %d = %+v want %v", i, got[i], w)
		}
	}
	if got[2].SeqID != "b" {
		t.Fatalf("sequence order lost: %+v", got)
	}
}
