package alphabet

import (
	"errors"
	"testing"
)

func TestInfer(t *testing.T) {
	cases := map[string]string{
		"ACGTNacgt":       "dna",
		"ACGUU":           "rna",
		"PGKEDNNK":        "amino",
		"ACGTX":           "amino",
		"MKVLAAGIVGXWYHH": "amino",
	}
	for seq, want := range cases {
		a, err := Infer([]byte(seq))
		if err != nil {
			t.Fatalf("Infer(%q): %v", seq, err)
		}
		if a.Name() != want {
			t.Fatalf("Infer(%q) = %s want %s", seq, a.Name(), want)
		}
	}
	if _, err := Infer([]byte("ACGT*#")); !errors.Is(err, ErrUnknownAlphabet) {
		t.Fatalf("expected ErrUnknownAlphabet, got %v", err)
	}
}

func TestInferAll(t *testing.T) {
	a, err := InferAll([][]byte{[]byte("ACGT"), []byte("NNAC")})
	if err != nil || a.Name() != "dna" {
		t.Fatalf("InferAll = %v, %v", a, err)
	}
	// T and U together fit none of the canonical alphabets (U is not a residue).
	if _, err := InferAll([][]byte{[]byte("ACGT"), []byte("ACGU")}); !errors.Is(err, ErrUnknownAlphabet) {
		t.Fatalf("mixed T/U: err = %v", err)
	}
}

func TestIndex(t *testing.T) {
	a := DNA()
	for i, c := range []byte("ACGT") {
		got, ok := a.Index(c)
		if !ok || got != i {
			t.Fatalf("Index(%c) = %d,%v", c, got, ok)
		}
		if low, _ := a.Index(c + 32); low != i {
			t.Fatalf("lower-case %c not folded", c)
		}
	}
	if i, ok := a.Index('N'); !ok || i != a.Len() {
		t.Fatalf("wildcard index = %d,%v", i, ok)
	}
	if _, ok := a.Index('U'); ok {
		t.Fatalf("U must not be DNA")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	if _, err := New("bad", "AAC", 'N'); err == nil {
		t.Fatalf("duplicate symbols accepted")
	}
	if _, err := New("bad", "ACN", 'N'); err == nil {
		t.Fatalf("wildcard among symbols accepted")
	}
}

func TestByName(t *testing.T) {
	if a, err := ByName("amino"); err != nil || a != Amino() {
		t.Fatalf("ByName(amino) = %v, %v", a, err)
	}
	if _, err := ByName("coffee"); !errors.Is(err, ErrUnknownAlphabet) {
		t.Fatalf("ByName(coffee) err = %v", err)
	}
}
