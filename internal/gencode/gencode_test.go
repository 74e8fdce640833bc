package gencode

import (
	"testing"

	"iseq/internal/alphabet"
)

func TestStandardTable(t *testing.T) {
	g := Standard(alphabet.DNA())
	cases := map[string]byte{
		"ATG": 'M', "TGG": 'W', "AAG": 'K', "CCT": 'P',
		"TAA": '*', "TAG": '*', "TGA": '*', "GGG": 'G',
	}
	for cod, want := range cases {
		if got := g.AminoAcid(Codon{cod[0], cod[1], cod[2]}); got != want {
			t.Fatalf("%s -> %c want %c", cod, got, want)
		}
	}
	if g.Name() != "Standard" || g.ID() != 1 {
		t.Fatalf("name/id = %q/%d", g.Name(), g.ID())
	}
}

func TestCodonsRoundTrip(t *testing.T) {
	for _, base := range []*alphabet.Alphabet{alphabet.DNA(), alphabet.RNA()} {
		g := Standard(base)
		total := 0
		for _, a := range base.Symbols() {
			for _, b := range base.Symbols() {
				for _, c := range base.Symbols() {
					cod := Codon{a, b, c}
					aa := g.AminoAcid(cod)
					found := false
					for _, x := range g.Codons(aa) {
						if x == cod {
							found = true
						}
					}
					if !found {
						t.Fatalf("%s: codon %s missing from Codons(%c)", base, cod, aa)
					}
				}
			}
		}
		for _, aa := range append(alphabet.Amino().Symbols(), '*') {
			total += len(g.Codons(aa))
		}
		if total != 64 {
			t.Fatalf("%s: codon sets cover %d codons", base, total)
		}
	}
}

func TestKnownCounts(t *testing.T) {
	g := Standard(alphabet.RNA())
	if n := len(g.Codons('L')); n != 6 {
		t.Fatalf("L has %d codons", n)
	}
	if n := len(g.Codons('W')); n != 1 {
		t.Fatalf("W has %d codons", n)
	}
	if got := g.Codons('K'); len(got) != 2 || got[0].String() != "AAA" || got[1].String() != "AAG" {
		t.Fatalf("K codons = %v", got)
	}
}

func TestDegenerate(t *testing.T) {
	g := Standard(alphabet.DNA())
	// GGN is always glycine.
	if aa := g.AminoAcid(Codon{'G', 'G', 'N'}); aa != 'G' {
		t.Fatalf("GGN -> %c", aa)
	}
	// AAR is lysine, AAY asparagine, AAN ambiguous.
	if aa := g.AminoAcid(Codon{'A', 'A', 'R'}); aa != 'K' {
		t.Fatalf("AAR -> %c", aa)
	}
	if aa := g.AminoAcid(Codon{'A', 'A', 'N'}); aa != 'X' {
		t.Fatalf("AAN -> %c", aa)
	}
	if aa := g.AminoAcid(Codon{'A', 'A', '#'}); aa != 'X' {
		t.Fatalf("invalid symbol -> %c", aa)
	}
}

func TestAlternativeTables(t *testing.T) {
	g, err := New(alphabet.DNA(), alphabet.Amino(), 2)
	if err != nil {
		t.Fatalf("New(2): %v", err)
	}
	if aa := g.AminoAcid(Codon{'T', 'G', 'A'}); aa != 'W' {
		t.Fatalf("vertebrate mito TGA -> %c", aa)
	}
	if _, err := New(alphabet.DNA(), alphabet.Amino(), 17); err == nil {
		t.Fatalf("table 17 should not exist")
	}
	if g8, err := New(alphabet.DNA(), alphabet.Amino(), 8); err != nil || g8.ID() != 1 {
		t.Fatalf("alias 8 -> %v, %v", g8, err)
	}
	if _, err := New(alphabet.Amino(), alphabet.Amino(), 1); err == nil {
		t.Fatalf("amino base alphabet accepted")
	}
}

func TestTranslate(t *testing.T) {
	g := Standard(alphabet.RNA())
	got := string(g.Translate([]byte("CCUGGUAAAGAAGAUAAUAACAAAG")))
	if got != "PGKEDNNK" {
		t.Fatalf("Translate = %q", got)
	}
}
