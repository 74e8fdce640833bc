package runutil

import (
	"reflect"
	"runtime"
	"testing"

	"iseq/internal/profile"
)

func TestEffectiveThreads(t *testing.T) {
	if got := EffectiveThreads(3); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	if got := EffectiveThreads(0); got != runtime.NumCPU() {
		t.Fatalf("0 → all CPUs, got %d", got)
	}
}

func TestComputeDecode(t *testing.T) {
	if ComputeDecode(profile.KindStandard, "c.fa", "a.fa", "jsonl") {
		t.Fatal("standard profiles never decode")
	}
	if ComputeDecode(profile.KindFrame, "", "", "gff") {
		t.Fatal("nothing prints codons")
	}
	if !ComputeDecode(profile.KindCodon, "", "a.fa", "gff") || !ComputeDecode(profile.KindFrame, "", "", "json") {
		t.Fatal("decode expected")
	}
}

func TestCheckWindow(t *testing.T) {
	if w := CheckWindow(0, 100, profile.KindFrame); len(w) != 0 {
		t.Fatalf("window 0: %v", w)
	}
	if w := CheckWindow(200, 100, profile.KindFrame); len(w) != 1 {
		t.Fatalf("frame needs 300: %v", w)
	}
	if w := CheckWindow(200, 100, profile.KindStandard); len(w) != 0 {
		t.Fatalf("standard fits: %v", w)
	}
}

func TestDuplicateIDs(t *testing.T) {
	got := DuplicateIDs([]string{"a", "b", "a", "c", "a", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
}
