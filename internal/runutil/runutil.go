// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"

	"iseq/internal/profile"
)

// EffectiveThreads maps 0 (or less) to the number of CPUs.
func EffectiveThreads(threads int) int {
	if threads > 0 {
		return threads
	}
	return runtime.NumCPU()
}

// ComputeDecode tells the engine whether to harden codons and amino acids.
// Only frame and codon profiles carry them, and only the side FASTA files
// and the JSON formats print them.
func ComputeDecode(kind profile.Kind, ocodon, oamino, format string) bool {
	if kind != profile.KindFrame && kind != profile.KindCodon {
		return false
	}
	return ocodon != "" || oamino != "" || format == "json" || format == "jsonl"
}

// CheckWindow warns when a non-zero window is too short to hold one full
// pass through a profile of length m. Frame and codon profiles consume three
// bases per node.
func CheckWindow(window, m int, kind profile.Kind) []string {
	if window <= 0 {
		return nil
	}
	need := m
	if kind == profile.KindFrame || kind == profile.KindCodon {
		need = 3 * m
	}
	if window < need {
		return []string{fmt.Sprintf("--window %d is shorter than profile length %d; full-length hits will be split", window, need)}
	}
	return nil
}

// DuplicateIDs lists target IDs seen more than once, in first-repeat order.
func DuplicateIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var out []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			out = append(out, id)
		}
	}
	return out
}
