// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"iseq/internal/engine"
	"iseq/pkg/api"
)

// ToAPIHit converts a domain Hit to the stable wire schema (v1).
func ToAPIHit(h engine.Hit, id string) api.HitV1 {
	return api.HitV1{
		ID:          id,
		SequenceID:  h.SequenceID,
		Start:       h.Start + 1,
		End:         h.End,
		Length:      h.Length(),
		ProfileName: dash(h.ProfileName),
		ProfileAcc:  dash(h.ProfileAcc),
		ProfileAlph: h.ProfileAlph,
		TargetAlph:  h.TargetAlph,
		Window:      h.Window,
		Epsilon:     h.Epsilon,
		LogLik:      h.LogLik,
		States:      append([]string(nil), h.States...),
		Seq:         h.Seq,
		Codons:      h.Codons,
		Amino:       h.Amino,
		SourceFile:  h.SourceFile,
	}
}

// WriteJSON writes a single JSON array of v1 hits (pretty-indented).
func WriteJSON(w io.Writer, list []api.HitV1) error {
	if list == nil {
		list = []api.HitV1{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
