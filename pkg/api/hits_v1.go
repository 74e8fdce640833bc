// pkg/api/hits_v1.go
package api

// HitV1 is the stable JSON/JSONL schema for one homologous fragment.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type HitV1 struct {
	ID          string   `json:"id"`
	SequenceID  string   `json:"sequence_id"`
	Start       int      `json:"start"` // 1-based, inclusive
	End         int      `json:"end"`
	Length      int      `json:"length"`
	ProfileName string   `json:"profile_name"`
	ProfileAcc  string   `json:"profile_acc"`
	ProfileAlph string   `json:"profile_alph"`
	TargetAlph  string   `json:"target_alph"`
	Window      int      `json:"window"`
	Epsilon     float64  `json:"epsilon"`
	LogLik      float64  `json:"loglik"`
	States      []string `json:"states,omitempty"`
	Seq         string   `json:"seq,omitempty"`
	Codons      string   `json:"codons,omitempty"`
	Amino       string   `json:"amino,omitempty"`
	SourceFile  string   `json:"source_file,omitempty"`
}
