// internal/output/gff.go
package output

import (
	"strconv"

	"iseq/internal/engine"
	"iseq/internal/gff"
)

func formatFloat(x float64) string { return strconv.FormatFloat(x, 'g', 6, 64) }

// GFFItem turns a hit into a feature line keyed by id.
func GFFItem(h engine.Hit, id string) gff.Item {
	return gff.Item{
		SeqID:  h.SequenceID,
		Source: Source,
		Type:   ".",
		Start:  h.Start + 1,
		End:    h.End,
		Score:  "0.0",
		Strand: "+",
		Phase:  ".",
		Attrs: []gff.Attr{
			{Key: "ID", Value: id},
			{Key: "Profile_name", Value: dash(h.ProfileName)},
			{Key: "Profile_acc", Value: dash(h.ProfileAcc)},
			{Key: "Profile_alph", Value: h.ProfileAlph},
			{Key: "Target_alph", Value: h.TargetAlph},
			{Key: "Window", Value: strconv.Itoa(h.Window)},
			{Key: "Epsilon", Value: formatFloat(h.Epsilon)},
			{Key: "LogLik", Value: formatFloat(h.LogLik)},
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
