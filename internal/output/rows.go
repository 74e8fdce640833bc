// internal/output/rows.go
package output

import (
	"fmt"

	"iseq/internal/engine"
)

// FormatRowTSV returns one tsv row (no trailing newline). Start is 1-based.
func FormatRowTSV(h engine.Hit, id string) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%s\t%s\t%d\t%s\t%s\t%s",
		id, h.SequenceID,
		h.Start+1, h.End, h.Length(),
		dash(h.ProfileName), dash(h.ProfileAcc),
		h.Window, formatFloat(h.Epsilon), formatFloat(h.LogLik),
		h.SourceFile,
	)
}
