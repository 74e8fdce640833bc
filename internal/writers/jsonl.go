// internal/writers/jsonl.go
package writers

import (
	"encoding/json"

	"iseq/internal/engine"
	"iseq/internal/jsonlutil"
	"iseq/internal/output"
)

// StartJSONLWriter streams each hit as one JSON line (v1).
func StartJSONLWriter(s Sinks, bufSize int) (chan<- engine.Hit, <-chan error) {
	ids := NewIDs(s.Prefix)
	sd := newSides(s)
	return jsonlutil.Start[engine.Hit](s.Out, bufSize,
		func(enc *json.Encoder, h engine.Hit) error {
			id := ids.Next()
			if err := enc.Encode(output.ToAPIHit(h, id)); err != nil {
				return err
			}
			return sd.write(id, h)
		},
		IsBrokenPipe,
	)
}
