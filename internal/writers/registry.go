// internal/writers/registry.go
package writers

import (
	"fmt"
	"sort"

	"iseq/internal/engine"
)

// Starter launches a hit writer goroutine.
type Starter func(s Sinks, bufSize int) (chan<- engine.Hit, <-chan error)

// HitWriters maps an output format to its writer.
var HitWriters = map[string]Starter{
	"gff":   StartGFFWriter,
	"tsv":   StartTSVWriter,
	"json":  StartJSONWriter,
	"jsonl": StartJSONLWriter,
}

// Register adds or replaces a format (last wins).
func Register(format string, fn Starter) { HitWriters[format] = fn }

// Formats lists the registered formats in order.
func Formats() []string {
	out := make([]string, 0, len(HitWriters))
	for f := range HitWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartHitWriter dispatches on format.
func StartHitWriter(format string, s Sinks, bufSize int) (chan<- engine.Hit, <-chan error, error) {
	fn, ok := HitWriters[format]
	if !ok {
		return nil, nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	in, done := fn(s, bufSize)
	return in, done, nil
}
