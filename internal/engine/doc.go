// Package engine scans one target sequence against one profile and turns the
// stitched homologous fragments into hits. It never imports app, writers,
// cli, or pipeline; keep it domain-only.
//
// External outputs must not depend on the internal shape here; use pkg/api
// for stable wire types (JSONL v1).
package engine
