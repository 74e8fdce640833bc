// Package pipeline fans targets out to a Scanner over a worker pool and hands
// the per-target results back in input order.
//
// The only contract to implement is Scanner (Scan).
// This keeps the pipeline swappable and testable.
package pipeline
