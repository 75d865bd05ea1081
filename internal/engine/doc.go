// Package engine computes the comparison projections for the desalination
// dashboard: scorecard metrics, RAG colours, storage and energy curve
// interpolation, replacement-cost time series, hybrid composition and the
// chart aggregate.
//
// Every function is a pure projection of its arguments. Source tables are
// passed in explicitly and never mutated, so the functions are safe to call
// concurrently against a shared dataset. Row-level data problems degrade to
// missing or zero contributions; nothing in this package returns an error for
// a structurally valid table.
package engine
