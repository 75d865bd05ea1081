// Package numeric converts raw workbook cells into numbers and renders them
// for display.
//
// Source cells arrive untouched from ingestion: a cost may be 125000, blank,
// or free text such as "$ 2500 per ton"; a lifespan may be 12 or "indefinite".
// Cell keeps that raw form. Coerce is the single total conversion from a Cell
// to a Value, which is either a finite float64 or Missing. Every aggregation in
// the engine goes through Coerce, so no caller parses strings on its own.
package numeric
