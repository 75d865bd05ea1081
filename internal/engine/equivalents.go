package engine

import (
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

// Equivalent is one row of a cross-system comparison.
type Equivalent struct {
	System   equipment.System `json:"system"`
	Row      equipment.Row    `json:"row"`
	BestCost bool             `json:"best_cost"`
	BestKW   bool             `json:"best_energy"`
	BestLand bool             `json:"best_land"`
}

// Equivalence is the cross-system comparison for one item.
type Equivalence struct {
	Stage stages.Stage `json:"stage"`
	Items []Equivalent `json:"items"`
}

// HasEquivalents reports whether anything besides the item itself matched.
func (e Equivalence) HasEquivalents() bool {
	return len(e.Items) > 1
}

// Equivalents lists the named item followed by every item in the same
// process stage of the other primary system, flagging the lowest cost,
// energy and land area. Only mechanical and electrical have a counterpart.
func Equivalents(ds *equipment.Dataset, name string, system equipment.System) Equivalence {
	stage := stages.StageOf(name, system)
	out := Equivalence{Stage: stage}

	if table, ok := ds.Table(system); ok {
		if row, found := table.Find(name); found {
			out.Items = append(out.Items, Equivalent{System: system, Row: row})
		}
	}

	for _, other := range []equipment.System{equipment.Mechanical, equipment.Electrical} {
		if other == system {
			continue
		}
		table, _ := ds.Table(other)
		for _, row := range table {
			if stages.StageOf(row.Name, other) == stage {
				out.Items = append(out.Items, Equivalent{System: other, Row: row})
			}
		}
	}

	markLowest(out.Items, equipment.Cost, func(e *Equivalent) { e.BestCost = true })
	markLowest(out.Items, equipment.Energy, func(e *Equivalent) { e.BestKW = true })
	markLowest(out.Items, equipment.Land, func(e *Equivalent) { e.BestLand = true })
	return out
}

// markLowest flags every item whose coerced column equals the minimum.
func markLowest(items []Equivalent, pick func(equipment.Row) numeric.Cell, mark func(*Equivalent)) {
	var lowest numeric.Value
	for _, it := range items {
		v, ok := numeric.Coerce(pick(it.Row)).Float()
		if !ok {
			continue
		}
		if cur, set := lowest.Float(); !set || v < cur {
			lowest = numeric.Of(v)
		}
	}

	best, ok := lowest.Float()
	if !ok {
		return
	}
	for i := range items {
		if v, ok := numeric.Coerce(pick(items[i].Row)).Float(); ok && v == best {
			mark(&items[i])
		}
	}
}
