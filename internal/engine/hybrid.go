package engine

import (
	"fmt"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/stages"
)

// Selection holds the user's equipment pick for each hybrid stage. The zero
// value is an empty selection. Selection is a plain value, so copies are
// independent snapshots.
type Selection struct {
	names [hybridSlots]string
}

const hybridSlots = 5

// slot returns the index of stage among the hybrid stages.
func slot(stage stages.Stage) (int, bool) {
	for i, st := range stages.HybridStages {
		if st == stage {
			return i, true
		}
	}
	return 0, false
}

// Set fills the slot for stage. An empty name clears it. It reports false when
// stage is not a hybrid stage.
func (s *Selection) Set(stage stages.Stage, name string) bool {
	i, ok := slot(stage)
	if !ok {
		return false
	}
	s.names[i] = name
	return true
}

// Clear empties the slot for stage.
func (s *Selection) Clear(stage stages.Stage) {
	s.Set(stage, "")
}

// ClearAll empties every slot.
func (s *Selection) ClearAll() {
	s.names = [hybridSlots]string{}
}

// Get returns the name selected for stage.
func (s Selection) Get(stage stages.Stage) (string, bool) {
	i, ok := slot(stage)
	if !ok || s.names[i] == "" {
		return "", false
	}
	return s.names[i], true
}

// Filled counts the filled slots.
func (s Selection) Filled() int {
	n := 0
	for _, name := range s.names {
		if name != "" {
			n++
		}
	}
	return n
}

// Complete reports whether every hybrid stage has a selection.
func (s Selection) Complete() bool {
	return s.Filled() == hybridSlots
}

// CounterLabel renders the fill state, e.g. "3/5 slots filled".
func (s Selection) CounterLabel() string {
	return fmt.Sprintf("%d/%d slots filled", s.Filled(), hybridSlots)
}

// HybridSources are the catalogs a hybrid selection resolves against, in
// search order.
type HybridSources struct {
	Miscellaneous equipment.Table
	Mechanical    equipment.Table
	Electrical    equipment.Table
}

// SourcesFrom picks the hybrid sources out of a dataset.
func SourcesFrom(ds *equipment.Dataset) HybridSources {
	return HybridSources{
		Miscellaneous: ds.Miscellaneous,
		Mechanical:    ds.Mechanical,
		Electrical:    ds.Electrical,
	}
}

func (h HybridSources) ordered() []equipment.Table {
	return []equipment.Table{h.Miscellaneous, h.Mechanical, h.Electrical}
}

// Lookup finds name in miscellaneous, then mechanical, then electrical.
func (h HybridSources) Lookup(name string) (equipment.Row, bool) {
	for _, t := range h.ordered() {
		if row, ok := t.Find(name); ok {
			return row, true
		}
	}
	return equipment.Row{}, false
}

// ComposeHybrid builds the one-row-per-stage hybrid table. It reports false
// when any slot is empty or any selected name resolves in none of the
// sources; a partial table is never returned.
func ComposeHybrid(sel Selection, sources HybridSources) (equipment.Table, bool) {
	if !sel.Complete() {
		return nil, false
	}

	table := make(equipment.Table, 0, hybridSlots)
	for _, name := range sel.names {
		row, ok := sources.Lookup(name)
		if !ok {
			return nil, false
		}
		table = append(table, row)
	}
	return table, true
}

// HybridOptions lists the selectable items for stage: the miscellaneous
// stage members that exist in at least one source table.
func HybridOptions(stage stages.Stage, sources HybridSources) []string {
	var options []string
	for _, name := range stages.Items(equipment.Miscellaneous, stage) {
		if _, ok := sources.Lookup(name); ok {
			options = append(options, name)
		}
	}
	return options
}
