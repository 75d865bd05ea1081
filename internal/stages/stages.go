// Package stages classifies equipment into desalination process stages.
//
// Membership is static reference data keyed by exact equipment names. The
// names must match the workbook byte for byte, so near-duplicates such as
// "Pipes" / "Pipes (total)" and the trailing spaces in "Submersible pump " are
// intentional and must not be normalized.
package stages

import (
	"slices"

	"github.com/desalboard/desalboard/internal/equipment"
)

// Stage is a named phase of the desalination process.
type Stage string

// Process stages in declaration order.
const (
	WaterExtraction Stage = "Water Extraction"
	PreTreatment    Stage = "Pre-Treatment"
	Desalination    Stage = "Desalination"
	PostTreatment   Stage = "Post-Treatment"
	BrineDisposal   Stage = "Brine Disposal"
	Control         Stage = "Control"
	Other           Stage = "Other"
)

// Ordered lists the process stages in declaration order (Other excluded).
//
//nolint:gochecknoglobals // read-only reference data
var Ordered = []Stage{WaterExtraction, PreTreatment, Desalination, PostTreatment, BrineDisposal, Control}

// HybridStages are the stages a hybrid configuration must fill. Control is not
// part of hybrid composition.
//
//nolint:gochecknoglobals // read-only reference data
var HybridStages = []Stage{WaterExtraction, PreTreatment, Desalination, PostTreatment, BrineDisposal}

// Parse maps a stage name to a Stage.
func Parse(s string) (Stage, bool) {
	for _, st := range Ordered {
		if string(st) == s {
			return st, true
		}
	}
	if s == string(Other) {
		return Other, true
	}
	return "", false
}

// entry is one stage and its member equipment names.
type entry struct {
	stage Stage
	items []string
}

// processMap is the per-system stage membership table. Entries are kept in
// declaration order because StageOf returns the first match.
//
//nolint:gochecknoglobals // read-only reference data
var processMap = map[equipment.System][]entry{
	equipment.Mechanical: {
		{WaterExtraction, []string{"250kW aeromotor turbine ", "Submersible pump ", "Wind turbine rotor lock"}},
		{PreTreatment, []string{"Pipes", "Gate valve"}},
		{Desalination, []string{"2 RO membranes in parallel", "Gear and Booster Pump"}},
		{PostTreatment, []string{"Calcite bed contactors"}},
		{BrineDisposal, []string{"Extra storage tank"}},
	},
	equipment.Electrical: {
		{WaterExtraction, []string{"Turbine", "Submersible pump", "Battery (1 day of power)"}},
		{PreTreatment, []string{"Multi-Media Filtration", "Pipes (total)"}},
		{Desalination, []string{"RO membranes in parallel", "Booster Pump"}},
		{PostTreatment, []string{"Calcite bed contactors"}},
		{BrineDisposal, []string{"Brine Well"}},
		{Control, []string{"PLC"}},
	},
	equipment.Miscellaneous: {
		{WaterExtraction, []string{"Piston pump"}},
		{PreTreatment, []string{"Antiscalant (assuming 3g/L of antiscalant)"}},
		{Desalination, []string{
			"2 RO membranes in parallel",
			"RO membranes in parallel",
			"Gear and Booster Pump",
			"Booster Pump",
		}},
		{PostTreatment, []string{
			"Green blend addition",
			"Activated carbon (annual)",
			"55 gallon container is 2500 USD, for 1 million gal/day lasts about 20 days",
		}},
		{BrineDisposal, []string{"Evaporation Pond"}},
	},
}

// StageOf returns the first stage of system whose member set contains name,
// or Other when the system is unknown or nothing matches.
func StageOf(name string, system equipment.System) Stage {
	for _, e := range processMap[system] {
		if slices.Contains(e.items, name) {
			return e.stage
		}
	}
	return Other
}

// Items returns a copy of the equipment names mapped to stage for system.
func Items(system equipment.System, stage Stage) []string {
	for _, e := range processMap[system] {
		if e.stage == stage {
			return slices.Clone(e.items)
		}
	}
	return nil
}
