// Package equipment holds the plant data model: per-system equipment tables,
// the battery/tank lookup and the salinity and depth energy curves.
//
// All numeric columns are raw numeric.Cell values exactly as ingestion
// delivered them. Tables are treated as immutable once loaded.
package equipment

import (
	"github.com/desalboard/desalboard/internal/numeric"
)

// System identifies one plant configuration or equipment catalog.
type System string

// Known systems.
const (
	Mechanical    System = "mechanical"
	Electrical    System = "electrical"
	Hybrid        System = "hybrid"
	Miscellaneous System = "miscellaneous"
)

// ComparedSystems is the display order of the three compared configurations.
//
//nolint:gochecknoglobals // read-only ordering table
var ComparedSystems = []System{Mechanical, Electrical, Hybrid}

// Label returns the display label, e.g. "Mechanical".
func (s System) Label() string {
	switch s {
	case Mechanical:
		return "Mechanical"
	case Electrical:
		return "Electrical"
	case Hybrid:
		return "Hybrid"
	case Miscellaneous:
		return "Miscellaneous"
	default:
		return string(s)
	}
}

// ParseSystem maps a user-supplied key to a System.
func ParseSystem(s string) (System, bool) {
	switch System(s) {
	case Mechanical, Electrical, Hybrid, Miscellaneous:
		return System(s), true
	default:
		return "", false
	}
}

// Row is one equipment line item.
type Row struct {
	Name          string       `yaml:"name" json:"name"`
	Quantity      numeric.Cell `yaml:"quantity" json:"quantity"`
	CostUSD       numeric.Cell `yaml:"cost_usd" json:"cost_usd"`
	EnergyKW      numeric.Cell `yaml:"energy_kw" json:"energy_kw"`
	LandAreaM2    numeric.Cell `yaml:"land_area_m2" json:"land_area_m2"`
	LifespanYears numeric.Cell `yaml:"lifespan_years" json:"lifespan_years"`
}

// Table is an ordered equipment inventory. Order is display order only.
type Table []Row

// Find returns the first row named name.
func (t Table) Find(name string) (Row, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}
	return Row{}, false
}

// Has reports whether a row named name exists.
func (t Table) Has(name string) bool {
	_, ok := t.Find(name)
	return ok
}

// Column extracts one column of cells.
func (t Table) Column(pick func(Row) numeric.Cell) []numeric.Cell {
	cells := make([]numeric.Cell, len(t))
	for i, r := range t {
		cells[i] = pick(r)
	}
	return cells
}

// Column selectors.
func Cost(r Row) numeric.Cell     { return r.CostUSD }
func Energy(r Row) numeric.Cell   { return r.EnergyKW }
func Land(r Row) numeric.Cell     { return r.LandAreaM2 }
func Quantity(r Row) numeric.Cell { return r.Quantity }

// BatteryRow is one mix point of the battery/tank lookup.
type BatteryRow struct {
	BatteryFraction numeric.Cell `yaml:"battery_fraction" json:"battery_fraction"`
	TankFraction    numeric.Cell `yaml:"tank_fraction" json:"tank_fraction"`
	BatteryKWh      numeric.Cell `yaml:"battery_kwh" json:"battery_kwh"`
	TankGal         numeric.Cell `yaml:"tank_gal" json:"tank_gal"`
	BatteryCost     numeric.Cell `yaml:"battery_cost" json:"battery_cost"`
	TankCost        numeric.Cell `yaml:"tank_cost" json:"tank_cost"`
	TotalCost       numeric.Cell `yaml:"total_cost" json:"total_cost"`
}

// BatteryLookup is the 11-row storage cost table (fraction 0.0 to 1.0).
type BatteryLookup []BatteryRow

// CurvePoint is one (independent, kW) pair of an energy curve.
type CurvePoint struct {
	X numeric.Cell `yaml:"x" json:"x"`
	Y numeric.Cell `yaml:"y" json:"y"`
}

// Curve is a 20-row energy lookup such as salinity -> RO kW.
type Curve struct {
	XColumn string       `yaml:"x_column" json:"x_column"`
	YColumn string       `yaml:"y_column" json:"y_column"`
	Points  []CurvePoint `yaml:"points" json:"points"`
}

// Dataset is the full set of source tables delivered by ingestion.
type Dataset struct {
	Version        string        `yaml:"version" json:"version"`
	Mechanical     Table         `yaml:"mechanical" json:"mechanical"`
	Electrical     Table         `yaml:"electrical" json:"electrical"`
	Miscellaneous  Table         `yaml:"miscellaneous" json:"miscellaneous"`
	BatteryLookup  BatteryLookup `yaml:"battery_lookup" json:"battery_lookup"`
	SalinityLookup Curve         `yaml:"salinity_lookup" json:"salinity_lookup"`
	DepthLookup    Curve         `yaml:"depth_lookup" json:"depth_lookup"`
}

// Table returns the equipment table for a source system.
func (d *Dataset) Table(s System) (Table, bool) {
	switch s {
	case Mechanical:
		return d.Mechanical, true
	case Electrical:
		return d.Electrical, true
	case Miscellaneous:
		return d.Miscellaneous, true
	default:
		return nil, false
	}
}
