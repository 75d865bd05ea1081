package engine

import (
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
)

// Metric names a scorecard metric.
type Metric string

// Scorecard metrics. Efficiency is total power draw in kW, not a ratio.
const (
	MetricCost       Metric = "cost"
	MetricLandArea   Metric = "land_area"
	MetricEfficiency Metric = "efficiency"
)

// ScorecardMetrics lists the metrics in display order.
//
//nolint:gochecknoglobals // read-only ordering table
var ScorecardMetrics = []Metric{MetricCost, MetricLandArea, MetricEfficiency}

// Label is the scorecard row heading.
func (m Metric) Label() string {
	switch m {
	case MetricCost:
		return "Total Cost"
	case MetricLandArea:
		return "Total Land Area"
	case MetricEfficiency:
		return "Total Energy (kW)"
	default:
		return string(m)
	}
}

// phrase is the metric as it reads inside a comparison sentence.
func (m Metric) phrase() string {
	switch m {
	case MetricLandArea:
		return "land area"
	case MetricEfficiency:
		return "energy use"
	default:
		return string(m)
	}
}

// Metrics holds the aggregate figures for one system.
type Metrics struct {
	Cost       numeric.Value `json:"cost"`
	LandArea   numeric.Value `json:"land_area"`
	Efficiency numeric.Value `json:"efficiency"`
}

// Get returns the value of metric m, or Missing for an unknown metric.
func (m Metrics) Get(metric Metric) numeric.Value {
	switch metric {
	case MetricCost:
		return m.Cost
	case MetricLandArea:
		return m.LandArea
	case MetricEfficiency:
		return m.Efficiency
	default:
		return numeric.Missing()
	}
}

// AggregateMetrics sums the cost, land area and energy columns of every
// supplied table. Missing cells contribute zero; a table is never skipped.
// Hybrid appears in the result only when its table is supplied.
func AggregateMetrics(tables map[equipment.System]equipment.Table) map[equipment.System]Metrics {
	out := make(map[equipment.System]Metrics, len(tables))
	for system, table := range tables {
		out[system] = Aggregate(table)
	}
	return out
}

// Aggregate computes the metrics of a single table.
func Aggregate(table equipment.Table) Metrics {
	return Metrics{
		Cost:       numeric.Of(numeric.Sum(table.Column(equipment.Cost))),
		LandArea:   numeric.Of(numeric.Sum(table.Column(equipment.Land))),
		Efficiency: numeric.Of(numeric.Sum(table.Column(equipment.Energy))),
	}
}
