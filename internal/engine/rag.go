package engine

import (
	"sort"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
)

// Color is a RAG indicator.
type Color string

// RAG colours.
const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
)

// Hex returns the display colour used by the styled renderers.
func (c Color) Hex() string {
	switch c {
	case Green:
		return "#28a745"
	case Yellow:
		return "#ffc107"
	case Red:
		return "#dc3545"
	default:
		return ""
	}
}

// lowerIsBetter holds the metrics where the smallest value wins.
//
//nolint:gochecknoglobals // read-only lookup table
var lowerIsBetter = map[Metric]bool{
	MetricCost:       true,
	MetricLandArea:   true,
	MetricEfficiency: true,
}

// LowerIsBetter reports the sort direction of metric.
func LowerIsBetter(metric Metric) bool {
	return lowerIsBetter[metric]
}

// SystemValue is one system's value for a metric.
type SystemValue struct {
	System equipment.System
	Value  numeric.Value
}

// RankSystems assigns RAG colours to the systems with a present value.
// Missing values get no colour. One system is green; two are green and red;
// three or more are green, red and yellow for the rest.
//
// Exact ties keep caller order: the sort is stable over values, so the first
// of two equal values ranks better. No other tie-break is applied.
func RankSystems(values []SystemValue, metric Metric) map[equipment.System]Color {
	valid := make([]SystemValue, 0, len(values))
	for _, v := range values {
		if !v.Value.IsMissing() {
			valid = append(valid, v)
		}
	}

	colors := make(map[equipment.System]Color, len(valid))
	if len(valid) == 0 {
		return colors
	}

	asc := LowerIsBetter(metric)
	sort.SliceStable(valid, func(i, j int) bool {
		a, b := valid[i].Value.OrZero(), valid[j].Value.OrZero()
		if asc {
			return a < b
		}
		return a > b
	})

	for i, v := range valid {
		switch {
		case i == 0:
			colors[v.System] = Green
		case i == len(valid)-1:
			colors[v.System] = Red
		default:
			colors[v.System] = Yellow
		}
	}
	return colors
}
