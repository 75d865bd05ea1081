package engine

import (
	"github.com/desalboard/desalboard/internal/equipment"
)

// BestOverallTied is reported when no system has strictly the most greens.
const BestOverallTied = "Tied"

// ScorecardRow is one metric across the compared systems.
type ScorecardRow struct {
	Metric Metric                     `json:"metric"`
	Label  string                     `json:"label"`
	Colors map[equipment.System]Color `json:"colors"`
}

// Scorecard is the RAG comparison of the supplied systems.
type Scorecard struct {
	Systems     []equipment.System           `json:"systems"`
	Metrics     map[equipment.System]Metrics `json:"metrics"`
	Rows        []ScorecardRow               `json:"rows"`
	Greens      map[equipment.System]int     `json:"greens"`
	BestOverall string                       `json:"best_overall"`
}

// BuildScorecard aggregates each table, ranks every scorecard metric and
// names the system with the most greens. Systems are compared in the order
// given; systems without a table are left out.
func BuildScorecard(order []equipment.System, tables map[equipment.System]equipment.Table) Scorecard {
	systems := make([]equipment.System, 0, len(order))
	for _, s := range order {
		if _, ok := tables[s]; ok {
			systems = append(systems, s)
		}
	}

	metrics := AggregateMetrics(tables)
	card := Scorecard{
		Systems: systems,
		Metrics: make(map[equipment.System]Metrics, len(systems)),
		Greens:  make(map[equipment.System]int, len(systems)),
	}
	for _, s := range systems {
		card.Metrics[s] = metrics[s]
		card.Greens[s] = 0
	}

	for _, metric := range ScorecardMetrics {
		values := make([]SystemValue, 0, len(systems))
		for _, s := range systems {
			values = append(values, SystemValue{System: s, Value: metrics[s].Get(metric)})
		}
		colors := RankSystems(values, metric)
		for s, c := range colors {
			if c == Green {
				card.Greens[s]++
			}
		}
		card.Rows = append(card.Rows, ScorecardRow{Metric: metric, Label: metric.Label(), Colors: colors})
	}

	card.BestOverall = bestOverall(systems, card.Greens)
	return card
}

// bestOverall returns the label of the system with strictly the most greens.
func bestOverall(systems []equipment.System, greens map[equipment.System]int) string {
	best, top, tied := equipment.System(""), -1, false
	for _, s := range systems {
		switch n := greens[s]; {
		case n > top:
			best, top, tied = s, n, false
		case n == top:
			tied = true
		}
	}
	if best == "" || tied {
		return BestOverallTied
	}
	return best.Label()
}
