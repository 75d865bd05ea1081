package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/logging"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

// Report is everything one dashboard refresh shows: chart data, the
// scorecard and the hybrid comparison text.
type Report struct {
	Inputs      ReportInputs `json:"inputs"`
	HybridReady bool         `json:"hybrid_ready"`
	SlotsFilled string       `json:"slots_filled"`
	Chart       ChartData    `json:"chart"`
	Scorecard   Scorecard    `json:"scorecard"`
	Comparison  string       `json:"comparison"`
}

// ReportInputs echoes the slider positions and hybrid picks a report was
// computed from.
type ReportInputs struct {
	BatteryFraction float64                 `json:"battery_fraction"`
	BatteryRatio    string                  `json:"battery_ratio"`
	HorizonYears    int                     `json:"horizon_years"`
	Salinity        float64                 `json:"salinity_ppm"`
	Depth           float64                 `json:"depth_m"`
	Selection       map[stages.Stage]string `json:"selection,omitempty"`
}

// BuildReport composes the hybrid from sel and recomputes every derived view.
// in.Hybrid is ignored; the hybrid table always comes from sel. When the gate
// is closed the scorecard covers Mechanical and Electrical only and the
// comparison text is ComparisonUnavailable.
func BuildReport(ctx context.Context, ds *equipment.Dataset, in ChartInputs, sel Selection) Report {
	hybrid, ready := ComposeHybrid(sel, SourcesFrom(ds))
	in.Hybrid = hybrid

	tables := map[equipment.System]equipment.Table{
		equipment.Mechanical: ds.Mechanical,
		equipment.Electrical: ds.Electrical,
	}
	if ready {
		tables[equipment.Hybrid] = hybrid
	}
	card := BuildScorecard(equipment.ComparedSystems, tables)

	comparison := ComparisonUnavailable
	if ready {
		comparison = ComparisonText(card.Metrics[equipment.Hybrid], []Comparand{
			{Label: equipment.Mechanical.Label(), Metrics: card.Metrics[equipment.Mechanical]},
			{Label: equipment.Electrical.Label(), Metrics: card.Metrics[equipment.Electrical]},
		})
	}

	logging.FromContext(ctx).Debug().
		Bool("hybrid_ready", ready).
		Str("best_overall", card.BestOverall).
		Msg("report built")

	return Report{
		Inputs:      reportInputs(in, sel),
		HybridReady: ready,
		SlotsFilled: sel.CounterLabel(),
		Chart:       ComputeChartData(ctx, ds, in),
		Scorecard:   card,
		Comparison:  comparison,
	}
}

func reportInputs(in ChartInputs, sel Selection) ReportInputs {
	out := ReportInputs{
		BatteryFraction: in.BatteryFraction,
		BatteryRatio:    numeric.BatteryRatioLabel(in.BatteryFraction),
		HorizonYears:    in.HorizonYears,
		Salinity:        in.Salinity,
		Depth:           in.Depth,
	}
	for _, st := range stages.HybridStages {
		if name, ok := sel.Get(st); ok {
			if out.Selection == nil {
				out.Selection = make(map[stages.Stage]string, hybridSlots)
			}
			out.Selection[st] = name
		}
	}
	return out
}

// ParseSelection builds a Selection from "Stage<sep>Name" assignments such as
// "Water Extraction=Piston pump". Names are kept verbatim, trailing spaces
// included. A later assignment for the same stage replaces an earlier one.
func ParseSelection(assignments []string, sep string) (Selection, error) {
	var sel Selection
	for _, a := range assignments {
		stageName, name, ok := strings.Cut(a, sep)
		if !ok {
			return Selection{}, fmt.Errorf("invalid stage assignment %q: expected Stage%sName", a, sep)
		}
		st, ok := stages.Parse(strings.TrimSpace(stageName))
		if !ok {
			return Selection{}, fmt.Errorf("invalid stage assignment %q: unknown stage %q", a, stageName)
		}
		if !sel.Set(st, name) {
			return Selection{}, fmt.Errorf("invalid stage assignment %q: %s is not a hybrid stage", a, st)
		}
	}
	return sel, nil
}
