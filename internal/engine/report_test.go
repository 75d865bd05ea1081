package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/stages"
)

func TestBuildReport_GateClosed(t *testing.T) {
	ds := testDataset()
	var sel Selection
	sel.Set(stages.WaterExtraction, "Piston pump")

	in := DefaultChartInputs()
	in.Hybrid = equipment.Table{row("stale", num(1), num(100), num(5), num(7), num(10))}

	report := BuildReport(context.Background(), ds, in, sel)

	assert.False(t, report.HybridReady)
	assert.Equal(t, "1/5 slots filled", report.SlotsFilled)
	assert.Equal(t, []equipment.System{equipment.Mechanical, equipment.Electrical}, report.Scorecard.Systems)
	assert.Equal(t, ComparisonUnavailable, report.Comparison)
	assert.Equal(t, make([]float64, DefaultHorizonYears+1), report.Chart.CostOverTime[equipment.Hybrid],
		"closed gate keeps an all-zero hybrid series of full length")
	assert.Zero(t, report.Chart.LandArea[equipment.Hybrid])
	assert.Zero(t, report.Chart.TurbineCount[equipment.Hybrid])
	assert.Empty(t, report.Chart.EnergyBreakdown[equipment.Hybrid])
	assert.Equal(t, map[stages.Stage]string{stages.WaterExtraction: "Piston pump"}, report.Inputs.Selection)
}

func TestBuildReport_GateOpen(t *testing.T) {
	ds := testDataset()
	in := DefaultChartInputs()
	in.Hybrid = equipment.Table{row("ignored", num(1), num(1), num(1), num(1), num(1))}

	report := BuildReport(context.Background(), ds, in, completeSelection())

	require.True(t, report.HybridReady)
	assert.Equal(t, equipment.ComparedSystems, report.Scorecard.Systems)
	assert.Contains(t, report.Chart.CostOverTime, equipment.Hybrid)
	assert.Contains(t, report.Comparison, "than Mechanical.")
	assert.Contains(t, report.Comparison, "than Electrical.")
	assert.Equal(t, "50% Battery / 50% Tank", report.Inputs.BatteryRatio)
	assert.Equal(t, 50, report.Inputs.HorizonYears)
}

func TestBuildReport_Idempotent(t *testing.T) {
	ds := testDataset()
	in := DefaultChartInputs()
	sel := completeSelection()

	first := BuildReport(context.Background(), ds, in, sel)
	second := BuildReport(context.Background(), ds, in, sel)
	assert.Equal(t, first, second)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name        string
		assignments []string
		sep         string
		want        map[stages.Stage]string
		wantErr     string
	}{
		{
			name:        "single assignment",
			assignments: []string{"Water Extraction=Piston pump"},
			sep:         "=",
			want:        map[stages.Stage]string{stages.WaterExtraction: "Piston pump"},
		},
		{
			name:        "trailing space in name is kept",
			assignments: []string{"Water Extraction:250kW aeromotor turbine "},
			sep:         ":",
			want:        map[stages.Stage]string{stages.WaterExtraction: "250kW aeromotor turbine "},
		},
		{
			name:        "later assignment wins",
			assignments: []string{"Desalination=Booster Pump", "Desalination=RO membranes in parallel"},
			sep:         "=",
			want:        map[stages.Stage]string{stages.Desalination: "RO membranes in parallel"},
		},
		{
			name:        "missing separator",
			assignments: []string{"Desalination"},
			sep:         "=",
			wantErr:     "expected Stage=Name",
		},
		{
			name:        "unknown stage",
			assignments: []string{"Boiling=Kettle"},
			sep:         "=",
			wantErr:     "unknown stage",
		},
		{
			name:        "control is not a hybrid stage",
			assignments: []string{"Control=PLC"},
			sep:         "=",
			wantErr:     "not a hybrid stage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseSelection(tt.assignments, tt.sep)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for st, name := range tt.want {
				got, ok := sel.Get(st)
				assert.True(t, ok)
				assert.Equal(t, name, got)
			}
			assert.Equal(t, len(tt.want), sel.Filled())
		})
	}
}
