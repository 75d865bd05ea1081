package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/stages"
)

func TestComputeChartDataDefaults(t *testing.T) {
	ds := testDataset()
	data := ComputeChartData(context.Background(), ds, DefaultChartInputs())

	assert.InDelta(t, 1_250_000, data.StorageCost, 1e-6)
	assert.InDelta(t, 95, data.ROOffsetKW, 1e-9)
	assert.InDelta(t, 47.5, data.PumpOffsetKW, 1e-9)

	for _, s := range equipment.ComparedSystems {
		assert.Len(t, data.CostOverTime[s], DefaultHorizonYears+1, s)
	}

	mech := data.CostOverTime[equipment.Mechanical]
	assert.Equal(t, 127_000.0, mech[0])
	assert.Equal(t, 135_000.0, mech[5], "membranes replaced at year five")

	elec := data.CostOverTime[equipment.Electrical]
	assert.InDelta(t, 1_623_000, elec[0], 1e-6, "battery line uses the interpolated storage cost")

	assert.Equal(t, make([]float64, DefaultHorizonYears+1), data.CostOverTime[equipment.Hybrid])

	assert.Equal(t, map[equipment.System]float64{
		equipment.Mechanical: 56.5,
		equipment.Electrical: 49,
		equipment.Hybrid:     0,
	}, data.LandArea)

	assert.Equal(t, map[equipment.System]int{
		equipment.Mechanical: 4,
		equipment.Electrical: 3,
		equipment.Hybrid:     0,
	}, data.TurbineCount)

	mechEnergy := data.EnergyBreakdown[equipment.Mechanical]
	assert.InDelta(t, 530+47.5, mechEnergy[stages.WaterExtraction], 1e-9)
	assert.InDelta(t, 40+95, mechEnergy[stages.Desalination], 1e-9)
	assert.NotContains(t, mechEnergy, stages.PreTreatment, "blank kW rows are skipped")
	assert.NotContains(t, mechEnergy, stages.PostTreatment, "zero kW rows are skipped")

	elecEnergy := data.EnergyBreakdown[equipment.Electrical]
	assert.InDelta(t, 795+47.5, elecEnergy[stages.WaterExtraction], 1e-9)
	assert.InDelta(t, 60+95, elecEnergy[stages.Desalination], 1e-9)
	assert.Equal(t, 5.0, elecEnergy[stages.PreTreatment])
	assert.Equal(t, 10.0, elecEnergy[stages.BrineDisposal])
	assert.Equal(t, 1.0, elecEnergy[stages.Control])

	assert.Empty(t, data.EnergyBreakdown[equipment.Hybrid])
	assert.InDelta(t, 1_623_000, data.ElectricalTotalCost, 1e-6)
}

func TestComputeChartDataWithHybrid(t *testing.T) {
	ds := testDataset()
	hybrid, ok := ComposeHybrid(completeSelection(), SourcesFrom(ds))
	require.True(t, ok)

	in := DefaultChartInputs()
	in.Hybrid = hybrid
	data := ComputeChartData(context.Background(), ds, in)

	series := data.CostOverTime[equipment.Hybrid]
	assert.Equal(t, 42_500.0, series[0])
	assert.Equal(t, 44_000.0, series[1], "annual consumables are rebought every year")
	assert.Equal(t, 404.0, data.LandArea[equipment.Hybrid])

	assert.Equal(t, StageEnergy{
		stages.WaterExtraction: 25,
		stages.Desalination:    60,
	}, data.EnergyBreakdown[equipment.Hybrid], "no salinity or depth offsets for hybrid")
}

func TestComputeChartDataHybridTurbines(t *testing.T) {
	ds := testDataset()
	in := DefaultChartInputs()
	in.Hybrid = equipment.Table{
		row(MechanicalTurbineItem, num(2), num(1), blank(), blank(), blank()),
		row(ElectricalTurbineItem, text("3"), num(1), blank(), blank(), blank()),
		row("Piston pump", num(9), num(1), blank(), blank(), blank()),
	}
	data := ComputeChartData(context.Background(), ds, in)
	assert.Equal(t, 5, data.TurbineCount[equipment.Hybrid])
}

func TestComputeChartDataEndToEnd(t *testing.T) {
	depth := linearCurve(0.05)
	ds := &equipment.Dataset{
		Mechanical: equipment.Table{
			row(MechanicalTurbineItem, num(1), num(100_000), num(500), blank(), indefinite()),
		},
		BatteryLookup:  storageLookup(),
		SalinityLookup: linearCurve(0.1),
		DepthLookup:    depth,
	}

	in := DefaultChartInputs()
	in.Salinity = 950
	data := ComputeChartData(context.Background(), ds, in)

	pump := InterpolateCurve(in.Depth, depth)
	mech := data.EnergyBreakdown[equipment.Mechanical]
	assert.InDelta(t, 95.0, mech[stages.Desalination], 1e-9)
	assert.InDelta(t, 500+pump, mech[stages.WaterExtraction], 1e-9)

	assert.Equal(t, 100_000.0, data.CostOverTime[equipment.Mechanical][in.HorizonYears])
	assert.InDelta(t, 1_250_000, data.ElectricalTotalCost, 1e-6, "empty electrical table still gets storage")
}

func TestComputeChartDataSliders(t *testing.T) {
	ds := testDataset()

	low := DefaultChartInputs()
	low.BatteryFraction = 0
	high := DefaultChartInputs()
	high.BatteryFraction = 1

	lowData := ComputeChartData(context.Background(), ds, low)
	highData := ComputeChartData(context.Background(), ds, high)
	assert.Less(t, lowData.ElectricalTotalCost, highData.ElectricalTotalCost)
	assert.Equal(t, lowData.CostOverTime[equipment.Mechanical], highData.CostOverTime[equipment.Mechanical])

	short := DefaultChartInputs()
	short.HorizonYears = 10
	assert.Len(t, ComputeChartData(context.Background(), ds, short).CostOverTime[equipment.Electrical], 11)

	salty := DefaultChartInputs()
	salty.Salinity = 2500
	saltyData := ComputeChartData(context.Background(), ds, salty)
	assert.InDelta(t, 60+250.0, saltyData.EnergyBreakdown[equipment.Electrical][stages.Desalination], 1e-9)
}

func TestComputeChartDataIsIdempotent(t *testing.T) {
	ds := testDataset()
	hybrid, ok := ComposeHybrid(completeSelection(), SourcesFrom(ds))
	require.True(t, ok)

	in := DefaultChartInputs()
	in.Hybrid = hybrid

	first, err := json.Marshal(ComputeChartData(context.Background(), ds, in))
	require.NoError(t, err)
	second, err := json.Marshal(ComputeChartData(context.Background(), ds, in))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	before := testDataset()
	assert.Equal(t, before, ds, "source tables are not mutated")
}

func TestComputeChartDataEmptyDataset(t *testing.T) {
	assert.NotPanics(t, func() {
		data := ComputeChartData(context.Background(), &equipment.Dataset{}, ChartInputs{HorizonYears: -1})
		assert.Len(t, data.CostOverTime[equipment.Mechanical], 1)
		assert.Zero(t, data.ElectricalTotalCost)
	})
}

func TestElectricalLiveCost(t *testing.T) {
	table := equipment.Table{
		row(BatteryItem, blank(), num(1_800_000), blank(), blank(), blank()),
		row("Turbine", blank(), num(100), blank(), blank(), blank()),
		row("PLC", blank(), text("quote pending"), blank(), blank(), blank()),
	}
	assert.Equal(t, 600.0, ElectricalLiveCost(table, 500))
}
