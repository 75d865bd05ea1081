package engine

import (
	"context"
	"math"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/logging"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

// Designated line items the aggregator looks up by exact name.
const (
	BatteryItem           = "Battery (1 day of power)"
	MechanicalTurbineItem = "250kW aeromotor turbine "
	ElectricalTurbineItem = "Turbine"
)

// Dashboard defaults.
const (
	DefaultBatteryFraction = 0.5
	DefaultHorizonYears    = 50
	DefaultSalinity        = 950.0
	DefaultDepth           = 950.0
)

// ChartInputs are the user-controlled inputs to ComputeChartData.
type ChartInputs struct {
	BatteryFraction float64
	HorizonYears    int
	Salinity        float64
	Depth           float64
	// Hybrid is the composed hybrid table, or nil while the gate is closed.
	Hybrid equipment.Table
}

// DefaultChartInputs returns the dashboard's initial slider positions.
func DefaultChartInputs() ChartInputs {
	return ChartInputs{
		BatteryFraction: DefaultBatteryFraction,
		HorizonYears:    DefaultHorizonYears,
		Salinity:        DefaultSalinity,
		Depth:           DefaultDepth,
	}
}

// StageEnergy maps a process stage to its summed kW.
type StageEnergy map[stages.Stage]float64

// ChartData is the aggregate projection behind the comparison charts. Every
// per-system map holds the mechanical, electrical and hybrid keys.
type ChartData struct {
	CostOverTime        map[equipment.System][]float64   `json:"cost_over_time"`
	LandArea            map[equipment.System]float64     `json:"land_area"`
	TurbineCount        map[equipment.System]int         `json:"turbine_count"`
	EnergyBreakdown     map[equipment.System]StageEnergy `json:"energy_breakdown"`
	ElectricalTotalCost float64                          `json:"electrical_total_cost"`
	StorageCost         float64                          `json:"storage_cost"`
	ROOffsetKW          float64                          `json:"ro_offset_kw"`
	PumpOffsetKW        float64                          `json:"pump_offset_kw"`
}

// ComputeChartData recomputes the full chart projection from the dataset and
// the current inputs. The hybrid system gets zero placeholders when
// in.Hybrid is nil, and never receives the salinity or depth offsets.
func ComputeChartData(ctx context.Context, ds *equipment.Dataset, in ChartInputs) ChartData {
	log := logging.FromContext(ctx)

	storage := InterpolateStorageCost(in.BatteryFraction, ds.BatteryLookup)
	horizon := max(in.HorizonYears, 0)

	mechSeries := CumulativeCostSeries(ctx, ds.Mechanical, horizon, nil)
	elecSeries := CumulativeCostSeries(ctx, ds.Electrical, horizon, map[string]float64{BatteryItem: storage})
	hybridSeries := make([]float64, horizon+1)
	if in.Hybrid != nil {
		hybridSeries = CumulativeCostSeries(ctx, in.Hybrid, horizon, nil)
	}

	roOffset := InterpolateCurve(in.Salinity, ds.SalinityLookup)
	pumpOffset := InterpolateCurve(in.Depth, ds.DepthLookup)

	mechEnergy := EnergyByStage(ds.Mechanical, equipment.Mechanical)
	elecEnergy := EnergyByStage(ds.Electrical, equipment.Electrical)
	for _, e := range []StageEnergy{mechEnergy, elecEnergy} {
		e[stages.Desalination] += roOffset
		e[stages.WaterExtraction] += pumpOffset
	}
	hybridEnergy := StageEnergy{}
	if in.Hybrid != nil {
		hybridEnergy = EnergyByStage(in.Hybrid, equipment.Miscellaneous)
	}

	data := ChartData{
		CostOverTime: map[equipment.System][]float64{
			equipment.Mechanical: mechSeries,
			equipment.Electrical: elecSeries,
			equipment.Hybrid:     hybridSeries,
		},
		LandArea: map[equipment.System]float64{
			equipment.Mechanical: numeric.Sum(ds.Mechanical.Column(equipment.Land)),
			equipment.Electrical: numeric.Sum(ds.Electrical.Column(equipment.Land)),
			equipment.Hybrid:     numeric.Sum(in.Hybrid.Column(equipment.Land)),
		},
		TurbineCount: map[equipment.System]int{
			equipment.Mechanical: TurbineCount(ds.Mechanical, MechanicalTurbineItem),
			equipment.Electrical: TurbineCount(ds.Electrical, ElectricalTurbineItem),
			equipment.Hybrid:     TurbineCount(in.Hybrid, MechanicalTurbineItem, ElectricalTurbineItem),
		},
		EnergyBreakdown: map[equipment.System]StageEnergy{
			equipment.Mechanical: mechEnergy,
			equipment.Electrical: elecEnergy,
			equipment.Hybrid:     hybridEnergy,
		},
		ElectricalTotalCost: ElectricalLiveCost(ds.Electrical, storage),
		StorageCost:         storage,
		ROOffsetKW:          roOffset,
		PumpOffsetKW:        pumpOffset,
	}

	log.Debug().
		Float64("battery_fraction", in.BatteryFraction).
		Int("horizon_years", horizon).
		Float64("storage_cost", storage).
		Float64("ro_offset_kw", roOffset).
		Float64("pump_offset_kw", pumpOffset).
		Bool("hybrid", in.Hybrid != nil).
		Msg("chart data computed")

	return data
}

// TurbineCount sums the quantity of every row whose name is one of names and
// truncates the result to a whole count. No match yields 0.
func TurbineCount(table equipment.Table, names ...string) int {
	var cells []numeric.Cell
	for _, row := range table {
		for _, n := range names {
			if row.Name == n {
				cells = append(cells, row.Quantity)
				break
			}
		}
	}
	return int(math.Trunc(numeric.Sum(cells)))
}

// EnergyByStage sums each row's kW into its process stage, classified with
// the stage map of system. Rows with missing or zero kW are skipped.
func EnergyByStage(table equipment.Table, system equipment.System) StageEnergy {
	out := StageEnergy{}
	for _, row := range table {
		kw, ok := numeric.Coerce(row.EnergyKW).Float()
		if !ok || kw == 0 {
			continue
		}
		out[stages.StageOf(row.Name, system)] += kw
	}
	return out
}

// ElectricalLiveCost is the electrical system's cost with its fixed battery
// line replaced by the interpolated storage cost.
func ElectricalLiveCost(electrical equipment.Table, storage float64) float64 {
	base := 0.0
	for _, row := range electrical {
		if row.Name == BatteryItem {
			continue
		}
		base += numeric.Coerce(row.CostUSD).OrZero()
	}
	return base + storage
}
