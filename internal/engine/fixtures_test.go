package engine

import (
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

// row builds an equipment row from plain cells.
func row(name string, qty, cost, kw, land, life numeric.Cell) equipment.Row {
	return equipment.Row{
		Name:          name,
		Quantity:      qty,
		CostUSD:       cost,
		EnergyKW:      kw,
		LandAreaM2:    land,
		LifespanYears: life,
	}
}

func num(f float64) numeric.Cell { return numeric.Number(f) }
func text(s string) numeric.Cell { return numeric.Text(s) }
func blank() numeric.Cell        { return numeric.Blank() }
func indefinite() numeric.Cell   { return numeric.Text("indefinite") }

// linearCurve maps 0..1900 in steps of 100 to x*slope.
func linearCurve(slope float64) equipment.Curve {
	c := equipment.Curve{XColumn: "x", YColumn: "kw"}
	for i := 0; i < 20; i++ {
		x := float64(i * 100)
		c.Points = append(c.Points, equipment.CurvePoint{X: num(x), Y: num(x * slope)})
	}
	return c
}

// storageLookup costs 500,000 at all-tank rising to 2,000,000 at all-battery.
func storageLookup() equipment.BatteryLookup {
	fractions := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}
	lookup := make(equipment.BatteryLookup, 0, len(fractions))
	for i, f := range fractions {
		battery := float64(i) * 200_000
		tank := 500_000 - float64(i)*50_000
		lookup = append(lookup, equipment.BatteryRow{
			BatteryFraction: num(f),
			TankFraction:    num(1 - f),
			BatteryCost:     num(battery),
			TankCost:        num(tank),
			TotalCost:       num(battery + tank),
		})
	}
	return lookup
}

// testDataset is a small but complete dataset for aggregator tests.
func testDataset() *equipment.Dataset {
	return &equipment.Dataset{
		Version: "1.0.0",
		Mechanical: equipment.Table{
			row(MechanicalTurbineItem, num(4), num(100_000), num(500), num(20), indefinite()),
			row("Submersible pump ", num(4), num(5_000), num(30), num(1), num(10)),
			row("Pipes", num(1), num(2_000), blank(), num(0.5), num(25)),
			row("2 RO membranes in parallel", num(2), num(8_000), num(40), num(3), num(5)),
			row("Calcite bed contactors", num(1), text("$ 2500 per ton"), num(0), num(2), indefinite()),
			row("Extra storage tank", num(1), num(12_000), blank(), num(30), num(20)),
		},
		Electrical: equipment.Table{
			row(ElectricalTurbineItem, num(3), num(300_000), num(750), num(25), num(25)),
			row("Submersible pump", num(3), num(6_000), num(45), num(1), num(10)),
			row(BatteryItem, num(1), num(1_800_000), blank(), num(10), num(12)),
			row("Multi-Media Filtration", num(1), num(15_000), num(5), num(4), num(15)),
			row("RO membranes in parallel", num(2), num(9_000), num(60), num(3), num(5)),
			row("Brine Well", num(1), num(40_000), num(10), num(6), indefinite()),
			row("PLC", num(1), num(3_000), num(1), blank(), num(10)),
		},
		Miscellaneous: equipment.Table{
			row("Piston pump", num(2), num(7_000), num(25), num(1), num(15)),
			row("Antiscalant (assuming 3g/L of antiscalant)", blank(), num(1_000), blank(), blank(), num(1)),
			row("Booster Pump", num(1), num(4_000), num(20), num(1), num(10)),
			row("Green blend addition", blank(), num(500), blank(), blank(), num(1)),
			row("Evaporation Pond", num(1), num(25_000), blank(), num(400), indefinite()),
		},
		BatteryLookup:  storageLookup(),
		SalinityLookup: linearCurve(0.1),
		DepthLookup:    linearCurve(0.05),
	}
}

// completeSelection picks one resolvable item per hybrid stage.
func completeSelection() Selection {
	var sel Selection
	sel.Set(stages.WaterExtraction, "Piston pump")
	sel.Set(stages.PreTreatment, "Antiscalant (assuming 3g/L of antiscalant)")
	sel.Set(stages.Desalination, "RO membranes in parallel")
	sel.Set(stages.PostTreatment, "Green blend addition")
	sel.Set(stages.BrineDisposal, "Evaporation Pond")
	return sel
}
