package dataset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/logging"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

const minimalDoc = `
version: "1.2.0"
mechanical:
  - name: "250kW aeromotor turbine "
    quantity: 2
    cost_usd: 100000
    energy_kw: 500
    land_area_m2: 10
    lifespan_years: indefinite
  - name: Total
    cost_usd: 100000
electrical:
  - name: Turbine
    quantity: "3"
    cost_usd: "$ 2500 per ton"
    lifespan_years: null
miscellaneous: []
battery_lookup:
  - {battery_fraction: 0.0, total_cost: 10}
  - {battery_fraction: 1.0, total_cost: 20}
salinity_lookup:
  x_column: tds_ppm
  y_column: ro_energy_kw
  points:
    - {x: 0, y: 0}
    - {x: 1900, y: 190}
depth_lookup:
  points:
    - {x: 0, y: 0}
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	ds, err := Load(context.Background(), writeFile(t, minimalDoc))
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", ds.Version)
	require.Len(t, ds.Mechanical, 1, "total rows are dropped")

	turbine := ds.Mechanical[0]
	assert.Equal(t, "250kW aeromotor turbine ", turbine.Name, "trailing space survives")
	assert.Equal(t, numeric.Number(500), turbine.EnergyKW)
	assert.Equal(t, numeric.Text("indefinite"), turbine.LifespanYears)

	elec := ds.Electrical[0]
	assert.Equal(t, numeric.Text("3"), elec.Quantity, "quoted numbers stay text")
	assert.Equal(t, numeric.Text("$ 2500 per ton"), elec.CostUSD)
	assert.True(t, elec.LifespanYears.IsBlank())
	assert.True(t, elec.EnergyKW.IsBlank(), "absent cells are blank")

	assert.Empty(t, ds.Miscellaneous)
	assert.Len(t, ds.BatteryLookup, 2)
	assert.Equal(t, "tds_ppm", ds.SalinityLookup.XColumn)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing sections",
			body:    "version: \"1.0.0\"\nmechanical: []\nelectrical: []\n",
			wantErr: ErrMissingSection,
			wantMsg: "miscellaneous, battery_lookup, salinity_lookup, depth_lookup",
		},
		{
			name:    "null section counts as missing",
			body:    strings.Replace(minimalDoc, "miscellaneous: []", "miscellaneous:", 1),
			wantErr: ErrMissingSection,
			wantMsg: "miscellaneous",
		},
		{
			name:    "future major version",
			body:    strings.Replace(minimalDoc, `"1.2.0"`, `"2.0.0"`, 1),
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "missing version",
			body:    strings.Replace(minimalDoc, `version: "1.2.0"`, "", 1),
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "garbage version",
			body:    strings.Replace(minimalDoc, `"1.2.0"`, `"latest"`, 1),
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "not yaml",
			body:    "mechanical: [unterminated",
			wantErr: ErrMalformed,
		},
		{
			name:    "nested cell",
			body:    strings.Replace(minimalDoc, "cost_usd: 100000\n    energy_kw", "cost_usd: {usd: 1}\n    energy_kw", 1),
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), writeFile(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Contains(t, loadErr.Source, "plant.yaml")
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadWarnsOnOddLookupSizes(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, logging.FormatJSON, zerolog.DebugLevel, false)
	ctx := logger.WithContext(context.Background())

	_, err := Parse(ctx, []byte(minimalDoc), "inline")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "unexpected battery lookup size")
	assert.Contains(t, out, `"table":"depth_lookup"`)
	assert.Contains(t, out, "dataset loaded")
}

func TestDefaultDataset(t *testing.T) {
	ds, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, ds.BatteryLookup, expectedBatteryRows)
	assert.Len(t, ds.SalinityLookup.Points, expectedCurveRows)
	assert.Len(t, ds.DepthLookup.Points, expectedCurveRows)

	assert.True(t, ds.Mechanical.Has(engine.MechanicalTurbineItem))
	assert.True(t, ds.Electrical.Has(engine.ElectricalTurbineItem))
	assert.True(t, ds.Electrical.Has(engine.BatteryItem))

	for _, system := range []equipment.System{equipment.Mechanical, equipment.Electrical, equipment.Miscellaneous} {
		table, ok := ds.Table(system)
		require.True(t, ok)
		for _, r := range table {
			assert.NotEqual(t, stages.Other, stages.StageOf(r.Name, system),
				"%s item %q has no process stage", system, r.Name)
		}
	}

	for _, st := range stages.HybridStages {
		assert.NotEmpty(t, engine.HybridOptions(st, engine.SourcesFrom(ds)), st)
	}

	first := numeric.Coerce(ds.BatteryLookup[0].TotalCost).OrZero()
	last := numeric.Coerce(ds.BatteryLookup[len(ds.BatteryLookup)-1].TotalCost).OrZero()
	assert.Less(t, first, last)
}
