package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "round to integer", f: 18248.56, precision: 0, want: "18,249"},
		{name: "one decimal place", f: 781.26, precision: 1, want: "781.3"},
		{name: "two decimal places", f: 1234.5678, precision: 2, want: "1,234.57"},
		{name: "small number", f: 0.5, precision: 1, want: "0.5"},
		{name: "zero", f: 0, precision: 2, want: "0.00"},
		{name: "negative with precision", f: -1234.56, precision: 2, want: "-1,234.56"},
		{name: "round up at boundary", f: 999.999, precision: 2, want: "1,000.00"},
		{name: "millions", f: 1234567, precision: 0, want: "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "millions", cell: Number(1_800_000), want: "$1.8M"},
		{name: "exactly one million", cell: Number(1_000_000), want: "$1.0M"},
		{name: "thousands", cell: Number(125_000), want: "$125.0K"},
		{name: "exactly one thousand", cell: Number(1000), want: "$1.0K"},
		{name: "below one thousand", cell: Number(950), want: "$950"},
		{name: "numeric text", cell: Text("2500"), want: "$2.5K"},
		{name: "zero", cell: Number(0), want: "$0"},
		{name: "negative millions", cell: Number(-2_500_000), want: "$-2.5M"},
		{name: "negative thousands", cell: Number(-2_500), want: "$-2.5K"},
		{name: "negative below one thousand", cell: Number(-950), want: "$-950"},
		{name: "blank", cell: Blank(), want: "N/A"},
		{name: "free text", cell: Text("$ 2500 per ton"), want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.cell))
		})
	}

	assert.Equal(t, "$2.3M", Currency(2_250_001))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234.5", FormatNumber(Number(1234.5)))
	assert.Equal(t, "12.0", FormatNumber(Text("12")))
	assert.Equal(t, "N/A", FormatNumber(Blank()))
	assert.Equal(t, "indefinite", FormatNumber(Text("indefinite")))
	assert.Equal(t, "~15 tons", FormatNumber(Text("~15 tons")))
}

func TestFormatPlain(t *testing.T) {
	assert.Equal(t, "1,235", FormatPlain(Number(1234.6)))
	assert.Equal(t, "4", FormatPlain(Number(4)))
	assert.Equal(t, "N/A", FormatPlain(Blank()))
	assert.Equal(t, "indefinite", FormatPlain(Text("indefinite")))
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "1,250 kW", FormatEnergy(Number(1250)))
	assert.Equal(t, "N/A", FormatEnergy(Text("varies")))
	assert.Equal(t, "12.50 m²", FormatLand(Number(12.5)))
	assert.Equal(t, "N/A", FormatLand(Blank()))
	assert.Equal(t, "12 years", FormatLifespan(Number(12)))
	assert.Equal(t, "indefinite", FormatLifespan(Text("indefinite")))
	assert.Equal(t, "N/A", FormatLifespan(Blank()))
}

func TestBatteryRatioLabel(t *testing.T) {
	assert.Equal(t, "70% Battery / 30% Tank", BatteryRatioLabel(0.7))
	assert.Equal(t, "0% Battery / 100% Tank", BatteryRatioLabel(0))
	assert.Equal(t, "100% Battery / 0% Tank", BatteryRatioLabel(1))
}
