package engine

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/logging"
	"github.com/desalboard/desalboard/internal/numeric"
)

// CumulativeCostSeries projects cumulative spend for each year 0..horizon.
//
// Rows with a missing cost are skipped. An override keyed by row name replaces
// that row's cost. Items with an "indefinite" lifespan, or a lifespan that does
// not coerce to a positive whole number of years, are bought once at year 0.
// Everything else is bought at year 0 and again at every multiple of its
// lifespan up to the horizon. A negative horizon is treated as 0.
func CumulativeCostSeries(
	ctx context.Context,
	table equipment.Table,
	horizon int,
	overrides map[string]float64,
) []float64 {
	if horizon < 0 {
		horizon = 0
	}
	log := logging.FromContext(ctx)

	annual := make([]float64, horizon+1)
	for _, row := range table {
		cost, ok := numeric.Coerce(row.CostUSD).Float()
		if !ok {
			continue
		}
		if override, found := overrides[row.Name]; found {
			cost = override
		}

		interval, ok := replacementInterval(row.LifespanYears, horizon)
		if !ok {
			if !numeric.IsIndefinite(row.LifespanYears) {
				log.Debug().
					Str("item", row.Name).
					Str("lifespan", row.LifespanYears.String()).
					Msg("unparseable lifespan, treating as bought once")
			}
			annual[0] += cost
			continue
		}

		for year := 0; year <= horizon; year += interval {
			annual[year] += cost
		}
	}

	return floats.CumSum(make([]float64, len(annual)), annual)
}

// replacementInterval truncates a lifespan cell to whole years. It reports
// false for indefinite, missing and non-positive lifespans. Lifespans longer
// than the horizon are capped just past it.
func replacementInterval(lifespan numeric.Cell, horizon int) (int, bool) {
	if numeric.IsIndefinite(lifespan) {
		return 0, false
	}
	years, ok := numeric.Coerce(lifespan).Float()
	if !ok {
		return 0, false
	}
	years = math.Trunc(years)
	if years < 1 {
		return 0, false
	}
	if years > float64(horizon) {
		return horizon + 1, true
	}
	return int(years), true
}
