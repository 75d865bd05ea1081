package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
)

// points is a cleaned set of interpolation knots: coerced, sorted by x and
// free of duplicate x values.
type points struct {
	xs []float64
	ys []float64
}

// newPoints coerces each pair, drops pairs with a missing side, sorts by x and
// keeps the first of any duplicate x. The result is always safe to Fit.
func newPoints(n int, at func(i int) (numeric.Cell, numeric.Cell)) points {
	type knot struct{ x, y float64 }

	knots := make([]knot, 0, n)
	for i := 0; i < n; i++ {
		xc, yc := at(i)
		x, okX := numeric.Coerce(xc).Float()
		y, okY := numeric.Coerce(yc).Float()
		if !okX || !okY {
			continue
		}
		knots = append(knots, knot{x: x, y: y})
	}

	sort.SliceStable(knots, func(i, j int) bool { return knots[i].x < knots[j].x })

	p := points{xs: make([]float64, 0, len(knots)), ys: make([]float64, 0, len(knots))}
	for _, k := range knots {
		if len(p.xs) > 0 && k.x <= p.xs[len(p.xs)-1] {
			continue
		}
		p.xs = append(p.xs, k.x)
		p.ys = append(p.ys, k.y)
	}
	return p
}

func (p points) len() int { return len(p.xs) }

// predictClamped interpolates inside the knots and clamps to the endpoint
// values outside them.
func (p points) predictClamped(x float64) float64 {
	switch p.len() {
	case 0:
		return 0
	case 1:
		return p.ys[0]
	}
	if math.IsNaN(x) || x <= p.xs[0] {
		return p.ys[0]
	}

	var pl interp.PiecewiseLinear
	_ = pl.Fit(p.xs, p.ys) // knots are validated by newPoints
	return pl.Predict(x)
}

// InterpolateStorageCost returns the total storage cost for a battery
// fraction by piecewise-linear interpolation over the lookup's
// (battery_fraction, total_cost) pairs. Fractions outside the table clamp to
// the endpoint costs. An empty lookup yields 0.
func InterpolateStorageCost(fraction float64, lookup equipment.BatteryLookup) float64 {
	p := newPoints(len(lookup), func(i int) (numeric.Cell, numeric.Cell) {
		return lookup[i].BatteryFraction, lookup[i].TotalCost
	})
	return p.predictClamped(fraction)
}

// InterpolateCurve returns the dependent value of an energy curve at x.
// Inside the tabulated range it interpolates linearly and below it clamps to
// the first y. Above the range it keeps extending the slope of the last two
// points, so demand keeps rising past the table.
func InterpolateCurve(x float64, curve equipment.Curve) float64 {
	p := newPoints(len(curve.Points), func(i int) (numeric.Cell, numeric.Cell) {
		return curve.Points[i].X, curve.Points[i].Y
	})

	n := p.len()
	if n >= 2 && x > p.xs[n-1] {
		x0, x1 := p.xs[n-2], p.xs[n-1]
		y0, y1 := p.ys[n-2], p.ys[n-1]
		return y1 + (x-x1)*(y1-y0)/(x1-x0)
	}
	return p.predictClamped(x)
}
