package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/desalboard/desalboard/internal/engine"
)

// Query parameter names.
const (
	paramBattery  = "battery"
	paramYears    = "years"
	paramSalinity = "salinity"
	paramDepth    = "depth"
	paramStage    = "stage"
)

// stageSeparator splits a stage query value, "Water Extraction:Piston pump".
const stageSeparator = ":"

// maxHorizonYears bounds the cost series length a request may ask for.
const maxHorizonYears = 200

// parseInputs reads the chart inputs and hybrid selection from a query,
// falling back to defaults for absent parameters.
func parseInputs(q url.Values, defaults engine.ChartInputs) (engine.ChartInputs, engine.Selection, error) {
	in := defaults
	in.Hybrid = nil

	var err error
	if in.BatteryFraction, err = floatParam(q, paramBattery, in.BatteryFraction); err != nil {
		return in, engine.Selection{}, err
	}
	if in.Salinity, err = floatParam(q, paramSalinity, in.Salinity); err != nil {
		return in, engine.Selection{}, err
	}
	if in.Depth, err = floatParam(q, paramDepth, in.Depth); err != nil {
		return in, engine.Selection{}, err
	}
	if v := q.Get(paramYears); v != "" {
		years, convErr := strconv.Atoi(v)
		if convErr != nil || years < 0 || years > maxHorizonYears {
			return in, engine.Selection{}, fmt.Errorf("%s must be an integer between 0 and %d, got %q", paramYears, maxHorizonYears, v)
		}
		in.HorizonYears = years
	}

	sel, err := engine.ParseSelection(q[paramStage], stageSeparator)
	if err != nil {
		return in, engine.Selection{}, err
	}
	return in, sel, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def, fmt.Errorf("%s must be a number, got %q", name, v)
	}
	return f, nil
}
