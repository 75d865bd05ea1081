// Package dataset loads the plant workbook: the three equipment tables, the
// battery/tank lookup and the salinity and depth energy curves.
//
// Cells are delivered exactly as written. The loader never coerces values;
// free text such as "indefinite" reaches the engine untouched.
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/logging"
)

// SupportedVersions is the schema version range this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// DefaultSource names the embedded dataset in logs and errors.
const DefaultSource = "<embedded>"

// Expected lookup sizes. Other sizes load with a warning.
const (
	expectedBatteryRows = 11
	expectedCurveRows   = 20
)

// totalRow marks section summary rows, which are not equipment.
const totalRow = "Total"

//go:embed data/default.yaml
var defaultData []byte

// document mirrors the file layout. Pointers distinguish an absent section
// from an empty one.
type document struct {
	Version        string                   `yaml:"version"`
	Mechanical     *equipment.Table         `yaml:"mechanical"`
	Electrical     *equipment.Table         `yaml:"electrical"`
	Miscellaneous  *equipment.Table         `yaml:"miscellaneous"`
	BatteryLookup  *equipment.BatteryLookup `yaml:"battery_lookup"`
	SalinityLookup *equipment.Curve         `yaml:"salinity_lookup"`
	DepthLookup    *equipment.Curve         `yaml:"depth_lookup"`
}

// Load reads the dataset at path. An empty path loads the embedded default.
// Every failure is a *LoadError wrapping one of the package sentinels.
func Load(ctx context.Context, path string) (*equipment.Dataset, error) {
	if path == "" {
		return Default(ctx)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Source: path, Err: ErrFileNotFound}
		}
		return nil, &LoadError{Source: path, Err: fmt.Errorf("reading file: %w", err)}
	}
	return Parse(ctx, data, path)
}

// Default loads the embedded dataset.
func Default(ctx context.Context) (*equipment.Dataset, error) {
	return Parse(ctx, defaultData, DefaultSource)
}

// Parse decodes and validates a dataset document.
func Parse(ctx context.Context, data []byte, source string) (*equipment.Dataset, error) {
	log := logging.FromContext(ctx).With().Str("component", "dataset").Str("source", source).Logger()

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if missing := doc.missingSections(); len(missing) > 0 {
		return nil, &LoadError{
			Source: source,
			Err:    fmt.Errorf("%w: %s", ErrMissingSection, strings.Join(missing, ", ")),
		}
	}

	ds := &equipment.Dataset{
		Version:        doc.Version,
		Mechanical:     dropTotals(*doc.Mechanical),
		Electrical:     dropTotals(*doc.Electrical),
		Miscellaneous:  dropTotals(*doc.Miscellaneous),
		BatteryLookup:  *doc.BatteryLookup,
		SalinityLookup: *doc.SalinityLookup,
		DepthLookup:    *doc.DepthLookup,
	}

	if n := len(ds.BatteryLookup); n != expectedBatteryRows {
		log.Warn().Int("rows", n).Int("expected", expectedBatteryRows).Msg("unexpected battery lookup size")
	}
	checkCurve(&log, "salinity_lookup", ds.SalinityLookup)
	checkCurve(&log, "depth_lookup", ds.DepthLookup)

	log.Debug().
		Str("version", ds.Version).
		Int("mechanical", len(ds.Mechanical)).
		Int("electrical", len(ds.Electrical)).
		Int("miscellaneous", len(ds.Miscellaneous)).
		Int("battery_lookup", len(ds.BatteryLookup)).
		Msg("dataset loaded")

	return ds, nil
}

func checkCurve(log *zerolog.Logger, name string, c equipment.Curve) {
	if n := len(c.Points); n != expectedCurveRows {
		log.Warn().Str("table", name).Int("rows", n).Int("expected", expectedCurveRows).
			Msg("unexpected energy lookup size")
	}
}

// checkVersion gates the schema version against SupportedVersions.
func checkVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: version is not set", ErrUnsupportedVersion)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, version)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported range: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedVersion, version, SupportedVersions)
	}
	return nil
}

// missingSections lists absent required sections in file order.
func (d *document) missingSections() []string {
	var missing []string
	if d.Mechanical == nil {
		missing = append(missing, "mechanical")
	}
	if d.Electrical == nil {
		missing = append(missing, "electrical")
	}
	if d.Miscellaneous == nil {
		missing = append(missing, "miscellaneous")
	}
	if d.BatteryLookup == nil {
		missing = append(missing, "battery_lookup")
	}
	if d.SalinityLookup == nil {
		missing = append(missing, "salinity_lookup")
	}
	if d.DepthLookup == nil {
		missing = append(missing, "depth_lookup")
	}
	return missing
}

// dropTotals removes section summary rows.
func dropTotals(t equipment.Table) equipment.Table {
	out := make(equipment.Table, 0, len(t))
	for _, r := range t {
		if r.Name == totalRow {
			continue
		}
		out = append(out, r)
	}
	return out
}
