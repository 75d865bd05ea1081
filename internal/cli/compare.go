package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/desalboard/desalboard/internal/config"
	"github.com/desalboard/desalboard/internal/engine"
)

// compareFlags holds the slider and hybrid flags of the compare command.
type compareFlags struct {
	battery  float64
	years    int
	salinity float64
	depth    float64
	stages   []string
	output   string
}

// NewCompareCmd creates the compare command, which prints the scorecard,
// chart summary and hybrid comparison for one set of inputs.
func NewCompareCmd() *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the mechanical, electrical and hybrid plants",
		Long: `Compute the scorecard, cost over time, land, turbine and energy breakdowns
for the mechanical and electrical plants, plus a hybrid plant once every
hybrid stage has a selection (--stage "Stage=Name", repeatable).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, &flags)
		},
	}

	cmd.Flags().Float64Var(&flags.battery, "battery", engine.DefaultBatteryFraction, "battery share of storage, 0 to 1")
	cmd.Flags().IntVar(&flags.years, "years", engine.DefaultHorizonYears, "time horizon in years (0-200)")
	cmd.Flags().Float64Var(&flags.salinity, "salinity", engine.DefaultSalinity, "feed water salinity in ppm")
	cmd.Flags().Float64Var(&flags.depth, "depth", engine.DefaultDepth, "well depth in metres")
	cmd.Flags().StringArrayVar(&flags.stages, "stage", nil, `hybrid selection as "Stage=Name" (repeatable)`)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table or json (default from config)")

	return cmd
}

func runCompare(cmd *cobra.Command, flags *compareFlags) error {
	s, err := sessionFrom(cmd)
	if err != nil {
		return err
	}

	in := chartInputsFromConfig(s.cfg)
	if cmd.Flags().Changed("battery") {
		in.BatteryFraction = flags.battery
	}
	if cmd.Flags().Changed("years") {
		in.HorizonYears = flags.years
	}
	if cmd.Flags().Changed("salinity") {
		in.Salinity = flags.salinity
	}
	if cmd.Flags().Changed("depth") {
		in.Depth = flags.depth
	}
	if in.HorizonYears < 0 || in.HorizonYears > config.MaxHorizonYears {
		return fmt.Errorf("--years must be between 0 and %d, got %d", config.MaxHorizonYears, in.HorizonYears)
	}

	sel, err := engine.ParseSelection(flags.stages, "=")
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd, s.cfg, flags.output)
	if err != nil {
		return err
	}

	report := engine.BuildReport(cmd.Context(), s.ds, in, sel)
	if format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return RenderReport(cmd.OutOrStdout(), report)
}

// chartInputsFromConfig seeds the sliders from the dashboard config section.
func chartInputsFromConfig(cfg *config.Config) engine.ChartInputs {
	return engine.ChartInputs{
		BatteryFraction: cfg.Dashboard.BatteryFraction,
		HorizonYears:    cfg.Dashboard.HorizonYears,
		Salinity:        cfg.Dashboard.SalinityPPM,
		Depth:           cfg.Dashboard.DepthM,
	}
}

// outputFormat resolves --output against the configured default.
func outputFormat(cmd *cobra.Command, cfg *config.Config, flag string) (string, error) {
	format := cfg.Output.DefaultFormat
	if cmd.Flags().Changed("output") {
		format = flag
	}
	switch format {
	case config.FormatTable, config.FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use %q or %q)", format, config.FormatTable, config.FormatJSON)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
