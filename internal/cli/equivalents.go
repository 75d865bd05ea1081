package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/desalboard/desalboard/internal/config"
	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
)

// bestMarker flags the lowest value in an equivalents column.
const bestMarker = " *"

// NewEquivalentsCmd creates the equivalents command, which compares an item
// with the other primary system's items in the same process stage.
func NewEquivalentsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "equivalents <mechanical|electrical> <item>",
		Short: "Compare an item with its counterparts in the other system",
		Long: `Show the item and every item of the other primary system that serves the
same process stage. The lowest cost, energy and land values are marked with *.
Item names must match exactly, including trailing spaces.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // system and item
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			system, table, err := lookupTable(s.ds, args[0])
			if err != nil {
				return err
			}
			if system != equipment.Mechanical && system != equipment.Electrical {
				return fmt.Errorf("equivalents are only available for mechanical and electrical items, got %q", system)
			}
			if !table.Has(args[1]) {
				return fmt.Errorf("no %s item named %q", system, args[1])
			}
			format, err := outputFormat(cmd, s.cfg, output)
			if err != nil {
				return err
			}

			eq := engine.Equivalents(s.ds, args[1], system)
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), eq)
			}
			return RenderEquivalence(cmd.OutOrStdout(), args[1], eq)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}

// RenderEquivalence writes the equivalents of one item as a table.
func RenderEquivalence(w io.Writer, name string, eq engine.Equivalence) error {
	if _, err := fmt.Fprintf(w, "EQUIVALENTS: %s (%s)\n%s\n",
		strings.TrimSpace(name), eq.Stage, strings.Repeat("-", headerSeparatorLen)); err != nil {
		return err
	}
	if !eq.HasEquivalents() {
		_, err := fmt.Fprintln(w, "No equivalent items in the other system.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "System\tItem\tCost\tEnergy\tLand")
	fmt.Fprintln(tw, "------\t----\t----\t------\t----")
	for _, item := range eq.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.System.Label(),
			strings.TrimSpace(item.Row.Name),
			marked(numeric.FormatCurrency(item.Row.CostUSD), item.BestCost),
			marked(numeric.FormatEnergy(item.Row.EnergyKW), item.BestKW),
			marked(numeric.FormatLand(item.Row.LandAreaM2), item.BestLand),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "* lowest in column")
	return err
}

func marked(s string, best bool) string {
	if best {
		return s + bestMarker
	}
	return s
}
