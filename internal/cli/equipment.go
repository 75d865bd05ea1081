package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/desalboard/desalboard/internal/config"
	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

// equipmentLine is one inventory row as shown to the user and in JSON.
type equipmentLine struct {
	equipment.Row

	Stage stages.Stage `json:"stage"`
}

// NewEquipmentCmd creates the equipment command, which lists one system's
// inventory with each item's process stage.
func NewEquipmentCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "equipment <mechanical|electrical|miscellaneous>",
		Short:     "List a system's equipment inventory",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(equipment.Mechanical), string(equipment.Electrical), string(equipment.Miscellaneous)},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			system, table, err := lookupTable(s.ds, args[0])
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, s.cfg, output)
			if err != nil {
				return err
			}

			lines := make([]equipmentLine, 0, len(table))
			for _, r := range table {
				lines = append(lines, equipmentLine{Row: r, Stage: stages.StageOf(r.Name, system)})
			}
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), lines)
			}
			return RenderEquipment(cmd.OutOrStdout(), system, lines)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}

// lookupTable resolves a system argument to its dataset table.
func lookupTable(ds *equipment.Dataset, arg string) (equipment.System, equipment.Table, error) {
	system, ok := equipment.ParseSystem(strings.ToLower(strings.TrimSpace(arg)))
	if !ok {
		return "", nil, fmt.Errorf("unknown system %q (use mechanical, electrical or miscellaneous)", arg)
	}
	table, ok := ds.Table(system)
	if !ok {
		return "", nil, fmt.Errorf("system %q has no equipment table", system)
	}
	return system, table, nil
}

// RenderEquipment writes an equipment inventory with totals.
func RenderEquipment(w io.Writer, system equipment.System, lines []equipmentLine) error {
	title := strings.ToUpper(system.Label()) + " EQUIPMENT"
	if isWriterTerminal(w) {
		title = lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor()).Render(title)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("-", headerSeparatorLen)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Item\tStage\tQty\tCost\tEnergy\tLand\tLifespan")
	fmt.Fprintln(tw, "----\t-----\t---\t----\t------\t----\t--------")

	table := make(equipment.Table, 0, len(lines))
	for _, l := range lines {
		table = append(table, l.Row)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			strings.TrimSpace(l.Name),
			l.Stage,
			numeric.FormatPlain(l.Quantity),
			numeric.FormatCurrency(l.CostUSD),
			numeric.FormatEnergy(l.EnergyKW),
			numeric.FormatLand(l.LandAreaM2),
			numeric.FormatLifespan(l.LifespanYears),
		)
	}

	totals := engine.Aggregate(table)
	fmt.Fprintf(tw, "Total\t\t\t%s\t%s\t%s\t\n",
		numeric.Currency(totals.Cost.OrZero()),
		numeric.FormatEnergy(numeric.Number(totals.Efficiency.OrZero())),
		numeric.FormatLand(numeric.Number(totals.LandArea.OrZero())),
	)
	return tw.Flush()
}
