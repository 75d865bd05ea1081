package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// headerSeparatorLen is the length of the separator line below section headers.
const headerSeparatorLen = 40

// boxWidth is the width of styled report boxes.
const boxWidth = 88

// boxTitleColor returns the lipgloss color used for box titles.
func boxTitleColor() lipgloss.Color { return lipgloss.Color("39") }

// boxBorderColor returns the lipgloss color used for box borders.
func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

// sectionColor returns the lipgloss color used for section headers.
func sectionColor() lipgloss.Color { return lipgloss.Color("33") }

// isWriterTerminal reports whether w is a terminal. Non-file writers such as
// bytes.Buffer in tests never are.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// RenderReport writes a comparison report, styled on a terminal and plain
// otherwise.
func RenderReport(w io.Writer, report engine.Report) error {
	if isWriterTerminal(w) {
		return renderStyledReport(w, report)
	}
	return renderPlainReport(w, report)
}

// renderStyledReport draws the report inside a rounded lipgloss box with RAG
// coloured scorecard cells.
func renderStyledReport(w io.Writer, report engine.Report) error {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(sectionColor())
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render("DESALINATION COMPARISON"))
	content.WriteString("\n")
	content.WriteString(inputsLine(report.Inputs))
	content.WriteString("\n")
	content.WriteString("Hybrid: " + report.SlotsFilled)
	content.WriteString("\n\n")

	content.WriteString(sectionStyle.Render("SCORECARD"))
	content.WriteString("\n")
	content.WriteString(styledScorecard(report.Scorecard))
	content.WriteString("\n\n")

	content.WriteString(sectionStyle.Render("CHARTS"))
	content.WriteString("\n")
	content.WriteString(chartSummary(report))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("ENERGY BY STAGE (kW)"))
	content.WriteString("\n")
	content.WriteString(energyTable(report))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("COMPARISON"))
	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Width(boxWidth - 4).Render(report.Comparison))

	_, err := fmt.Fprintln(w, borderStyle.Render(content.String()))
	return err
}

// styledScorecard renders scorecard cells on their RAG background colour.
func styledScorecard(card engine.Scorecard) string {
	const cellWidth = 18
	header := lipgloss.NewStyle().Bold(true).Width(cellWidth)
	label := lipgloss.NewStyle().Width(cellWidth)

	var b strings.Builder
	b.WriteString(header.Render("Metric"))
	for _, s := range card.Systems {
		b.WriteString(header.Render(s.Label()))
	}
	b.WriteString("\n")

	for _, row := range card.Rows {
		b.WriteString(label.Render(row.Label))
		for _, s := range card.Systems {
			cell := lipgloss.NewStyle().Width(cellWidth).Foreground(lipgloss.Color("0"))
			if c, ok := row.Colors[s]; ok {
				cell = cell.Background(lipgloss.Color(c.Hex()))
			} else {
				cell = lipgloss.NewStyle().Width(cellWidth)
			}
			b.WriteString(cell.Render(metricValue(row.Metric, card.Metrics[s])))
		}
		b.WriteString("\n")
	}

	b.WriteString(label.Render("Best Overall"))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(card.BestOverall))
	return b.String()
}

// renderPlainReport writes the report as aligned plain text.
func renderPlainReport(w io.Writer, report engine.Report) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintln(w, "DESALINATION COMPARISON"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", headerSeparatorLen)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, inputsLine(report.Inputs)); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "Hybrid: %s\n\n", report.SlotsFilled); err != nil {
		return err
	}

	if err := writePlainScorecard(w, report.Scorecard); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nCHARTS\n%s", chartSummary(report)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nENERGY BY STAGE (kW)\n%s", energyTable(report)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nCOMPARISON\n%s\n", report.Comparison)
	return err
}

// writePlainScorecard writes the scorecard with RAG colour names in brackets.
func writePlainScorecard(w io.Writer, card engine.Scorecard) error {
	if _, err := fmt.Fprintln(w, "SCORECARD"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprint(tw, "Metric")
	for _, s := range card.Systems {
		fmt.Fprintf(tw, "\t%s", s.Label())
	}
	fmt.Fprintln(tw)

	for _, row := range card.Rows {
		fmt.Fprint(tw, row.Label)
		for _, s := range card.Systems {
			value := metricValue(row.Metric, card.Metrics[s])
			if c, ok := row.Colors[s]; ok {
				value = fmt.Sprintf("%s [%s]", value, strings.ToUpper(string(c)))
			}
			fmt.Fprintf(tw, "\t%s", value)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "Best Overall\t%s\n", card.BestOverall)
	return tw.Flush()
}

// inputsLine summarizes the slider positions.
func inputsLine(in engine.ReportInputs) string {
	return fmt.Sprintf("Storage: %s | Horizon: %d years | Salinity: %s ppm | Depth: %s m",
		in.BatteryRatio, in.HorizonYears,
		numeric.FormatFloat(in.Salinity, 0), numeric.FormatFloat(in.Depth, 0))
}

// metricValue formats one scorecard metric for display.
func metricValue(metric engine.Metric, m engine.Metrics) string {
	v, ok := m.Get(metric).Float()
	if !ok {
		return "N/A"
	}
	switch metric {
	case engine.MetricCost:
		return numeric.Currency(v)
	case engine.MetricLandArea:
		return numeric.FormatLand(numeric.Number(v))
	default:
		return numeric.FormatEnergy(numeric.Number(v))
	}
}

// chartSummary tabulates the per-system chart values: cost at the end of the
// horizon, land, turbines, plus the storage and environmental figures.
func chartSummary(report engine.Report) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "System\tCost @ %d years\tLand Area\tTurbines\n", report.Inputs.HorizonYears)

	chart := report.Chart
	for _, s := range equipment.ComparedSystems {
		series, ok := chart.CostOverTime[s]
		if !ok {
			continue
		}
		final := 0.0
		if len(series) > 0 {
			final = series[len(series)-1]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.Label(), numeric.Currency(final),
			numeric.FormatLand(numeric.Number(chart.LandArea[s])), chart.TurbineCount[s])
	}
	_ = tw.Flush()

	fmt.Fprintf(&b, "Storage cost (%s): %s\n", report.Inputs.BatteryRatio, numeric.Currency(chart.StorageCost))
	fmt.Fprintf(&b, "Electrical total cost: %s\n", numeric.Currency(chart.ElectricalTotalCost))
	fmt.Fprintf(&b, "RO offset: %s kW | Pump offset: %s kW\n",
		numeric.FormatFloat(chart.ROOffsetKW, 1), numeric.FormatFloat(chart.PumpOffsetKW, 1))
	return b.String()
}

// energyTable tabulates energy draw per stage and system.
func energyTable(report engine.Report) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, tabPadding, ' ', 0)

	var systems []equipment.System
	for _, s := range equipment.ComparedSystems {
		if _, ok := report.Chart.EnergyBreakdown[s]; ok {
			systems = append(systems, s)
		}
	}

	fmt.Fprint(tw, "Stage")
	for _, s := range systems {
		fmt.Fprintf(tw, "\t%s", s.Label())
	}
	fmt.Fprintln(tw)
	for _, st := range append(slices.Clone(stages.Ordered), stages.Other) {
		fmt.Fprint(tw, string(st))
		for _, s := range systems {
			fmt.Fprintf(tw, "\t%s", numeric.FormatFloat(report.Chart.EnergyBreakdown[s][st], 1))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
	return b.String()
}
