package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/numeric"
	"github.com/desalboard/desalboard/internal/stages"
)

// Column widths.
const (
	labelColumnWidth  = 18
	systemColumnWidth = 20
	noneOption        = "(none)"
	notReady          = "-"
)

// View renders the dashboard (Bubble Tea interface).
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		TitleStyle.Render("WIND-POWERED DESALINATION DASHBOARD"),
		PanelStyle.Render(m.renderControls()),
		LabelStyle.Render("Scorecard"),
		m.scorecard.View(),
		fmt.Sprintf("%s %s", LabelStyle.Render("Best Overall:"), ValueStyle.Render(m.report.Scorecard.BestOverall)),
		"",
		LabelStyle.Render("Energy by stage (kW)"),
		m.energy.View(),
		"",
		m.renderChartSummary(),
		lipgloss.NewStyle().Width(max(m.width-borderPadding, labelColumnWidth)).Render(m.report.Comparison),
		HelpStyle.Render("↑/↓ select • ←/→ adjust • c clear hybrid • r reset sliders • q quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderControls lists the sliders and hybrid slots, marking the focused one.
func (m DashboardModel) renderControls() string {
	in := m.report.Inputs
	lines := []string{
		m.controlLine(controlBattery, "Battery / Tank", in.BatteryRatio),
		m.controlLine(controlHorizon, "Horizon", fmt.Sprintf("%d years", in.HorizonYears)),
		m.controlLine(controlSalinity, "Salinity", numeric.FormatFloat(in.Salinity, 0)+" ppm"),
		m.controlLine(controlDepth, "Depth", numeric.FormatFloat(in.Depth, 0)+" m"),
		InfoStyle.Render("Hybrid: " + m.report.SlotsFilled),
	}
	for i, st := range stages.HybridStages {
		value := noneOption
		if name, ok := m.sel.Get(st); ok {
			value = strings.TrimSpace(name)
		}
		lines = append(lines, m.controlLine(controlStage+control(i), string(st), value))
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) controlLine(c control, label, value string) string {
	marker := "  "
	labelStyle := LabelStyle
	if m.focus == c {
		marker = FocusStyle.Render("› ")
		labelStyle = FocusStyle
	}
	return marker + labelStyle.Width(labelColumnWidth).Render(label) + ValueStyle.Render(value)
}

// renderChartSummary shows the cost at the end of the horizon, land area and
// turbine count per system, plus the storage figures.
func (m DashboardModel) renderChartSummary() string {
	chart := m.report.Chart
	var b strings.Builder
	for _, s := range equipment.ComparedSystems {
		series, ok := chart.CostOverTime[s]
		if !ok || len(series) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-12s cost @ %d yrs %-10s land %-14s turbines %d\n",
			s.Label(), m.report.Inputs.HorizonYears, numeric.Currency(series[len(series)-1]),
			numeric.FormatLand(numeric.Number(chart.LandArea[s])), chart.TurbineCount[s])
	}
	fmt.Fprintf(&b, "Storage %s  •  Electrical total %s",
		numeric.Currency(chart.StorageCost), numeric.Currency(chart.ElectricalTotalCost))
	return b.String()
}

// rebuildTables refreshes the scorecard and energy tables from the report.
func (m *DashboardModel) rebuildTables() {
	m.scorecard = m.buildScorecardTable()
	m.energy = m.buildEnergyTable()
}

func systemColumns(first string) []table.Column {
	columns := []table.Column{{Title: first, Width: labelColumnWidth}}
	for _, s := range equipment.ComparedSystems {
		columns = append(columns, table.Column{Title: s.Label(), Width: systemColumnWidth})
	}
	return columns
}

func (m DashboardModel) buildScorecardTable() table.Model {
	card := m.report.Scorecard
	rows := make([]table.Row, 0, len(card.Rows))
	for _, r := range card.Rows {
		row := table.Row{r.Label}
		for _, s := range equipment.ComparedSystems {
			metrics, ok := card.Metrics[s]
			if !ok {
				row = append(row, notReady)
				continue
			}
			cell := scorecardValue(r.Metric, metrics)
			if c, ok := r.Colors[s]; ok {
				cell += " " + ragSymbol(c)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	return table.New(
		table.WithColumns(systemColumns("Metric")),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
}

func (m DashboardModel) buildEnergyTable() table.Model {
	breakdown := m.report.Chart.EnergyBreakdown
	all := append(slices.Clone(stages.Ordered), stages.Other)
	rows := make([]table.Row, 0, len(all))
	for _, st := range all {
		row := table.Row{string(st)}
		for _, s := range equipment.ComparedSystems {
			energy, ok := breakdown[s]
			if !ok {
				row = append(row, notReady)
				continue
			}
			row = append(row, numeric.FormatFloat(energy[st], 1))
		}
		rows = append(rows, row)
	}

	return table.New(
		table.WithColumns(systemColumns("Stage")),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
}

func scorecardValue(metric engine.Metric, m engine.Metrics) string {
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

// ragSymbol is a colour-free marker for a RAG cell; table cells are padded
// by width, so ANSI styling inside them would misalign columns.
func ragSymbol(c engine.Color) string {
	switch c {
	case engine.Green:
		return "●G"
	case engine.Yellow:
		return "●Y"
	case engine.Red:
		return "●R"
	default:
		return ""
	}
}
