package tui

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desalboard/desalboard/internal/config"
	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/stages"
)

// Slider steps.
const (
	batteryStep  = 0.1
	horizonStep  = 5
	salinityStep = 100.0
	depthStep    = 100.0
)

// control is one adjustable dashboard input.
type control int

const (
	controlBattery control = iota
	controlHorizon
	controlSalinity
	controlDepth
	// controlStage is the first hybrid slot; slots follow in stages.HybridStages order.
	controlStage
)

// controlCount is the number of focusable controls.
func controlCount() int {
	return int(controlStage) + len(stages.HybridStages)
}

// DashboardModel is the Bubble Tea model for the interactive comparison
// dashboard. Every input change rebuilds the whole report.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx      context.Context
	ds       *equipment.Dataset
	initial  engine.ChartInputs
	inputs   engine.ChartInputs
	sel      engine.Selection
	options  [][]string
	picked   []int
	focus    control
	report   engine.Report
	quitting bool

	scorecard table.Model
	energy    table.Model

	width  int
	height int
}

// NewDashboardModel creates the dashboard with the given initial inputs.
func NewDashboardModel(ctx context.Context, ds *equipment.Dataset, in engine.ChartInputs) DashboardModel {
	sources := engine.SourcesFrom(ds)
	options := make([][]string, len(stages.HybridStages))
	picked := make([]int, len(stages.HybridStages))
	for i, st := range stages.HybridStages {
		options[i] = engine.HybridOptions(st, sources)
		picked[i] = -1
	}

	in.Hybrid = nil
	m := DashboardModel{
		ctx:     ctx,
		ds:      ds,
		initial: in,
		inputs:  in,
		options: options,
		picked:  picked,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.recompute()
	return m
}

// Init initializes the model (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTables()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeypress(msg)
	default:
		return m, nil
	}
}

func (m DashboardModel) handleKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keyUp, keyVimUp, keyShiftTab:
		m.focus = control((int(m.focus) - 1 + controlCount()) % controlCount())
	case keyDown, keyVimDown, keyTab:
		m.focus = control((int(m.focus) + 1) % controlCount())
	case keyLeft, keyVimLeft:
		m.adjust(-1)
		m.recompute()
	case keyRight, keyVimRight:
		m.adjust(1)
		m.recompute()
	case keyClear:
		m.sel.ClearAll()
		m.picked = make([]int, len(m.picked))
		for i := range m.picked {
			m.picked[i] = -1
		}
		m.recompute()
	case keyReset:
		m.inputs = m.initial
		m.recompute()
	}
	return m, nil
}

// adjust moves the focused control one step in direction dir (+1 or -1).
func (m *DashboardModel) adjust(dir int) {
	d := float64(dir)
	switch m.focus {
	case controlBattery:
		v := math.Round((m.inputs.BatteryFraction+d*batteryStep)*10) / 10 //nolint:mnd // one decimal place
		m.inputs.BatteryFraction = clamp(v, 0, 1)
	case controlHorizon:
		m.inputs.HorizonYears = int(clamp(float64(m.inputs.HorizonYears+dir*horizonStep), 0, config.MaxHorizonYears))
	case controlSalinity:
		m.inputs.Salinity = clamp(m.inputs.Salinity+d*salinityStep, 0, config.MaxSalinityPPM)
	case controlDepth:
		m.inputs.Depth = clamp(m.inputs.Depth+d*depthStep, 0, config.MaxDepthM)
	default:
		m.cycleStage(int(m.focus-controlStage), dir)
	}
}

// cycleStage steps a hybrid slot through "none" and its options.
func (m *DashboardModel) cycleStage(slot, dir int) {
	if slot < 0 || slot >= len(m.options) {
		return
	}
	n := len(m.options[slot]) + 1 // options plus "none"
	idx := ((m.picked[slot]+1+dir)%n+n)%n - 1
	m.picked = append([]int(nil), m.picked...)
	m.picked[slot] = idx

	st := stages.HybridStages[slot]
	if idx < 0 {
		m.sel.Clear(st)
		return
	}
	m.sel.Set(st, m.options[slot][idx])
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// recompute rebuilds the report and the tables from the current inputs.
func (m *DashboardModel) recompute() {
	m.report = engine.BuildReport(m.ctx, m.ds, m.inputs, m.sel)
	m.rebuildTables()
}

// Report returns the report currently on screen.
func (m DashboardModel) Report() engine.Report {
	return m.report
}
