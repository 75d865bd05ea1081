package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/equipment"
)

// RunDashboard runs the interactive dashboard until the user quits or ctx is
// cancelled.
func RunDashboard(ctx context.Context, ds *equipment.Dataset, in engine.ChartInputs, input io.Reader, output io.Writer) error {
	p := tea.NewProgram(
		NewDashboardModel(ctx, ds, in),
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
