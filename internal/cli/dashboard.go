package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/desalboard/desalboard/internal/tui"
)

// NewDashboardCmd creates the dashboard command, which opens the interactive
// terminal dashboard.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive comparison dashboard",
		Long: `Open a terminal dashboard with battery, horizon, salinity and depth sliders
and one selector per hybrid stage. Every change recomputes the scorecard,
energy breakdown and comparison.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return errors.New("dashboard requires an interactive terminal; use 'desalboard compare' instead")
			}
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			return tui.RunDashboard(cmd.Context(), s.ds, chartInputsFromConfig(s.cfg), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
