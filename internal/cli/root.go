package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/desalboard/desalboard/internal/config"
	"github.com/desalboard/desalboard/internal/dataset"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationSkipLoad marks commands that load configuration themselves and
// need no dataset, such as "config validate".
const annotationSkipLoad = "desalboard/skip-load"

// session is the per-invocation state shared by subcommands.
type session struct {
	cfg *config.Config
	ds  *equipment.Dataset
}

type sessionKey struct{}

func withSession(ctx context.Context, s *session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the session stored by the root command. Commands run
// outside the root (tests calling RunE directly) get defaults and the
// embedded dataset.
func sessionFrom(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if s, ok := ctx.Value(sessionKey{}).(*session); ok && s != nil {
		return s, nil
	}
	ds, err := dataset.Default(ctx)
	if err != nil {
		return nil, err
	}
	return &session{cfg: config.New(), ds: ds}, nil
}

// NewRootCmd creates the root Cobra command for the desalboard CLI.
// It loads configuration, wires up logging and loads the plant dataset
// before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.Result

	cmd := &cobra.Command{
		Use:           "desalboard",
		Short:         "Wind-powered desalination comparison dashboard",
		Long:          "desalboard: Compare mechanical, electrical and hybrid wind-powered desalination plants",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			skipLoad := cmd.Annotations[annotationSkipLoad] == "true"
			if !skipLoad {
				path, _ := cmd.Flags().GetString("config")
				loaded, err := config.Load(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			result := setupLogging(cmd, cfg)
			logResult = &result
			if skipLoad {
				return nil
			}

			if dataFile, _ := cmd.Flags().GetString("data"); dataFile != "" {
				cfg.Data.File = dataFile
			}
			ds, err := dataset.Load(cmd.Context(), cfg.Data.File)
			if err != nil {
				return err
			}
			cmd.SetContext(withSession(cmd.Context(), &session{cfg: cfg, ds: ds}))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $DESALBOARD_HOME/config.yaml or ~/.desalboard/config.yaml)")
	cmd.PersistentFlags().String("data", "", "plant dataset file (default: built-in dataset)")
	cmd.AddCommand(
		NewCompareCmd(), NewEquipmentCmd(), NewEquivalentsCmd(),
		newHybridCmd(), NewServeCmd(), NewDashboardCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Compare the plants at the default slider positions
  desalboard compare

  # Compare with a 70% battery mix over 30 years, including a hybrid plant
  desalboard compare --battery 0.7 --years 30 \
    --stage "Water Extraction=Piston pump" \
    --stage "Pre-Treatment=Antiscalant (assuming 3g/L of antiscalant)" \
    --stage "Desalination=RO membranes in parallel" \
    --stage "Post-Treatment=Green blend addition" \
    --stage "Brine Disposal=Evaporation Pond"

  # List the electrical plant's equipment
  desalboard equipment electrical

  # Show cross-system equivalents for an item
  desalboard equivalents mechanical "Pipes"

  # Start the HTTP API
  desalboard serve --listen :8050

  # Open the interactive dashboard
  desalboard dashboard`

// newHybridCmd creates the hybrid command group.
func newHybridCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "hybrid", Short: "Hybrid configuration commands"}
	cmd.AddCommand(NewHybridOptionsCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
