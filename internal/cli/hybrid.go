package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/desalboard/desalboard/internal/config"
	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/stages"
)

// stageOptions is the selectable hybrid equipment for one stage.
type stageOptions struct {
	Stage   stages.Stage `json:"stage"`
	Options []string     `json:"options"`
}

// NewHybridOptionsCmd creates the "hybrid options" command, which lists the
// values accepted by compare --stage for each hybrid stage.
func NewHybridOptionsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the selectable equipment for each hybrid stage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, s.cfg, output)
			if err != nil {
				return err
			}

			sources := engine.SourcesFrom(s.ds)
			all := make([]stageOptions, 0, len(stages.HybridStages))
			for _, st := range stages.HybridStages {
				all = append(all, stageOptions{Stage: st, Options: engine.HybridOptions(st, sources)})
			}
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), all)
			}
			return RenderHybridOptions(cmd.OutOrStdout(), all)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}

// RenderHybridOptions writes each hybrid stage followed by its options, as
// ready-to-paste --stage values.
func RenderHybridOptions(w io.Writer, all []stageOptions) error {
	if _, err := fmt.Fprintf(w, "HYBRID OPTIONS\n%s\n", strings.Repeat("-", headerSeparatorLen)); err != nil {
		return err
	}
	for _, so := range all {
		if _, err := fmt.Fprintf(w, "%s\n", so.Stage); err != nil {
			return err
		}
		if len(so.Options) == 0 {
			if _, err := fmt.Fprintln(w, "  (no options)"); err != nil {
				return err
			}
			continue
		}
		for _, opt := range so.Options {
			if _, err := fmt.Fprintf(w, "  --stage %q\n", string(so.Stage)+"="+opt); err != nil {
				return err
			}
		}
	}
	return nil
}
