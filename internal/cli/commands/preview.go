package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/cli/ui"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/engine"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/producer"
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	var flags engineFlags

	cmd := &cobra.Command{
		Use:   "preview <component>...",
		Short: "Show the execution plan for a selection without generating anything",
		Long: `Expand, validate and order a component selection into an execution
plan, then print the plan grouped by parallel batch. Nothing is
generated; the producer is never invoked.`,
		Example: `  # Preview the plan for a full stack
  xaheen preview auth:better-auth database:postgresql email:resend

  # Preview against a specific registry
  xaheen preview auth:better-auth -r components/core.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runPreview(cmd *cobra.Command, args []string, flags *engineFlags) error {
	s, err := flags.session()
	if err != nil {
		return err
	}

	selection, err := parseSelection(args, s.store, flags.noColor)
	if err != nil {
		return err
	}

	eng := engine.New(s.store, producer.NewRecorder(), s.opts...)
	plan, result, err := eng.Preview(cmd.Context(), selection, nil, s.rctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	ui.WriteDiagnostics(w, result.Diagnostics, flags.noColor)

	ui.Header(w, "Execution Plan", flags.noColor)
	ui.WritePlan(w, plan, flags.noColor)

	if result.Status == engine.StatusFailed {
		return fmt.Errorf("selection cannot be resolved")
	}
	return nil
}
