package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/cli/ui"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/engine"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/producer"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	var flags engineFlags

	cmd := &cobra.Command{
		Use:   "check <component>...",
		Short: "Check whether a selection could be resolved",
		Long: `Run the cheapest feasibility check for a component selection:
dependency expansion and validation only, with no planning and no
generation. Reports missing components and incompatibilities.`,
		Example: `  # Can this stack be resolved for a mobile project?
  xaheen check auth:better-auth database:postgresql --platform mobile`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *engineFlags) error {
	s, err := flags.session()
	if err != nil {
		return err
	}

	// Keys are parsed but not checked against the store here; a missing
	// component is exactly what check reports.
	var selection []component.Key
	for _, arg := range args {
		key, err := component.ParseKey(arg)
		if err != nil {
			return err
		}
		selection = append(selection, key)
	}

	eng := engine.New(s.store, producer.NewRecorder(), s.opts...)
	feasibility, err := eng.CanResolve(cmd.Context(), selection, s.rctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if feasibility.OK {
		ui.WriteSuccess(w, fmt.Sprintf("%s can be resolved", formatKeys(selection)), flags.noColor)
		return nil
	}

	if len(feasibility.Missing) > 0 {
		known := registeredKeys(s.store)
		for _, key := range feasibility.Missing {
			fmt.Fprint(w, ui.ComponentNotFoundError(key.String(), known, flags.noColor))
		}
	}
	for _, problem := range feasibility.Incompatibilities {
		ui.WriteFailure(w, problem, flags.noColor)
	}
	return fmt.Errorf("selection cannot be resolved")
}
