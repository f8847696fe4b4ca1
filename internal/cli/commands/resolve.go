package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/cli/ui"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/engine"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/producer"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var flags engineFlags
	var out string
	var dryRun bool
	var jsonOut bool
	var optionalKeys []string

	cmd := &cobra.Command{
		Use:   "resolve [component...]",
		Short: "Resolve a component selection and generate its artifacts",
		Long: `Resolve a selection of components against the registry, expanding
transitive dependencies, validating the result and generating the
selected stack into the target directory.

Components are named as kind:type:provider; the service kind may be
omitted (auth:better-auth). Run without arguments to pick components
interactively.`,
		Example: `  # Resolve two components for a Next.js web project
  xaheen resolve auth:better-auth database:postgresql --framework nextjs --platform web

  # Pick components interactively
  xaheen resolve

  # See what would be generated without writing anything
  xaheen resolve auth:better-auth --dry-run

  # Keep going past optional failures
  xaheen resolve auth:better-auth --strategy lenient`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, &flags, out, dryRun, jsonOut, optionalKeys)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Target directory for generated files (default: from xaheen.yml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be generated without writing files")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the result in JSON format")
	cmd.Flags().StringSliceVar(&optionalKeys, "optional", nil, "Additional components to include when resolvable")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, flags *engineFlags, out string, dryRun, jsonOut bool, optionalKeys []string) error {
	s, err := flags.session()
	if err != nil {
		return err
	}

	selection, err := parseSelection(args, s.store, flags.noColor)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		selection, err = promptSelection(s.store)
		if err != nil {
			return err
		}
	}
	optional, err := parseSelection(optionalKeys, s.store, flags.noColor)
	if err != nil {
		return err
	}

	targetDir := out
	if targetDir == "" {
		targetDir = s.cfg.TargetDir
	}

	opts := append(s.opts, engine.WithDryRun(dryRun))
	if !jsonOut {
		printer := ui.NewStepPrinter(cmd.OutOrStdout(), flags.noColor)
		opts = append(opts, engine.WithProgress(printer.Report))
	}

	eng := engine.New(s.store, producer.NewTemplateProducer(targetDir), opts...)
	result, err := eng.Resolve(cmd.Context(), selection, optional, s.rctx)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeResultJSON(cmd, result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	ui.WriteDiagnostics(w, result.Diagnostics, flags.noColor)

	summary := ui.NewKeyValueTable(w, flags.noColor)
	summary.AddRow("Status", string(result.Status))
	summary.AddRow("Resolved", fmt.Sprintf("%d component(s)", len(result.Resolved)))
	summary.AddRow("Duration", result.Duration.Round(time.Millisecond).String())
	summary.Render()

	switch result.Status {
	case engine.StatusFailed:
		ui.WriteFailure(w, "resolution failed", flags.noColor)
		return fmt.Errorf("resolution failed with %d diagnostic(s)", len(result.Diagnostics))
	case engine.StatusWarning:
		ui.WriteSuccess(w, "resolved with warnings", flags.noColor)
	default:
		ui.WriteSuccess(w, fmt.Sprintf("resolved %s", formatKeys(selection)), flags.noColor)
	}
	return nil
}

func writeResultJSON(cmd *cobra.Command, result engine.Result) error {
	payload := struct {
		Status      string   `json:"status"`
		Resolved    []string `json:"resolved"`
		Diagnostics any      `json:"diagnostics"`
		DurationMS  int64    `json:"duration_ms"`
	}{
		Status:      string(result.Status),
		Diagnostics: result.Diagnostics,
		DurationMS:  result.Duration.Milliseconds(),
	}
	for _, d := range result.Resolved {
		payload.Resolved = append(payload.Resolved, d.ID())
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if result.Status == engine.StatusFailed {
		return fmt.Errorf("resolution failed")
	}
	return nil
}
