package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/cli/ui"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/store"
)

// NewComponentsCommand creates the components command
func NewComponentsCommand() *cobra.Command {
	var flags engineFlags
	var kind string
	var typ string

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List the components available in the registry",
		Example: `  # List everything
  xaheen components

  # List only database services
  xaheen components --kind service --type database`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponents(cmd, &flags, kind, typ)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by component kind: fragment or service")
	cmd.Flags().StringVar(&typ, "type", "", "Filter by component type, e.g. auth")

	return cmd
}

func runComponents(cmd *cobra.Command, flags *engineFlags, kind, typ string) error {
	s, err := flags.session()
	if err != nil {
		return err
	}

	filter := store.Filter{Kind: component.Kind(kind), Type: typ}
	if kind != "" && !filter.Kind.Valid() {
		return fmt.Errorf("unknown component kind %q (want fragment or service)", kind)
	}

	descriptors := s.store.List(filter)
	if len(descriptors) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No components found.")
		return nil
	}

	table := ui.NewTable(cmd.OutOrStdout(), []string{"COMPONENT", "VERSION", "PRIORITY", "REQUIRES", "DESCRIPTION"}, flags.noColor).AlignRight(2)
	for _, d := range descriptors {
		var requires []string
		for _, req := range d.Requires {
			name := req.Key.String()
			if !req.Required {
				name += " (optional)"
			}
			requires = append(requires, name)
		}
		table.AddRow(
			d.Key.String(),
			d.Version,
			fmt.Sprintf("%d", d.EffectivePriority()),
			strings.Join(requires, ", "),
			d.Description,
		)
	}
	table.Render()
	return nil
}
