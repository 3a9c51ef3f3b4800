// Package rows provides the rows command.
package rows

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/conductor/internal/cmd/application"
	"github.com/agentstation/conductor/internal/cmd/globals"
	"github.com/agentstation/conductor/internal/cmd/output"
	"github.com/agentstation/conductor/pkg/logging"
)

// NewCommand creates the rows command.
func NewCommand(app application.Application) *cobra.Command {
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:     "rows",
		GroupID: "core",
		Short:   "List the mapping rows of the conductor sheet",
		Long: `Rows loads and prints the mapping rows declared in the conductor sheet
without auditing or updating anything. Rows missing a CONDUCTOR_rowid are
still assigned one.`,
		Example: `  conductor rows             # Table of every mapping row
  conductor rows --enabled   # Only enabled rows
  conductor rows -o yaml     # YAML output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Conductor()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			rows, err := c.Rows(ctx)
			if err != nil {
				return err
			}

			if enabledOnly {
				n := 0
				for _, r := range rows {
					if r.Enabled {
						rows[n] = r
						n++
					}
				}
				rows = rows[:n]
			}

			flags, _ := globals.Parse(cmd)
			if flags.Output == "" {
				flags.Output = app.OutputFormat()
			}
			return output.FormatRows(cmd.OutOrStdout(), rows, flags)
		},
	}

	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "Only list enabled rows")

	return cmd
}
