// Package run provides the run command.
package run

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/conductor/internal/cmd/application"
	"github.com/agentstation/conductor/internal/cmd/globals"
	"github.com/agentstation/conductor/internal/cmd/output"
	"github.com/agentstation/conductor/pkg/conductor"
	"github.com/agentstation/conductor/pkg/logging"
)

// NewCommand creates the run command.
func NewCommand(app application.Application) *cobra.Command {
	var rows []string

	cmd := &cobra.Command{
		Use:     "run [conductor-rowid...]",
		GroupID: "core",
		Short:   "Sync destination dropdowns from their source columns",
		Long: `Run reads the conductor sheet, audits every mapping row's source and
destination columns, and rewrites each destination dropdown with the distinct
values of its source column.

Without row ids every enabled row is processed. With row ids (as arguments or
through --rows) only the rows whose CONDUCTOR_rowid matches are processed.`,
		Example: `  conductor run                              # Full run over every enabled row
  conductor run 364965002733444              # Focused run on one row
  conductor run --rows 364965002733444,7788  # Focused run on several rows
  conductor run -o json > report.json        # Machine readable report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := collectIDs(args, rows)

			c, err := app.Conductor()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			if timeout := app.RunTimeout(); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var report *conductor.Report
			if len(ids) > 0 {
				report, err = c.FocusedRun(ctx, ids)
			} else {
				report, err = c.FullRun(ctx)
			}
			if report != nil {
				app.Logger().Info().Msg(report.Summary())
				if ferr := output.FormatReport(cmd.OutOrStdout(), report, outputFlags(cmd, app)); ferr != nil && err == nil {
					err = ferr
				}
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&rows, "rows", nil, "CONDUCTOR_rowid values to run (comma separated)")

	return cmd
}

// collectIDs merges positional and flag ids, dropping blanks and repeats.
func collectIDs(args, flagIDs []string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, id := range append(append([]string{}, args...), flagIDs...) {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// outputFlags returns the global flags with the output format defaulted from config.
func outputFlags(cmd *cobra.Command, app application.Application) *globals.Flags {
	flags, _ := globals.Parse(cmd)
	if flags.Output == "" {
		flags.Output = app.OutputFormat()
	}
	return flags
}
