// Package application provides the application interface for conductor commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            c, err := app.Conductor()
//	            if err != nil {
//	                return err
//	            }
//	            report, err := c.FullRun(cmd.Context())
//	            // ... render report
//	        },
//	    }
//	}
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/conductor/pkg/conductor"
)

// Conductor runs dropdown syncs against a conductor sheet.
// *conductor.Runner implements it.
type Conductor interface {
	FullRun(ctx context.Context) (*conductor.Report, error)
	FocusedRun(ctx context.Context, ids []string) (*conductor.Report, error)
	Rows(ctx context.Context) ([]conductor.MappingRow, error)
}

// Application provides the application interface that commands need.
// The App struct from cmd/conductor/app implements this interface.
type Application interface {
	// Conductor returns the runner for the configured conductor sheet.
	// It fails with a config error when the token or sheet id is missing.
	Conductor() (Conductor, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// RunTimeout bounds a single run. Zero means no limit.
	RunTimeout() time.Duration

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
