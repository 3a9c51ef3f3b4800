package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/conductor/cmd/conductor/cmd/rows"
	"github.com/agentstation/conductor/cmd/conductor/cmd/run"
	"github.com/agentstation/conductor/cmd/conductor/cmd/version"
	"github.com/agentstation/conductor/internal/cmd/globals"
	"github.com/agentstation/conductor/internal/cmd/output"
)

// Execute runs the conductor CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "conductor",
		Short:   "Dropdown sync for Smartsheet",
		Version: a.version,
		Long: `Conductor keeps dropdown columns across Smartsheet sheets in sync.

A conductor sheet declares mapping rows, each naming a source column and a
destination dropdown column. A run collects the distinct values (or contacts)
of every source column and rewrites the options of its destination, writing
the outcome of each row back into the conductor sheet.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.conductor.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("conductor {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}

	// An explicit config file replaces the one found at startup.
	if cmd.Flags().Changed("config") {
		config, err := LoadConfigFile(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.setConfig(config)
	}

	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor, flags.Output, mustGetString(cmd, "log-level"))

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// setConfig swaps the configuration and drops anything built from the old one.
func (a *App) setConfig(config *Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = config
	a.conductor = nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(run.NewCommand(a))
	rootCmd.AddCommand(rows.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
