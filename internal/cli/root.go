// Package cli is the taskdeck command line: the HTTP server plus maintenance
// commands sharing the same configuration and logger.
package cli

import (
	"fmt"
	"os"

	"taskdeck/pkg/config"
	"taskdeck/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the persistent hooks build for every subcommand.
type app struct {
	verbose bool
	envFile string

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand builds the taskdeck command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "Taskdeck - Kanban boards with WIP limits",
		Long: `Taskdeck manages Kanban boards: ordered columns with optional WIP limits,
cards positioned inside columns, and board-scoped labels.

Run "taskdeck serve" to start the HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.envFile != "" {
				a.cfg = config.Load(a.envFile)
			} else {
				a.cfg = config.Load()
			}

			var err error
			a.log, err = logger.New(a.cfg.LogLevel, a.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Environment file to load (default .env)")

	rootCmd.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newSeedCommand(a),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
