package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"crosswarped.com/wordgrid/internal/logging"
)

// logger is set up in PersistentPreRun once flags are parsed.
var logger = zerolog.Nop()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dogword",
		Short:         "Build packed word dictionaries and find the words hidden in letter grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.ConfigFromEnv()
			if level, _ := cmd.Flags().GetString("log_level"); level != "" {
				cfg.Level = level
			}
			if file, _ := cmd.Flags().GetString("log_file"); file != "" {
				cfg.File = file
			}
			if cfg.File != "" {
				logger = logging.New(cfg)
			} else {
				logger = logging.NewWithWriter(cfg, cmd.ErrOrStderr())
			}
		},
	}
	root.PersistentFlags().String("log_level", "", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().String("log_file", "", "Write logs to this file instead of stderr")

	root.AddCommand(
		newBuildCmd(),
		newSolveCmd(),
		newLookupCmd(),
		newDumpCmd(),
	)
	return root
}
