package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "melo",
		Short: "Melo - home media server daemon",
		Long: `Melo is a home media server daemon.

It exposes a JSON-RPC 2.0 control surface (browse, play, queue, configure)
over HTTP on which media source modules register their methods.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}
