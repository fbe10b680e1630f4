package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "rankwatch",
	Short:        "Search ranking regression harness",
	Long:         "rankwatch replays a ground-truth query set against a product-search backend,\ncompares expected and actual rankings, and emits CSV reports plus an\ninteractive HTML dashboard.",
	SilenceUsage: true,
}

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	rootCmd.AddCommand(runCmd, reportCmd, presenceCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
