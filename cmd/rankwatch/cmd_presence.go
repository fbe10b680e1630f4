package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpavlovic/rankwatch/internal/presence"
	"github.com/mpavlovic/rankwatch/internal/report/csvio"
)

var presenceFlags struct {
	targets string
	report  string
}

var presenceCmd = &cobra.Command{
	Use:   "presence",
	Short: "Check whether target products appeared anywhere in a run",
	RunE:  runPresence,
}

func init() {
	f := presenceCmd.Flags()
	f.StringVarP(&presenceFlags.targets, "targets", "t", "", "CSV with target product names and SKUs (required)")
	f.StringVarP(&presenceFlags.report, "report", "r", "", "detail report CSV from a previous run (required)")
	_ = presenceCmd.MarkFlagRequired("targets")
	_ = presenceCmd.MarkFlagRequired("report")
}

func runPresence(_ *cobra.Command, _ []string) error {
	tf, err := os.Open(presenceFlags.targets)
	if err != nil {
		return fmt.Errorf("open targets: %w", err)
	}
	defer tf.Close()

	targets, err := csvio.ReadTargets(tf)
	if err != nil {
		return err
	}

	rf, err := os.Open(presenceFlags.report)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer rf.Close()

	rows, err := csvio.ReadFlatRows(rf)
	if err != nil {
		return err
	}

	res, err := presence.Check(targets, csvio.PoolFromRows(rows))
	if err != nil {
		return err
	}
	printPresenceSummary(res)
	return nil
}
