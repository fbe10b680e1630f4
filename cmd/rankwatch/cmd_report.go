package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mpavlovic/rankwatch/internal/report/csvio"
	"github.com/mpavlovic/rankwatch/internal/report/html"
	"github.com/mpavlovic/rankwatch/internal/stats"
)

var reportFlags struct {
	input  string
	output string
	title  string
	engine string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuild aggregates and the dashboard from an existing detail CSV",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportFlags.input, "input", "i", "", "detail report CSV to aggregate (required)")
	f.StringVarP(&reportFlags.output, "output", "o", "", "dashboard HTML path (default: stdout summary only)")
	f.StringVar(&reportFlags.title, "title", "rankwatch report", "dashboard title")
	f.StringVar(&reportFlags.engine, "engine", "", "engine label shown in the dashboard")
	_ = reportCmd.MarkFlagRequired("input")
}

func runReport(_ *cobra.Command, _ []string) error {
	f, err := os.Open(reportFlags.input)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	rows, err := csvio.ReadFlatRows(f)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("report %s contains no data rows", reportFlags.input)
	}

	groups := stats.GroupRows(rows)
	overall := stats.ComputeOverall(groups)

	bold := color.New(color.Bold)
	bold.Printf("\n%s\n", reportFlags.input)
	fmt.Printf("  queries:   %d\n", overall.TotalQueries)
	fmt.Printf("  products:  %d  (%d matched, %d shifted)\n",
		overall.TotalProducts, overall.TotalMatches, overall.TotalMismatches)
	fmt.Print("  accuracy:  ")
	accuracyColor(overall.AverageAccuracy).Printf("%.2f%%\n", overall.AverageAccuracy)
	printGroupTable(groups)

	if reportFlags.output == "" {
		return nil
	}

	out, err := os.Create(reportFlags.output)
	if err != nil {
		return fmt.Errorf("create dashboard: %w", err)
	}
	defer out.Close()

	payload := html.Payload{
		Title:       reportFlags.title,
		Engine:      reportFlags.engine,
		GeneratedAt: time.Now(),
		Groups:      groups,
		Overall:     overall,
	}
	if err := html.Render(out, payload); err != nil {
		return err
	}
	slog.Info("dashboard written", "path", reportFlags.output)
	return nil
}
