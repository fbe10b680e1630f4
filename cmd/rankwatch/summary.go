package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/mpavlovic/rankwatch/internal/presence"
	"github.com/mpavlovic/rankwatch/internal/runner"
	"github.com/mpavlovic/rankwatch/internal/stats"
)

func accuracyColor(acc float64) *color.Color {
	switch {
	case acc >= 90:
		return color.New(color.FgGreen)
	case acc >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func printRunSummary(planName string, res *runner.Result) {
	bold := color.New(color.Bold)
	bold.Printf("\n%s [%s] run %s (%s)\n", planName, res.Engine, res.RunID, res.Duration.Round(time.Millisecond))

	o := res.Overall
	fmt.Printf("  queries:   %d", o.TotalQueries)
	if failed := res.FailedQueries(); failed > 0 {
		color.New(color.FgRed).Printf("  (%d failed)", failed)
	}
	fmt.Println()
	fmt.Printf("  products:  %d  (%d matched, %d shifted)\n", o.TotalProducts, o.TotalMatches, o.TotalMismatches)
	fmt.Print("  accuracy:  ")
	accuracyColor(o.AverageAccuracy).Printf("%.2f%%\n", o.AverageAccuracy)
	fmt.Printf("  1st page:  %d/%d (%.2f%%)\n",
		o.FirstPage.TotalFound, o.FirstPage.TotalExpected, o.FirstPage.AverageCoverage)

	printGroupTable(res.Groups)
}

func printGroupTable(groups *stats.Groups) {
	if groups == nil || len(groups.Order) == 0 {
		return
	}
	fmt.Println()
	for _, q := range groups.Order {
		g := groups.ByQuery[q]
		accuracyColor(g.Accuracy).Printf("  %7.2f%%", g.Accuracy)
		fmt.Printf("  %-40s  %d/%d exact\n", q, g.Matches, g.TotalExpected)
	}
}

func printPresenceSummary(res *presence.Result) {
	bold := color.New(color.Bold)
	bold.Println("\npresence check")
	fmt.Printf("  targets:   %d\n", res.TotalInput)
	fmt.Printf("  found:     %d\n", res.TotalFound)
	if res.TotalMissing > 0 {
		color.New(color.FgRed).Printf("  missing:   %d\n", res.TotalMissing)
	}
	accuracyColor(res.FoundPercentage).Printf("  coverage:  %.2f%%\n", res.FoundPercentage)
}
