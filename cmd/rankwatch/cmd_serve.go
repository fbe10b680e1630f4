package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpavlovic/rankwatch/internal/report/csvio"
	"github.com/mpavlovic/rankwatch/internal/server"
	"github.com/mpavlovic/rankwatch/internal/stats"
	"github.com/mpavlovic/rankwatch/pkg/config/env"
)

var serveFlags struct {
	input  string
	title  string
	engine string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard for a detail CSV over HTTP",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&serveFlags.input, "input", "i", "", "detail report CSV to serve (required)")
	f.StringVar(&serveFlags.title, "title", "rankwatch report", "dashboard title")
	f.StringVar(&serveFlags.engine, "engine", "", "engine label shown in the dashboard")
	_ = serveCmd.MarkFlagRequired("input")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), ".env"); err != nil {
		return err
	}

	f, err := os.Open(serveFlags.input)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	rows, err := csvio.ReadFlatRows(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("report %s contains no data rows", serveFlags.input)
	}

	groups := stats.GroupRows(rows)

	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	s := server.New(cfg, server.Report{
		Title:       serveFlags.title,
		Engine:      serveFlags.engine,
		GeneratedAt: time.Now(),
		Groups:      groups,
		Overall:     stats.ComputeOverall(groups),
	})
	return s.Start()
}
