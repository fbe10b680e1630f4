package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mpavlovic/rankwatch/internal/engine"
	"github.com/mpavlovic/rankwatch/internal/expect"
	"github.com/mpavlovic/rankwatch/internal/plan"
	"github.com/mpavlovic/rankwatch/internal/presence"
	"github.com/mpavlovic/rankwatch/internal/report/csvio"
	"github.com/mpavlovic/rankwatch/internal/report/html"
	"github.com/mpavlovic/rankwatch/internal/runner"
	"github.com/mpavlovic/rankwatch/internal/store/pg"
	"github.com/mpavlovic/rankwatch/pkg/config/env"
)

var runFlags struct {
	planPath string
	outDir   string
	pgDSN    string
	mappings bool
	groupGap bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a plan and write CSV and HTML reports",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.planPath, "plan", "p", "configs/plan.yaml", "path to the run plan YAML")
	f.StringVarP(&runFlags.outDir, "out", "o", "reports", "directory for generated reports")
	f.StringVar(&runFlags.pgDSN, "pg", "", "PostgreSQL DSN for run history (defaults to RANKWATCH_PG_DSN)")
	f.BoolVar(&runFlags.mappings, "mappings", false, "also write the expectation-centric mapping CSV")
	f.BoolVar(&runFlags.groupGap, "group-gap", true, "separate query groups in the detail CSV with blank lines")
}

func runRun(cmd *cobra.Command, _ []string) error {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), ".env"); err != nil {
		return err
	}

	p, err := plan.LoadFromFile(runFlags.planPath)
	if err != nil {
		return err
	}

	grouped, err := loadExpectations(p.Input)
	if err != nil {
		return err
	}
	slog.Info("loaded ground truth", "file", p.Input, "queries", len(grouped.Order))

	var targets []presence.Target
	if p.Targets != "" {
		if targets, err = loadTargets(p.Targets); err != nil {
			return err
		}
	}

	executors, cleanup, err := engine.CreateFromPlan(p)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := os.MkdirAll(runFlags.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var store *pg.Store
	dsn := runFlags.pgDSN
	if dsn == "" {
		dsn = os.Getenv("RANKWATCH_PG_DSN")
	}
	if dsn != "" {
		if store, err = pg.New(cmd.Context(), dsn); err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
	}

	r := runner.New(runner.Config{PageSize: p.PageSize, Concurrency: p.Concurrency})

	names := make([]string, 0, len(executors))
	for name := range executors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		res, err := r.RunAll(cmd.Context(), executors[name], grouped)
		if err != nil {
			return fmt.Errorf("engine %s: %w", name, err)
		}

		if err := writeReports(p, name, res); err != nil {
			return err
		}
		printRunSummary(p.Name, res)

		if len(targets) > 0 {
			pres, err := presence.Check(targets, res.Pool)
			if err != nil {
				return err
			}
			printPresenceSummary(pres)
		}

		if store != nil {
			if err := store.SaveRun(cmd.Context(), runRecord(p.Name, res)); err != nil {
				return err
			}
			slog.Info("run saved", "runId", res.RunID, "engine", name)
		}
	}
	return nil
}

func loadExpectations(path string) (*expect.Grouped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	entries, err := csvio.ReadExpectations(f)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("input %s contains no usable expectation rows", path)
	}
	return expect.GroupByQuery(entries), nil
}

func loadTargets(path string) ([]presence.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets: %w", err)
	}
	defer f.Close()
	return csvio.ReadTargets(f)
}

func writeReports(p *plan.Plan, engineName string, res *runner.Result) error {
	base := fmt.Sprintf("%s_%s", p.Name, engineName)

	queries := make([]csvio.QueryDetails, 0, len(res.Runs))
	for _, qr := range res.Runs {
		queries = append(queries, csvio.QueryDetails{
			Query:    qr.Query,
			Details:  qr.Details,
			Coverage: qr.Coverage,
		})
	}

	detailPath := filepath.Join(runFlags.outDir, base+"_details.csv")
	df, err := os.Create(detailPath)
	if err != nil {
		return fmt.Errorf("create detail report: %w", err)
	}
	if err := csvio.WriteDetails(df, queries, runFlags.groupGap); err != nil {
		df.Close()
		return err
	}
	if err := df.Close(); err != nil {
		return err
	}
	slog.Info("detail report written", "path", detailPath)

	if runFlags.mappings {
		mappingPath := filepath.Join(runFlags.outDir, base+"_mappings.csv")
		mf, err := os.Create(mappingPath)
		if err != nil {
			return fmt.Errorf("create mapping report: %w", err)
		}
		for i, qr := range res.Runs {
			if err := csvio.WriteMappings(mf, qr.Query, qr.Mappings, i == 0, i > 0); err != nil {
				mf.Close()
				return err
			}
		}
		if err := mf.Close(); err != nil {
			return err
		}
		slog.Info("mapping report written", "path", mappingPath)
	}

	htmlPath := filepath.Join(runFlags.outDir, base+"_dashboard.html")
	hf, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("create dashboard: %w", err)
	}
	payload := html.Payload{
		Title:       p.Name,
		Engine:      res.Engine,
		GeneratedAt: res.StartedAt,
		Groups:      res.Groups,
		Overall:     res.Overall,
	}
	if err := html.Render(hf, payload); err != nil {
		hf.Close()
		return err
	}
	if err := hf.Close(); err != nil {
		return err
	}
	slog.Info("dashboard written", "path", htmlPath)
	return nil
}

func runRecord(planName string, res *runner.Result) pg.RunRecord {
	return pg.RunRecord{
		ID:                res.RunID,
		PlanName:          planName,
		Engine:            res.Engine,
		StartedAt:         res.StartedAt,
		TotalQueries:      res.Overall.TotalQueries,
		TotalProducts:     res.Overall.TotalProducts,
		TotalMatches:      res.Overall.TotalMatches,
		TotalMismatches:   res.Overall.TotalMismatches,
		FailedQueries:     res.FailedQueries(),
		AverageAccuracy:   res.Overall.AverageAccuracy,
		FirstPageCoverage: res.Overall.FirstPage.AverageCoverage,
	}
}
