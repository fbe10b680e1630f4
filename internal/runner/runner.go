package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mpavlovic/rankwatch/internal/engine"
	"github.com/mpavlovic/rankwatch/internal/expect"
	"github.com/mpavlovic/rankwatch/internal/presence"
	"github.com/mpavlovic/rankwatch/internal/reconcile"
	"github.com/mpavlovic/rankwatch/internal/stats"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	if cfg.PageSize <= 0 {
		cfg.PageSize = reconcile.DefaultPageSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Runner{config: cfg}
}

// RunAll executes every query in the grouped expectation set against one
// backend. Queries run with bounded concurrency; each query's work is
// independent, so ordering of execution does not affect the result. A
// query whose search call fails after retries is recorded as No Response
// rather than aborting the run.
func (r *Runner) RunAll(ctx context.Context, exec engine.Executor, grouped *expect.Grouped) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:     uuid.New(),
		Engine:    exec.Name(),
		StartedAt: start,
	}

	runs := make([]QueryRun, len(grouped.Order))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)

	for i, q := range grouped.Order {
		g.Go(func() error {
			runs[i] = r.runQuery(gctx, exec, q, grouped.ByQuery[q])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Runs = runs
	for _, qr := range runs {
		res.Rows = append(res.Rows, qr.Rows...)
		for _, d := range qr.Details {
			if d.Occupied() {
				res.Pool = append(res.Pool, presence.Product{Name: d.ActualName, SKU: d.ActualSKU})
			}
		}
	}
	res.Groups = stats.GroupRows(res.Rows)
	res.Overall = stats.ComputeOverall(res.Groups)
	res.Duration = time.Since(start)

	slog.Info("run complete",
		"run_id", res.RunID,
		"engine", res.Engine,
		"queries", res.Overall.TotalQueries,
		"accuracy", res.Overall.AverageAccuracy,
		"failed_queries", res.FailedQueries(),
		"duration", res.Duration,
	)
	return res, nil
}

func (r *Runner) runQuery(ctx context.Context, exec engine.Executor, query string, expected []expect.Entry) QueryRun {
	qr := QueryRun{Query: query}

	actual, err := exec.Search(ctx, query)
	if err != nil {
		slog.Warn("search failed", "query", query, "engine", exec.Name(), "error", err)
		qr.Err = err
		qr.Details = reconcile.NoResponseDetails(expected)
		qr.Rows = buildRows(query, qr.Details, nil)
		return qr
	}

	qr.Mappings = reconcile.Reconcile(expected, actual)
	qr.Details = reconcile.SlotDetails(actual, expect.ByPosition(expected))
	qr.Coverage = reconcile.FirstPageCoverage(expected, actual, r.config.PageSize)
	qr.Rows = buildRows(query, qr.Details, qr.Coverage)
	return qr
}

// buildRows flattens slot details into report rows. The first row of a
// query carries the first-page figures; the rest leave them blank so the
// aggregator's first-value-wins rule picks them up exactly once.
func buildRows(query string, details []reconcile.Detail, cov *reconcile.Coverage) []stats.FlatRow {
	rows := make([]stats.FlatRow, 0, len(details))
	for i, d := range details {
		row := stats.FlatRow{
			Query:        query,
			ExpectedName: d.ExpectedName,
			ActualName:   d.ActualName,
			ExpectedSKU:  d.ExpectedSKU,
			ActualSKU:    d.ActualSKU,
			Status:       d.Status.Bucket(),
		}
		if d.ExpectedPosition > 0 {
			row.ExpectedPos = strconv.Itoa(d.ExpectedPosition)
		}
		if d.Occupied() {
			row.ActualPos = strconv.Itoa(d.Position)
		}
		if i == 0 && cov != nil {
			row.FirstPageCount = fmt.Sprintf("%d/%d", cov.FoundOnFirstPage, cov.TotalExpected)
			row.FirstPageCoverage = fmt.Sprintf("%.2f", cov.Percentage())
		}
		rows = append(rows, row)
	}
	return rows
}
