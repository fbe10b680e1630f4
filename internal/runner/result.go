package runner

import (
	"time"

	"github.com/google/uuid"
	"github.com/mpavlovic/rankwatch/internal/presence"
	"github.com/mpavlovic/rankwatch/internal/reconcile"
	"github.com/mpavlovic/rankwatch/internal/stats"
)

// QueryRun holds everything produced for one query against one backend.
type QueryRun struct {
	Query    string
	Mappings []reconcile.Mapping
	Details  []reconcile.Detail
	Coverage *reconcile.Coverage
	Rows     []stats.FlatRow
	Err      error
}

// Result is one full run of a plan against one backend.
type Result struct {
	RunID     uuid.UUID
	Engine    string
	StartedAt time.Time
	Duration  time.Duration
	Runs      []QueryRun
	Rows      []stats.FlatRow
	Groups    *stats.Groups
	Overall   stats.Overall
	Pool      []presence.Product
}

// FailedQueries counts queries whose search call never succeeded.
func (r *Result) FailedQueries() int {
	var n int
	for _, qr := range r.Runs {
		if qr.Err != nil {
			n++
		}
	}
	return n
}
