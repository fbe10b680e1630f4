package engine

import (
	"context"

	"github.com/mpavlovic/rankwatch/internal/reconcile"
)

// Executor retrieves the ranked product list one search backend returns
// for a query.
type Executor interface {
	Search(ctx context.Context, query string) ([]reconcile.Actual, error)
	Name() string
	Close() error
}
