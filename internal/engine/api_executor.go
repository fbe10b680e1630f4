package engine

import (
	"context"

	"github.com/mpavlovic/rankwatch/internal/reconcile"
	"github.com/mpavlovic/rankwatch/internal/searchapi"
)

// APIExecutor queries the production search API over HTTP, crawling the
// configured number of pages per query.
type APIExecutor struct {
	name     string
	client   *searchapi.Client
	pages    int
	pageSize int
}

func NewAPIExecutor(name string, client *searchapi.Client, pages, pageSize int) *APIExecutor {
	return &APIExecutor{
		name:     name,
		client:   client,
		pages:    pages,
		pageSize: pageSize,
	}
}

func (e *APIExecutor) Search(ctx context.Context, query string) ([]reconcile.Actual, error) {
	return e.client.Search(ctx, query, e.pages, e.pageSize)
}

func (e *APIExecutor) Name() string { return e.name }
func (e *APIExecutor) Close() error { return nil }
