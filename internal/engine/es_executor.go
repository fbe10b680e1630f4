package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/mpavlovic/rankwatch/internal/reconcile"
)

// EsExecutor queries a product index directly, bypassing the public API.
// Useful for checking whether a ranking regression comes from the engine
// or from the API layer in front of it.
type EsExecutor struct {
	name   string
	client *elasticsearch.TypedClient
	index  string
	size   int
}

func NewEsExecutor(name, addresses, index string, size int) (*EsExecutor, error) {
	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: strings.Split(addresses, ","),
	})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}
	return &EsExecutor{
		name:   name,
		client: client,
		index:  index,
		size:   size,
	}, nil
}

func (e *EsExecutor) Search(ctx context.Context, query string) ([]reconcile.Actual, error) {
	res, err := e.client.Search().
		Index(e.index).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  query,
				Fields: []string{"name^2", "sku"},
			},
		}).
		Size(e.size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}

	actuals := make([]reconcile.Actual, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc esProduct
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("es parse product doc: %w", err)
		}
		actuals = append(actuals, reconcile.Actual{Name: doc.Name, SKU: doc.SKU})
	}
	return actuals, nil
}

func (e *EsExecutor) Name() string { return e.name }
func (e *EsExecutor) Close() error { return nil }

type esProduct struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}
