package engine

import (
	"fmt"
	"time"

	"github.com/mpavlovic/rankwatch/internal/plan"
	"github.com/mpavlovic/rankwatch/internal/searchapi"
)

// CreateFromPlan builds one executor per engine declared in the plan. The
// returned cleanup func closes every executor that was created.
func CreateFromPlan(p *plan.Plan) (map[string]Executor, func(), error) {
	executors := make(map[string]Executor, len(p.Engines))

	cleanup := func() {
		for _, e := range executors {
			_ = e.Close()
		}
	}

	for name, eng := range p.Engines {
		switch eng.Type {
		case "api":
			client := searchapi.NewClient(searchapi.Config{
				BaseURL:     eng.Connection,
				MaxAttempts: p.Retry.MaxAttempts,
				BaseDelay:   time.Duration(p.Retry.BaseDelayMs) * time.Millisecond,
			})
			executors[name] = NewAPIExecutor(name, client, p.Pages, p.PageSize)

		case "elasticsearch":
			index := eng.Index
			if index == "" {
				index = "products"
			}
			exec, err := NewEsExecutor(name, eng.Connection, index, p.Pages*p.PageSize)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("create es executor %q: %w", name, err)
			}
			executors[name] = exec

		default:
			cleanup()
			return nil, nil, fmt.Errorf("unsupported engine type %q for %q", eng.Type, name)
		}
	}

	return executors, cleanup, nil
}
