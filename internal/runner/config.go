package runner

import "github.com/mpavlovic/rankwatch/internal/reconcile"

const (
	DefaultConcurrency = 4
)

type Config struct {
	PageSize    int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		PageSize:    reconcile.DefaultPageSize,
		Concurrency: DefaultConcurrency,
	}
}
