package plan

// Plan describes one regression run: where the ground truth lives, which
// backends to query, and how to crawl them.
type Plan struct {
	Name        string            `yaml:"name"`
	Input       string            `yaml:"input"`
	Targets     string            `yaml:"targets,omitempty"`
	PageSize    int               `yaml:"page_size"`
	Pages       int               `yaml:"pages"`
	Concurrency int               `yaml:"concurrency"`
	Engines     map[string]Engine `yaml:"engines"`
	Retry       RetryConfig       `yaml:"retry"`
}

type Engine struct {
	Type       string `yaml:"type"`
	Connection string `yaml:"connection"`
	Index      string `yaml:"index,omitempty"`
}

type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelayMs int `yaml:"base_delay_ms"`
}
