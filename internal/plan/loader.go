package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize    = 24
	DefaultPages       = 1
	DefaultConcurrency = 4
	DefaultMaxAttempts = 3
	DefaultBaseDelayMs = 500
)

func LoadFromFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan YAML: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

var validEngineTypes = map[string]bool{
	"api":           true,
	"elasticsearch": true,
}

func validate(p *Plan) error {
	if p.Name == "" {
		p.Name = "rankwatch"
	}
	if p.Input == "" {
		return fmt.Errorf("plan has no input file")
	}
	if len(p.Engines) == 0 {
		return fmt.Errorf("plan has no engines")
	}
	for name, eng := range p.Engines {
		if eng.Type == "" {
			return fmt.Errorf("engine %q has no type", name)
		}
		if !validEngineTypes[eng.Type] {
			return fmt.Errorf("engine %q has invalid type %q", name, eng.Type)
		}
		if eng.Connection == "" {
			return fmt.Errorf("engine %q has no connection", name)
		}
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Pages <= 0 {
		p.Pages = DefaultPages
	}
	if p.Concurrency <= 0 {
		p.Concurrency = DefaultConcurrency
	}
	if p.Retry.MaxAttempts <= 0 {
		p.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if p.Retry.BaseDelayMs <= 0 {
		p.Retry.BaseDelayMs = DefaultBaseDelayMs
	}
	return nil
}
