// Package config loads pipeline files describing which county extracts to
// normalize together.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"parcels/internal/county"
)

// Job is one county extract to normalize.
type Job struct {
	County string `yaml:"county"`
	Input  string `yaml:"input"`
}

// Pipeline lists the extracts to normalize and where the combined table
// goes.
type Pipeline struct {
	Output string `yaml:"output"`
	// FairfieldSeed makes the Fairfield down-sample reproducible when set.
	FairfieldSeed *uint64 `yaml:"fairfield_seed,omitempty"`
	Jobs          []Job   `yaml:"jobs"`
}

// Load reads and validates a pipeline file.
func Load(fs afero.Fs, path string) (*Pipeline, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline %s: %w", path, err)
	}
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pipeline %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks that every job names a known county and an input.
func (p *Pipeline) Validate() error {
	if len(p.Jobs) == 0 {
		return errors.New("no jobs")
	}
	for i, j := range p.Jobs {
		if j.Input == "" {
			return fmt.Errorf("job %d: input is required", i)
		}
		if _, err := county.New(j.County); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}
	return nil
}
