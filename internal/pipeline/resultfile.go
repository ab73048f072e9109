// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genoscope/pkg/types"
)

// ResultFile is the on-disk representation of a processed query. The
// researcher can save a run to a file and reload it later without
// re-querying the catalogs.
type ResultFile struct {
	OriginalQuery   string                 `yaml:"original_query"`
	Intent          types.Intent           `yaml:"parsed_intent"`
	Strategies      []types.SearchStrategy `yaml:"search_strategies"`
	Records         []types.Record         `yaml:"results"`
	Recommendations []string               `yaml:"recommendations"`
	Timestamp       time.Time              `yaml:"timestamp"`
}

// WriteResultFile saves a response to a YAML file.
func WriteResultFile(path string, resp *types.Response) error {
	rf := ResultFile{
		OriginalQuery:   resp.OriginalQuery,
		Intent:          resp.Intent,
		Strategies:      resp.Strategies,
		Records:         resp.Records,
		Recommendations: resp.Recommendations,
		Timestamp:       time.Now(),
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}

// ToResponse converts a loaded result file back into a Response.
func (rf *ResultFile) ToResponse() *types.Response {
	return &types.Response{
		OriginalQuery:   rf.OriginalQuery,
		Intent:          rf.Intent,
		Strategies:      rf.Strategies,
		Records:         rf.Records,
		Recommendations: rf.Recommendations,
	}
}
