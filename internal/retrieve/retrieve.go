// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieve executes search strategies against the NCBI
// E-utilities catalogs and normalizes their heterogeneous responses into
// the uniform Record schema.
//
// Three catalog families are covered: ID-then-summary catalogs (nuccore,
// protein), the run archive (sra, fetched as a tabular runinfo report),
// and the expression dataset catalog (gds, versioned JSON summaries).
package retrieve

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/genoscope/internal/httputil"
	"github.com/pdiddy/genoscope/pkg/types"
)

// Adapter retrieves records for one strategy from one catalog family.
type Adapter interface {
	Backend() types.Backend
	Retrieve(ctx context.Context, strategy types.SearchStrategy) ([]types.Record, error)
}

// Orchestrator dispatches strategies to the adapter matching their
// target backend. It owns the shared outbound HTTP client; everything
// else is request-scoped, so a single Orchestrator is safe for
// concurrent use.
type Orchestrator struct {
	cfg      types.RetrieveConfig
	adapters map[types.Backend]Adapter
	client   *eutilsClient
}

// New builds an Orchestrator from explicit configuration. Defaults:
// 5 results per strategy, tool tag "genoscope", contact
// "researcher@example.com", user agent "genoscope/0.1".
func New(cfg types.RetrieveConfig) *Orchestrator {
	if cfg.MaxPerStrategy <= 0 {
		cfg.MaxPerStrategy = 5
	}
	if cfg.ToolTag == "" {
		cfg.ToolTag = "genoscope"
	}
	if cfg.ContactEmail == "" {
		cfg.ContactEmail = "researcher@example.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "genoscope/0.1"
	}

	client := &eutilsClient{
		http: httputil.NewClient(cfg.HTTPConfig),
		cfg:  cfg,
	}

	o := &Orchestrator{
		cfg:      cfg,
		adapters: make(map[types.Backend]Adapter),
		client:   client,
	}
	for _, a := range []Adapter{
		&summaryAdapter{client: client, db: types.BackendNuccore, recordType: types.RecordNucleotide},
		&summaryAdapter{client: client, db: types.BackendProtein, recordType: types.RecordProtein},
		&runAdapter{client: client},
		&datasetAdapter{client: client},
	} {
		o.adapters[a.Backend()] = a
	}
	return o
}

// Register replaces the adapter for its backend. Tests use this to
// install mocks.
func (o *Orchestrator) Register(a Adapter) {
	o.adapters[a.Backend()] = a
}

// Execute fans the strategies out to their adapters concurrently and
// returns all normalized records plus one message per failed strategy.
// Records keep strategy order (planner priority, then submission order);
// every record is tagged with its strategy's name and priority. A failed
// strategy contributes zero records, never an error: degradation is the
// orchestrator's contract and total failure is the caller's call to make.
func (o *Orchestrator) Execute(ctx context.Context, strategies []types.SearchStrategy) ([]types.Record, []string) {
	perStrategy := make([][]types.Record, len(strategies))
	perError := make([]string, len(strategies))

	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func(i int, s types.SearchStrategy) {
			defer wg.Done()

			adapter, ok := o.adapters[s.Backend]
			if !ok {
				perError[i] = fmt.Sprintf("%s: no adapter for backend %q", s.Name, s.Backend)
				return
			}

			records, err := adapter.Retrieve(ctx, s)
			if err != nil {
				perError[i] = fmt.Sprintf("%s: %v", s.Name, err)
				return
			}
			for j := range records {
				records[j].Strategy = s.Name
				records[j].Priority = s.Priority
			}
			perStrategy[i] = records
		}(i, s)
	}
	wg.Wait()

	var all []types.Record
	var failures []string
	for i := range strategies {
		if perError[i] != "" {
			log.Warn().
				Str("strategy", strategies[i].Name).
				Str("database", string(strategies[i].Backend)).
				Msg(perError[i])
			failures = append(failures, perError[i])
			continue
		}
		all = append(all, perStrategy[i]...)
	}
	return all, failures
}

// placeholder values for fields a catalog omitted.
const (
	unknownValue = "Unknown"
	noTitle      = "No title"
)

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
