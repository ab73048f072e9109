// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the query-understanding stages into the single
// entry point collaborators call: free text in, ranked and annotated
// records out.
//
// Flow: text → intent extraction → strategy planning → concurrent
// retrieval → scoring/ranking → recommendations. Every stage produces a
// new immutable value for the next; the pipeline holds no cross-query
// state beyond the orchestrator's pooled HTTP client.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/genoscope/internal/intent"
	"github.com/pdiddy/genoscope/internal/rank"
	"github.com/pdiddy/genoscope/internal/retrieve"
	"github.com/pdiddy/genoscope/internal/strategy"
	"github.com/pdiddy/genoscope/pkg/types"
)

// Retriever is the retrieval capability the pipeline depends on. The
// production implementation is *retrieve.Orchestrator; tests substitute
// fakes.
type Retriever interface {
	Execute(ctx context.Context, strategies []types.SearchStrategy) ([]types.Record, []string)
	Lookup(ctx context.Context, accession string) (types.Record, error)
	FetchSequences(ctx context.Context, accessions []string, format string) (string, error)
}

// QueryError is the pipeline-level failure: it carries the original
// query so collaborators can render it, distinct from an
// empty-but-successful Response.
type QueryError struct {
	OriginalQuery string
	Message       string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query processing failed: %s", e.Message)
}

// Agent runs the pipeline. Safe for concurrent use: all per-query data
// is request-scoped.
type Agent struct {
	cfg       types.PipelineConfig
	retriever Retriever
}

// New builds an Agent with a production retrieval orchestrator.
func New(cfg types.PipelineConfig) *Agent {
	return &Agent{cfg: cfg, retriever: retrieve.New(cfg.Retrieve)}
}

// NewWithRetriever builds an Agent around an explicit retriever.
func NewWithRetriever(cfg types.PipelineConfig, r Retriever) *Agent {
	return &Agent{cfg: cfg, retriever: r}
}

// ProcessQuery turns a free-text research request into a ranked
// Response. A strategy that fails contributes nothing; the query only
// errors when every planned strategy failed. Zero records with all
// strategies succeeding is a valid Response (with a broader-terms
// recommendation), not an error.
func (a *Agent) ProcessQuery(ctx context.Context, text string) (*types.Response, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &QueryError{OriginalQuery: text, Message: "empty query"}
	}

	parsed := intent.Extract(text)
	log.Debug().
		Str("data_type", string(parsed.DataType)).
		Str("organism", parsed.Organism).
		Str("condition", parsed.Condition).
		Msg("parsed query intent")

	strategies := strategy.Plan(parsed)
	log.Debug().Int("strategies", len(strategies)).Msg("planned search strategies")

	records, failures := a.retriever.Execute(ctx, strategies)
	if len(records) == 0 && len(failures) == len(strategies) && len(strategies) > 0 {
		return nil, &QueryError{
			OriginalQuery: text,
			Message:       "all search strategies failed: " + strings.Join(failures, "; "),
		}
	}

	ranked := rank.Rank(records, parsed, a.cfg.Rank.MaxResults)
	for i := range ranked {
		ranked[i].DownloadURL = DownloadURL(ranked[i].Backend, ranked[i].Accession)
	}

	return &types.Response{
		OriginalQuery:   text,
		Intent:          parsed,
		Strategies:      strategies,
		Records:         ranked,
		Recommendations: rank.Recommend(ranked, parsed),
	}, nil
}

// Lookup finds a single accession across all catalogs.
func (a *Agent) Lookup(ctx context.Context, accession string) (types.Record, error) {
	r, err := a.retriever.Lookup(ctx, accession)
	if err != nil {
		return types.Record{}, err
	}
	r.DownloadURL = DownloadURL(r.Backend, r.Accession)
	return r, nil
}

// FetchSequences downloads sequence data for accessions ("fasta" or "gb").
func (a *Agent) FetchSequences(ctx context.Context, accessions []string, format string) (string, error) {
	return a.retriever.FetchSequences(ctx, accessions, format)
}

// DownloadURL builds the per-record download link from the backend's
// fixed URL template. Three templates cover the three catalog families;
// the nucleotide template is the default for everything else.
func DownloadURL(backend types.Backend, accession string) string {
	switch backend {
	case types.BackendGDS:
		return "https://www.ncbi.nlm.nih.gov/geo/query/acc.cgi?acc=" + accession
	case types.BackendSRA:
		return "https://www.ncbi.nlm.nih.gov/sra/" + accession
	default:
		return "https://www.ncbi.nlm.nih.gov/nuccore/" + accession
	}
}
