// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/genoscope/pkg/types"
)

// datasetAdapter serves the expression dataset catalog (gds). Search
// terms get the catalog's "[All Fields]" suffix; summaries are fetched
// with the versioned (2.0) esummary schema.
type datasetAdapter struct {
	client *eutilsClient
}

func (a *datasetAdapter) Backend() types.Backend { return types.BackendGDS }

func (a *datasetAdapter) Retrieve(ctx context.Context, strategy types.SearchStrategy) ([]types.Record, error) {
	ids, err := a.client.search(ctx, types.BackendGDS, strategy.Query+"[All Fields]", false)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	summaries, err := a.client.esummary(ctx, types.BackendGDS, ids, "2.0")
	if err != nil {
		return nil, err
	}

	var records []types.Record
	for _, raw := range summaries {
		r, err := parseDatasetSummary(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// gdsSummary is the versioned esummary document shape for the dataset
// catalog. Accession and sample count are catalog-specific fields.
type gdsSummary struct {
	UID       string      `json:"uid"`
	Accession string      `json:"accession"`
	Title     string      `json:"title"`
	Summary   string      `json:"summary"`
	Taxon     string      `json:"taxon"`
	GDSType   string      `json:"gdstype"`
	NSamples  json.Number `json:"n_samples"`
	GPL       string      `json:"gpl"`
}

func parseDatasetSummary(raw json.RawMessage) (types.Record, error) {
	var s gdsSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return types.Record{}, fmt.Errorf("parsing gds summary: %w", err)
	}

	r := types.Record{
		ID:         s.UID,
		Accession:  orDefault(s.Accession, s.UID),
		Title:      orDefault(s.Title, noTitle),
		Organism:   orDefault(s.Taxon, unknownValue),
		RecordType: types.RecordDataset,
		Backend:    types.BackendGDS,
		Summary:    s.Summary,
	}

	extra := map[string]string{}
	if s.NSamples != "" {
		extra["samples"] = s.NSamples.String()
	}
	if s.GPL != "" {
		extra["platform"] = s.GPL
	}
	if s.GDSType != "" {
		extra["study_type"] = s.GDSType
	}
	if len(extra) > 0 {
		r.Extra = extra
	}
	return r, nil
}
