// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/pdiddy/genoscope/pkg/types"
)

// runAdapter serves the run archive (sra). IDs come from esearch; the
// per-run metadata comes from an efetch runinfo report, a header+rows
// table. Columns are resolved by header name, never by position, because
// the service may reorder or omit them.
type runAdapter struct {
	client *eutilsClient
}

func (a *runAdapter) Backend() types.Backend { return types.BackendSRA }

func (a *runAdapter) Retrieve(ctx context.Context, strategy types.SearchStrategy) ([]types.Record, error) {
	ids, err := a.client.search(ctx, types.BackendSRA, strategy.Query, true)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	report, err := a.client.efetch(ctx, types.BackendSRA, ids, "runinfo")
	if err != nil {
		return nil, err
	}
	return parseRunInfo(report)
}

// parseRunInfo converts a runinfo report into Records, one per row.
func parseRunInfo(report []byte) ([]types.Record, error) {
	reader := csv.NewReader(strings.NewReader(string(report)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing runinfo report: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []types.Record
	for _, row := range rows[1:] {
		// Ordered accession fallback: run, then experiment, then study.
		accession := field(row, "Run")
		if accession == "" {
			accession = field(row, "Experiment")
		}
		if accession == "" {
			accession = field(row, "SRAStudy")
		}
		if accession == "" {
			// Row carries no identifier at all; nothing to link to.
			continue
		}

		sample := orDefault(field(row, "SampleName"), unknownValue)
		libStrategy := orDefault(field(row, "LibraryStrategy"), "RNA-Seq")
		organism := field(row, "ScientificName")
		if organism == "" {
			organism = field(row, "Organism")
		}

		r := types.Record{
			ID:         accession,
			Accession:  accession,
			Title:      sample + " - " + libStrategy,
			Organism:   orDefault(organism, unknownValue),
			RecordType: types.RecordRun,
			Backend:    types.BackendSRA,
		}

		extra := map[string]string{}
		for key, name := range map[string]string{
			"platform":   "Platform",
			"experiment": "Experiment",
			"study":      "SRAStudy",
			"study_type": "LibraryStrategy",
		} {
			if v := field(row, name); v != "" {
				extra[key] = v
			}
		}
		if len(extra) > 0 {
			r.Extra = extra
		}
		records = append(records, r)
	}
	return records, nil
}
