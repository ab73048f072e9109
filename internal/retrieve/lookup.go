// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/genoscope/pkg/types"
)

// lookupOrder is the catalog search order for accession lookup.
var lookupOrder = []types.Backend{
	types.BackendSRA,
	types.BackendGDS,
	types.BackendNuccore,
	types.BackendProtein,
}

// Lookup finds a single accession across the catalogs, trying each in a
// fixed order and returning the first summary found. The search term is
// the accession restricted to the accession field ("[ACCN]").
func (o *Orchestrator) Lookup(ctx context.Context, accession string) (types.Record, error) {
	term := accession + "[ACCN]"

	for _, db := range lookupOrder {
		ids, err := o.client.search(ctx, db, term, false)
		if err != nil || len(ids) == 0 {
			continue
		}

		version := ""
		if db == types.BackendGDS {
			version = "2.0"
		}
		summaries, err := o.client.esummary(ctx, db, ids[:1], version)
		if err != nil || len(summaries) == 0 {
			continue
		}

		r, err := parseLookupSummary(summaries[0], db)
		if err != nil {
			continue
		}
		return r, nil
	}
	return types.Record{}, fmt.Errorf("accession %s not found in any catalog", accession)
}

func parseLookupSummary(raw json.RawMessage, db types.Backend) (types.Record, error) {
	switch db {
	case types.BackendSRA:
		return parseSRASummary(raw)
	case types.BackendGDS:
		return parseDatasetSummary(raw)
	case types.BackendProtein:
		return parseSeqSummary(raw, db, types.RecordProtein)
	default:
		return parseSeqSummary(raw, db, types.RecordNucleotide)
	}
}

// FetchSequences downloads sequence data for accessions from the
// nucleotide catalog in the requested format ("fasta" or "gb"). The
// payload is returned verbatim.
func (o *Orchestrator) FetchSequences(ctx context.Context, accessions []string, format string) (string, error) {
	if len(accessions) == 0 {
		return "", fmt.Errorf("no accessions given")
	}
	if format == "" {
		format = "fasta"
	}

	body, err := o.client.efetch(ctx, types.BackendNuccore, accessions, format)
	if err != nil {
		return "", fmt.Errorf("downloading sequences: %w", err)
	}
	return string(body), nil
}
