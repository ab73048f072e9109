// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/pdiddy/genoscope/pkg/types"
)

// summaryAdapter serves the ID-then-summary catalogs (nuccore, protein):
// one esearch call for opaque IDs, one batched esummary call for the
// structured summaries. The two sub-catalogs share field names and
// differ only in record type.
type summaryAdapter struct {
	client     *eutilsClient
	db         types.Backend
	recordType string
}

func (a *summaryAdapter) Backend() types.Backend { return a.db }

func (a *summaryAdapter) Retrieve(ctx context.Context, strategy types.SearchStrategy) ([]types.Record, error) {
	ids, err := a.client.search(ctx, a.db, strategy.Query, true)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	summaries, err := a.client.esummary(ctx, a.db, ids, "")
	if err != nil {
		return nil, err
	}

	var records []types.Record
	for _, raw := range summaries {
		r, err := parseSeqSummary(raw, a.db, a.recordType)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// seqSummary is the esummary document shape for nuccore and protein.
type seqSummary struct {
	UID              string      `json:"uid"`
	AccessionVersion string      `json:"accessionversion"`
	Title            string      `json:"title"`
	Organism         string      `json:"organism"`
	Slen             json.Number `json:"slen"`
}

// parseSeqSummary normalizes one sequence/protein summary into a Record.
// Accession falls back from accessionversion to the raw uid.
func parseSeqSummary(raw json.RawMessage, db types.Backend, recordType string) (types.Record, error) {
	var s seqSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return types.Record{}, fmt.Errorf("parsing %s summary: %w", db, err)
	}

	r := types.Record{
		ID:         s.UID,
		Accession:  orDefault(s.AccessionVersion, s.UID),
		Title:      orDefault(s.Title, noTitle),
		Organism:   orDefault(s.Organism, unknownValue),
		RecordType: recordType,
		Backend:    db,
	}
	if s.Slen != "" {
		r.Extra = map[string]string{"length": s.Slen.String()}
	}
	return r, nil
}

// runAccessionRE extracts the run accession from the sra esummary "runs"
// attribute string (e.g. `<Run acc="SRR123456" .../>` serialized as
// `@acc="SRR123456"`).
var runAccessionRE = regexp.MustCompile(`@acc="([^"]+)"`)

// sraSummary is the esummary document shape for the run archive. Used by
// accession lookup; strategy retrieval goes through the runinfo report
// instead (see runAdapter).
type sraSummary struct {
	UID       string `json:"uid"`
	Accession string `json:"accession"`
	Title     string `json:"title"`
	Organism  string `json:"organism"`
	StudyType string `json:"study_type"`
	Platform  string `json:"platform"`
	ExpXML    string `json:"expxml"`
	Runs      string `json:"runs"`
}

// parseSRASummary normalizes one run-archive summary. Accession falls
// back through the runs attribute, the accession field, and the raw uid.
func parseSRASummary(raw json.RawMessage) (types.Record, error) {
	var s sraSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return types.Record{}, fmt.Errorf("parsing sra summary: %w", err)
	}

	accession := ""
	if m := runAccessionRE.FindStringSubmatch(s.Runs); m != nil {
		accession = m[1]
	}
	if accession == "" {
		accession = orDefault(s.Accession, s.UID)
	}

	title := s.Title
	if title == "" && s.ExpXML != "" {
		title = s.ExpXML
		if len(title) > 100 {
			title = title[:100]
		}
	}

	r := types.Record{
		ID:         s.UID,
		Accession:  accession,
		Title:      orDefault(title, noTitle),
		Organism:   orDefault(s.Organism, unknownValue),
		RecordType: types.RecordRun,
		Backend:    types.BackendSRA,
	}
	extra := map[string]string{}
	if s.StudyType != "" {
		extra["study_type"] = s.StudyType
	}
	if s.Platform != "" {
		extra["platform"] = s.Platform
	}
	if len(extra) > 0 {
		r.Extra = extra
	}
	return r, nil
}
