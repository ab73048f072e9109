// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores normalized records against the query intent,
// orders them, and derives result recommendations. Everything here is a
// pure function over request-scoped data.
package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/genoscope/pkg/types"
)

// DefaultMaxResults is the size of the final ranked list.
const DefaultMaxResults = 10

// expressionTerms mark a title as expression-related for the data-type
// score component.
var expressionTerms = []string{"rna", "expression", "transcriptome"}

// Score computes the relevance of record to intent, in [0, 1]. The
// components are additive: strategy priority contributes (4-priority)*0.2
// floored at zero, an organism match 0.3, an expression-term title match
// 0.2 for expression-like intents, and each intent keyword found in the
// title 0.1. The keyword term is unbounded before the final clamp, so
// keyword-dense titles can saturate the score; that mirrors the
// long-standing ranking behavior and is intentional.
func Score(record types.Record, intent types.Intent) float64 {
	score := 0.0

	if contribution := float64(4-record.Priority) * 0.2; contribution > 0 {
		score += contribution
	}

	if intent.Organism != "" &&
		strings.Contains(strings.ToLower(record.Organism), strings.ToLower(intent.Organism)) {
		score += 0.3
	}

	title := strings.ToLower(record.Title)
	if intent.DataType.IsExpressionLike() {
		for _, term := range expressionTerms {
			if strings.Contains(title, term) {
				score += 0.2
				break
			}
		}
	}

	for _, kw := range intent.Keywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			score += 0.1
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// Rank scores every record, sorts descending by score (stable: equal
// scores keep their input order), and truncates to maxResults. The input
// slice is not modified; the returned records carry their scores.
func Rank(records []types.Record, intent types.Intent, maxResults int) []types.Record {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ranked := make([]types.Record, len(records))
	copy(ranked, records)
	for i := range ranked {
		ranked[i].RelevanceScore = Score(ranked[i], intent)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// Recommendation messages.
const (
	MsgNoResults     = "No results found. Try broader search terms."
	MsgGEODatasets   = "Found GEO expression datasets - great for comparative analysis"
	MsgSRADownloads  = "Found SRA sequencing data - download raw FASTQ files available"
	highScoreCutoff  = 0.5
)

// Recommend derives short hints from the ranked records. Empty input
// yields exactly the broader-terms message. Otherwise one fixed message
// per backend family present (dataset catalog first, then run archive),
// and last a count of records scoring above the high-relevance cutoff
// when that count is nonzero.
func Recommend(records []types.Record, intent types.Intent) []string {
	if len(records) == 0 {
		return []string{MsgNoResults}
	}

	present := map[types.Backend]bool{}
	for _, r := range records {
		present[r.Backend] = true
	}

	var recs []string
	if present[types.BackendGDS] {
		recs = append(recs, MsgGEODatasets)
	}
	if present[types.BackendSRA] {
		recs = append(recs, MsgSRADownloads)
	}

	high := 0
	for _, r := range records {
		if r.RelevanceScore > highScoreCutoff {
			high++
		}
	}
	if high > 0 {
		recs = append(recs, fmt.Sprintf("Found %d highly relevant datasets", high))
	}
	return recs
}
