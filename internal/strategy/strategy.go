// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package strategy turns a parsed Intent into an ordered list of
// backend-targeted search strategies. Planning is deterministic: fixed
// rules, no randomization, no backtracking.
package strategy

import (
	"strings"

	"github.com/pdiddy/genoscope/pkg/types"
)

// Strategy name tags.
const (
	NameClinical   = "clinical_samples"
	NameDirect     = "direct_keywords"
	NameExpression = "geo_expression"
)

// backendByDataType routes the primary strategy. Unknown data types fall
// back to the nucleotide catalog.
var backendByDataType = map[types.DataType]types.Backend{
	types.DataRNASeq:     types.BackendSRA,
	types.DataChIPSeq:    types.BackendSRA,
	types.DataSingleCell: types.BackendSRA,
	types.DataDNASeq:     types.BackendNuccore,
	types.DataProtein:    types.BackendProtein,
}

// cell-line exclusion clause appended to tissue-restricted queries.
const tissueFilter = "(biopsy OR tissue OR primary) NOT (cell line OR MCF OR HeLa OR culture)"

// Plan derives one or two search strategies from intent. The primary
// strategy (priority 1) always exists; a secondary GEO strategy
// (priority 2) is added only for expression-like data types and only
// when its composed query is non-empty.
func Plan(intent types.Intent) []types.SearchStrategy {
	clinical := hasClinicalMarker(intent.Keywords)

	var strategies []types.SearchStrategy

	if clinical {
		strategies = append(strategies, types.SearchStrategy{
			Name:     NameClinical,
			Query:    joinTerms(intent.Organism, intent.Condition, string(intent.DataType)) + " " + tissueFilter,
			Backend:  SelectBackend(intent.DataType),
			Priority: 1,
		})
	} else {
		strategies = append(strategies, types.SearchStrategy{
			Name:     NameDirect,
			Query:    joinTerms(intent.Organism, intent.Condition, string(intent.DataType)),
			Backend:  SelectBackend(intent.DataType),
			Priority: 1,
		})
	}

	if intent.DataType.IsExpressionLike() {
		var q string
		if clinical {
			q = joinTerms(intent.Condition, intent.Organism) + " (tissue OR biopsy OR primary) NOT (cell line)"
		} else {
			q = joinTerms(intent.Condition, intent.Organism)
		}
		if strings.TrimSpace(q) != "" {
			strategies = append(strategies, types.SearchStrategy{
				Name:     NameExpression,
				Query:    q,
				Backend:  types.BackendGDS,
				Priority: 2,
			})
		}
	}

	return strategies
}

// SelectBackend maps a data type to its catalog.
func SelectBackend(d types.DataType) types.Backend {
	if b, ok := backendByDataType[d]; ok {
		return b
	}
	return types.BackendNuccore
}

// hasClinicalMarker reports whether the keywords contain a
// tissue/clinical-sample marker.
func hasClinicalMarker(keywords []string) bool {
	joined := strings.Join(keywords, " ")
	return strings.Contains(joined, "biopsy") || strings.Contains(joined, "tissue")
}

// joinTerms joins non-empty terms with single spaces.
func joinTerms(terms ...string) string {
	var parts []string
	for _, t := range terms {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
