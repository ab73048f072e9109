// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent classifies free-text research requests into a structured
// Intent using static synonym tables. The classifier is deliberately
// lexical: a linear first-match scan over small declared-order tables,
// with fixed defaults when nothing matches.
package intent

import (
	"regexp"
	"strings"

	"github.com/pdiddy/genoscope/pkg/types"
)

const (
	defaultOrganism = "human"
	defaultDataType = types.DataRNASeq

	// maxKeywords caps the extracted keyword list.
	maxKeywords = 10

	// fixedConfidence is the constant confidence reported for every
	// extraction. First-match substring scanning yields no per-match
	// quality signal, so a single documented value is the honest one.
	fixedConfidence = 0.8
)

var wordRE = regexp.MustCompile(`\w+`)

// Extract classifies queryText into an Intent. It is total: unmatched
// axes fall back to defaults (organism "human", data type rna-sequencing,
// empty condition) and it never fails.
func Extract(queryText string) types.Intent {
	lower := strings.ToLower(queryText)

	return types.Intent{
		DataType:   types.DataType(matchFirst(dataTypes, lower, string(defaultDataType))),
		Organism:   matchFirst(organisms, lower, defaultOrganism),
		Condition:  matchFirst(conditions, lower, ""),
		Keywords:   Keywords(queryText),
		Confidence: fixedConfidence,
	}
}

// matchFirst returns the category of the first table entry whose any
// synonym is a substring of text, or fallback when none match.
func matchFirst(table []entry, text, fallback string) string {
	for _, e := range table {
		for _, syn := range e.synonyms {
			if strings.Contains(text, syn) {
				return e.category
			}
		}
	}
	return fallback
}

// Keywords tokenizes text on word boundaries, drops stop words and
// tokens of length <= 2, and keeps the first maxKeywords tokens in
// original order. Tokens are not deduplicated.
func Keywords(text string) []string {
	words := wordRE.FindAllString(strings.ToLower(text), -1)

	var keywords []string
	for _, w := range words {
		if stopWords[w] || len(w) <= 2 {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
