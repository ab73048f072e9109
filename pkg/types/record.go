// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the genoscope pipeline.
package types

// DataType is the canonical experiment/data category detected in a query.
type DataType string

const (
	DataRNASeq     DataType = "rna-sequencing"
	DataDNASeq     DataType = "dna-sequencing"
	DataProtein    DataType = "protein"
	DataChIPSeq    DataType = "chip-seq"
	DataSingleCell DataType = "single-cell"
	DataExpression DataType = "expression"
)

// IsExpressionLike reports whether the data type describes expression
// measurements (RNA-seq or microarray-style expression data).
func (d DataType) IsExpressionLike() bool {
	return d == DataRNASeq || d == DataExpression
}

// Backend identifies one NCBI catalog family.
type Backend string

const (
	BackendNuccore Backend = "nuccore"
	BackendProtein Backend = "protein"
	BackendSRA     Backend = "sra"
	BackendGDS     Backend = "gds"
)

// Record types produced by normalization.
const (
	RecordNucleotide = "nucleotide sequence"
	RecordProtein    = "protein sequence"
	RecordRun        = "sequencing run"
	RecordDataset    = "expression dataset"
)

// Intent is the structured classification of a free-text research request.
// Built once per query by the intent extractor and immutable thereafter.
type Intent struct {
	// DataType is the detected experiment category (defaults to rna-sequencing).
	DataType DataType `json:"data_type" yaml:"data_type"`

	// Organism is the canonical organism name (defaults to "human").
	Organism string `json:"organism" yaml:"organism"`

	// Condition is the detected disease/condition, empty when unknown.
	Condition string `json:"condition" yaml:"condition"`

	// Keywords are up to ten meaningful query tokens in original order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Confidence is a fixed 0.8: the extractor is a lexical first-match
	// classifier with no per-match quality signal behind it.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// SearchStrategy is one concrete backend-targeted query derived from an Intent.
type SearchStrategy struct {
	// Name tags the strategy (e.g. "direct_keywords", "geo_expression").
	Name string `json:"strategy" yaml:"strategy"`

	// Query is the composed search term sent to the backend.
	Query string `json:"query" yaml:"query"`

	// Backend is the catalog this strategy targets.
	Backend Backend `json:"database" yaml:"database"`

	// Priority orders strategies; lower numbers score higher (best is 1).
	Priority int `json:"priority" yaml:"priority"`
}

// Record is a normalized result entry, uniform across backends.
// Accession and Backend are always populated: adapters fall back to the
// raw catalog ID when the source omits a proper accession.
type Record struct {
	// ID is the raw catalog identifier (NCBI UID or run accession).
	ID string `json:"id" yaml:"id"`

	// Accession is the stable external identifier used for download links.
	Accession string `json:"accession" yaml:"accession"`

	// Title is the entry title as returned by the catalog.
	Title string `json:"title" yaml:"title"`

	// Organism is the source organism, "Unknown" when the catalog omits it.
	Organism string `json:"organism" yaml:"organism"`

	// RecordType classifies the entry (e.g. "sequencing run").
	RecordType string `json:"type" yaml:"type"`

	// Backend identifies which catalog produced this record.
	Backend Backend `json:"database" yaml:"database"`

	// Summary is a short description, empty when the catalog has none.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Extra holds backend-specific fields (platform, length, sample count).
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Strategy and Priority are copied from the strategy that found the record.
	Strategy string `json:"search_strategy" yaml:"search_strategy"`
	Priority int    `json:"priority" yaml:"priority"`

	// RelevanceScore is set by the ranker, in [0.0, 1.0].
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// DownloadURL is derived from (Backend, Accession) via a fixed template.
	DownloadURL string `json:"download_url,omitempty" yaml:"download_url,omitempty"`
}

// Response is the final pipeline output for one query. It is constructed
// once and never mutated after return.
type Response struct {
	OriginalQuery   string           `json:"original_query" yaml:"original_query"`
	Intent          Intent           `json:"parsed_intent" yaml:"parsed_intent"`
	Strategies      []SearchStrategy `json:"search_strategies" yaml:"search_strategies"`
	Records         []Record         `json:"results" yaml:"results"`
	Recommendations []string         `json:"recommendations" yaml:"recommendations"`
}
