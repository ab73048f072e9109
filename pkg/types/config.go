// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// ConnectTimeout bounds connection establishment to the catalog host.
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`

	// TotalTimeout bounds one complete request/response cycle.
	TotalTimeout time.Duration `json:"total_timeout" yaml:"total_timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "genoscope/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetrieveConfig holds settings for the retrieval stage. It is passed to
// the orchestrator at construction time; nothing is read from ambient
// process state.
type RetrieveConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPerStrategy caps results fetched per strategy (default 5).
	MaxPerStrategy int `json:"max_per_strategy" yaml:"max_per_strategy"`

	// ToolTag is the E-utilities "tool" parameter (default "genoscope").
	ToolTag string `json:"tool_tag" yaml:"tool_tag"`

	// ContactEmail is the E-utilities "email" parameter.
	ContactEmail string `json:"contact_email" yaml:"contact_email"`

	// APIKey is an optional NCBI API key. It raises the upstream rate
	// limit but does not change request or parse behavior.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// RankConfig holds settings for the scoring/ranking stage.
type RankConfig struct {
	// MaxResults is the size of the final ranked list (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// HistoryConfig holds settings for the query-history store.
type HistoryConfig struct {
	// Path is the SQLite database file (default "genoscope.db").
	Path string `json:"path" yaml:"path"`

	// MaxEntries is the default number of entries listed (default 20).
	MaxEntries int `json:"max_entries" yaml:"max_entries"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Retrieve RetrieveConfig `json:"retrieve" yaml:"retrieve"`
	Rank     RankConfig     `json:"rank" yaml:"rank"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}
