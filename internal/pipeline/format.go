// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/genoscope/pkg/types"
)

// FormatTable writes the response as a human-readable table to w.
func FormatTable(resp *types.Response, w io.Writer) {
	fmt.Fprintf(w, "Query: %s\n", resp.OriginalQuery)
	fmt.Fprintf(w, "Detected: %s | %s | %s\n\n",
		resp.Intent.DataType, resp.Intent.Organism, orDash(resp.Intent.Condition))

	if len(resp.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		fmt.Fprintf(w, "%-4s  %-6s  %-14s  %-50s  %-8s\n",
			"Rank", "Score", "Accession", "Title", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 90))

		for i, r := range resp.Records {
			title := r.Title
			if len(title) > 50 {
				title = title[:47] + "..."
			}
			fmt.Fprintf(w, "%-4d  %-6.2f  %-14s  %-50s  %-8s\n",
				i+1, r.RelevanceScore, r.Accession, title, r.Backend)
		}
		fmt.Fprintf(w, "\n%d results\n", len(resp.Records))
	}

	if len(resp.Recommendations) > 0 {
		fmt.Fprintln(w)
		for _, rec := range resp.Recommendations {
			fmt.Fprintf(w, "  * %s\n", rec)
		}
	}
}

// FormatJSON writes the response as indented JSON to w.
func FormatJSON(resp *types.Response, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
