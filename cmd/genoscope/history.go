// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/genoscope/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously processed queries",
	Long: `History lists queries recorded by previous runs, newest first, with the
intent that was extracted and a digest of what came back.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No queries recorded yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-19s  %-40s  %-12s  %-16s  %-7s  %s\n",
		"When", "Query", "Organism", "Data Type", "Records", "Top Hit")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, e := range entries {
		queryText := e.QueryText
		if len(queryText) > 40 {
			queryText = queryText[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-19s  %-40s  %-12s  %-16s  %-7d  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			queryText, e.Organism, e.DataType, e.RecordCount, e.TopAccession)
	}

	fmt.Fprintf(os.Stdout, "\n%d queries\n", len(entries))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum entries to list (0 = store default)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}
