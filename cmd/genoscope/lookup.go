// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/genoscope/internal/pipeline"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [accession]",
	Short: "Resolve a single accession across the NCBI catalogs",
	Long: `Lookup searches the SRA, GEO, nucleotide, and protein catalogs in turn
for the given accession and prints the first matching record.

Examples:
  genoscope lookup SRR1234567
  genoscope lookup --json GSE190510`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	timeout := cfg.Retrieve.TotalTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	agent := pipeline.New(cfg)
	record, err := agent.Lookup(ctx, args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	fmt.Printf("Accession: %s\n", record.Accession)
	fmt.Printf("Title:     %s\n", record.Title)
	fmt.Printf("Organism:  %s\n", record.Organism)
	fmt.Printf("Type:      %s\n", record.RecordType)
	fmt.Printf("Source:    %s\n", record.Backend)
	fmt.Printf("Download:  %s\n", record.DownloadURL)
	return nil
}

func init() {
	lookupCmd.Flags().Bool("json", false, "output the record as JSON")
	lookupCmd.Flags().Duration("timeout", 60*time.Second, "overall request timeout")

	rootCmd.AddCommand(lookupCmd)
}
