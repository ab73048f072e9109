// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/genoscope/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [accession...]",
	Short: "Download sequence data for nucleotide accessions",
	Long: `Fetch retrieves sequence data for one or more nucleotide accessions in
FASTA or GenBank format and writes it to stdout or a file.

Examples:
  genoscope fetch NM_007294
  genoscope fetch --format gb --output brca1.gb NM_007294 NM_000546`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	format, _ := cmd.Flags().GetString("format")

	timeout := cfg.Retrieve.TotalTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	agent := pipeline.New(cfg)
	data, err := agent.FetchSequences(ctx, args, format)
	if err != nil {
		return err
	}

	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(data), 0o644); err != nil {
			return fmt.Errorf("writing sequence file: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Wrote sequences to", outputPath)
		return nil
	}

	fmt.Print(data)
	return nil
}

func init() {
	fetchCmd.Flags().String("format", "fasta", "sequence format: fasta or gb")
	fetchCmd.Flags().String("output", "", "write sequences to a file instead of stdout")
	fetchCmd.Flags().Duration("timeout", 120*time.Second, "overall request timeout")

	rootCmd.AddCommand(fetchCmd)
}
