// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/genoscope/internal/history"
	"github.com/pdiddy/genoscope/internal/pipeline"
	"github.com/pdiddy/genoscope/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [research request]",
	Short: "Process a free-text research request end to end",
	Long: `Query extracts research intent from a free-text request, plans search
strategies, runs them against the NCBI catalogs, and prints a ranked list
of matching records with download locations.

Examples:
  genoscope query "Find human breast cancer RNA-seq data"
  genoscope query --json "COVID-19 protein sequences"
  genoscope query --output results.yaml "mouse liver single-cell data"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	queryText := strings.Join(args, " ")
	cfg := pipelineConfig(cmd)

	timeout := cfg.Retrieve.TotalTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	agent := pipeline.New(cfg)
	resp, err := agent.ProcessQuery(ctx, queryText)
	if err != nil {
		return err
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		if err := recordHistory(ctx, cfg, resp); err != nil {
			log.Warn().Err(err).Msg("could not record query history")
		}
	}

	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		if err := pipeline.WriteResultFile(outputPath, resp); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote results to", outputPath)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return pipeline.FormatJSON(resp, os.Stdout)
	}
	pipeline.FormatTable(resp, os.Stdout)
	return nil
}

func recordHistory(ctx context.Context, cfg types.PipelineConfig, resp *types.Response) error {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, resp)
}

func init() {
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("output", "", "write results to a YAML file")
	queryCmd.Flags().Int("max-results", 10, "maximum number of ranked results")
	queryCmd.Flags().Duration("timeout", 60*time.Second, "overall request timeout")
	queryCmd.Flags().Bool("no-history", false, "do not record this query in the history database")

	rootCmd.AddCommand(queryCmd)
}
