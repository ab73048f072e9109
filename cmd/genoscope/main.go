// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the genoscope CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/genoscope/internal/secrets"
	"github.com/pdiddy/genoscope/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the genoscope CLI.
var rootCmd = &cobra.Command{
	Use:   "genoscope",
	Short: "Query understanding and retrieval for NCBI sequence catalogs",
	Long: `genoscope turns free-text biology research requests into structured
searches against NCBI catalogs (nuccore, protein, SRA, GEO) and returns a
ranked list of matching records with download locations.

Each operation is a subcommand: query runs the full pipeline on a research
request, lookup resolves a single accession, fetch downloads sequence data,
and history lists previously processed queries.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real credentials live in .secrets/ or the config.
		_ = godotenv.Load()

		setupLogging(cmd)

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func setupLogging(cmd *cobra.Command) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./genoscope.yaml or ~/.config/genoscope/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("genoscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "genoscope"))
		}
	}

	viper.SetEnvPrefix("GENOSCOPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configuration from config file values,
// environment, secrets, and command flags (flags win).
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Retrieve: types.RetrieveConfig{
			HTTPConfig: types.HTTPConfig{
				ConnectTimeout: viper.GetDuration("http.connect_timeout"),
				TotalTimeout:   viper.GetDuration("http.total_timeout"),
				UserAgent:      viper.GetString("http.user_agent"),
			},
			MaxPerStrategy: viper.GetInt("retrieve.max_per_strategy"),
			ToolTag:        viper.GetString("retrieve.tool_tag"),
			ContactEmail:   viper.GetString("retrieve.contact_email"),
			APIKey:         viper.GetString("retrieve.api_key"),
		},
		Rank: types.RankConfig{
			MaxResults: viper.GetInt("rank.max_results"),
		},
		History: types.HistoryConfig{
			Path:       viper.GetString("history.path"),
			MaxEntries: viper.GetInt("history.max_entries"),
		},
	}

	if cfg.Retrieve.APIKey == "" {
		cfg.Retrieve.APIKey = secrets.Get(loadedSecrets, secrets.KeyAPIKey, "NCBI_API_KEY")
	}
	if cfg.Retrieve.ContactEmail == "" {
		cfg.Retrieve.ContactEmail = secrets.Get(loadedSecrets, secrets.KeyContactEmail, "NCBI_CONTACT_EMAIL")
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "genoscope.db"
	}

	if cmd.Flags().Changed("max-results") {
		cfg.Rank.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Retrieve.TotalTimeout, _ = cmd.Flags().GetDuration("timeout")
	}

	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
