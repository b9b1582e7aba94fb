// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/fetch"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch recent papers and print the keyword-ranked digest",
	Long: `Run executes the full pipeline: one bounded arXiv query over the
configured categories, then recency and keyword filtering. The surviving
papers are printed best score first, as a table or as JSON, and can also
be saved to a YAML digest file.`,
	RunE: runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		cfg.Output.JSON = true
	}
	if save, _ := cmd.Flags().GetString("save"); save != "" {
		cfg.Output.SavePath = save
	}

	client := &http.Client{Timeout: cfg.Query.Timeout}
	res, err := digest.Run(cmd.Context(), client, cfg, time.Now())
	switch {
	case errors.Is(err, fetch.ErrNetwork):
		return fmt.Errorf("no data this cycle: %w", err)
	case errors.Is(err, fetch.ErrParse):
		return fmt.Errorf("unexpected arXiv response, the API format may have changed: %w", err)
	case err != nil:
		return err
	}

	if cfg.Output.SavePath != "" {
		if err := digest.WriteFile(cfg.Output.SavePath, cfg, res); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved digest to", cfg.Output.SavePath)
	}

	if cfg.Output.JSON {
		return digest.FormatJSON(res, os.Stdout)
	}
	digest.FormatTable(res, os.Stdout)
	return nil
}

func init() {
	runCmd.Flags().String("categories", "", "arXiv categories, comma-separated (e.g. cs.AI,cs.LG)")
	runCmd.Flags().String("keywords", "", "relevance keywords, comma-separated")
	runCmd.Flags().Float64("window-days", 1, "recency window in days (fractional allowed)")
	runCmd.Flags().Int("max-results", 10, "maximum number of papers to request (max 50)")
	runCmd.Flags().Bool("json", false, "output the digest as JSON")
	runCmd.Flags().String("save", "", "also write the digest to a YAML file")

	// Bound flags override config file and environment values; config.Load
	// sees them through viper and validates everything in one place.
	viper.BindPFlag("categories", runCmd.Flags().Lookup("categories"))
	viper.BindPFlag("keywords", runCmd.Flags().Lookup("keywords"))
	viper.BindPFlag("window_days", runCmd.Flags().Lookup("window-days"))
	viper.BindPFlag("max_results", runCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(runCmd)
}
