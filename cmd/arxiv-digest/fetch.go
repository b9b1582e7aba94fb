// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch recent papers without relevance filtering",
	Long: `Fetch runs only the retrieval stage and prints the normalized papers as
JSON in feed order, before any recency or keyword filtering. Useful for
inspecting what the configured query actually returns.`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Query.Timeout}
	papers, err := fetch.Fetch(cmd.Context(), client, cfg.Query)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
