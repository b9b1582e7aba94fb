// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Fetch and rank recent arXiv papers by keyword relevance",
	Long: `arxiv-digest queries the arXiv API for the most recently updated papers
in the configured categories, drops everything outside the recency window,
scores the rest against the configured keywords, and prints the ranked list.

Each run is a single-shot, stateless batch: fetch once, filter once, print.
Configuration comes from a YAML file, ARXIV_DIGEST_* environment variables,
or flags; flags win.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file can supply the environment variables during development.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml or ~/.config/arxiv-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-digest"))
		}
	}

	viper.SetEnvPrefix("ARXIV_DIGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// ARXIV_CATEGORIES is the variable the original deployment used; keep
	// honoring it alongside the prefixed name.
	viper.BindEnv("categories", "ARXIV_DIGEST_CATEGORIES", "ARXIV_CATEGORIES")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
