// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the angioreport CLI. The CLI is a thin
// shell around pkg/diagnosis: it reads report text, runs the engine and
// prints the diagnosis.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/angioreport/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE and tagged with a per-invocation
// run ID.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// rootCmd is the base command for the angioreport CLI.
var rootCmd = &cobra.Command{
	Use:   "angioreport",
	Short: "Turn coronary angiography reports into a diagnosis line",
	Long: `angioreport reads the free-text conclusion of a coronary angiography
(Russian clinical shorthand such as "ПНА: стеноз 80%") and prints a
normalized diagnosis naming the stenosed, occluded and stented arteries.

Use "diagnose" for a report, "catalog" to list the recognized arteries and
abbreviations, and "config show" to inspect the effective settings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})).With("run_id", uuid.New().String())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./angioreport.yaml or ~/.config/angioreport/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log extraction decisions to stderr")
}

func initConfig() {
	setDefaults(types.DefaultConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("angioreport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "angioreport"))
		}
	}

	viper.SetEnvPrefix("ANGIOREPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config %s: %v\n", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
