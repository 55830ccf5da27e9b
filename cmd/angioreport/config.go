// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/angioreport/pkg/types"
)

// setDefaults registers every config key with viper so that environment
// variables (ANGIOREPORT_EXTRACTION_PERCENT_AFTER, ...) are honored by
// Unmarshal even when no config file sets them.
func setDefaults(cfg types.Config) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("extraction.occlusion_window", cfg.Extraction.OcclusionWindow)
	viper.SetDefault("extraction.percent_before", cfg.Extraction.PercentBefore)
	viper.SetDefault("extraction.percent_after", cfg.Extraction.PercentAfter)
	viper.SetDefault("extraction.merge_repeat_mentions", cfg.Extraction.MergeRepeatMentions)
	viper.SetDefault("extraction.positional_fallback", cfg.Extraction.PositionalFallback)
	viper.SetDefault("extraction.catalog_path", cfg.Extraction.CatalogPath)
	viper.SetDefault("output.language", string(cfg.Output.Language))
	viper.SetDefault("output.format", string(cfg.Output.Format))
}

// loadConfig resolves the effective configuration: flags bound by the caller
// override the environment, which overrides the config file and defaults.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect angioreport configuration",
	Long: `Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (ANGIOREPORT_*)
3. Config file (./angioreport.yaml or ~/.config/angioreport/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", used)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
