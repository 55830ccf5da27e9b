// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/angioreport/pkg/diagnosis"
	"github.com/pdiddy/angioreport/pkg/types"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [file]",
	Short: "Compose a diagnosis from an angiography report",
	Long: `Diagnose reads a coronary angiography report and prints one diagnosis
sentence. The report comes from --text, from the named file, or from stdin
when no file (or "-") is given.

Examples:
  angioreport diagnose report.txt
  angioreport diagnose --text "ПНА: стеноз 80%"
  cat report.txt | angioreport diagnose --format json
  angioreport diagnose report.txt --lang en`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagnose,
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	text, err := readReport(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := diagnosis.New(cfg, diagnosis.WithLogger(logger))
	if err != nil {
		return err
	}

	result := engine.Diagnose(text)
	logger.Info("diagnosed", "findings", len(result.Findings), "significant", result.Classification.Significant)
	return writeResult(cmd.OutOrStdout(), result, cfg.Output.Format)
}

// readReport returns the report text from --text, a file argument, or stdin.
func readReport(cmd *cobra.Command, args []string) (string, error) {
	if cmd.Flags().Changed("text") {
		text, _ := cmd.Flags().GetString("text")
		return text, nil
	}

	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading report %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading report from stdin: %w", err)
	}
	return string(data), nil
}

// writeResult prints the diagnosis line, or the full result as JSON or YAML.
func writeResult(w io.Writer, result types.Result, format types.OutputFormat) error {
	switch format {
	case types.FormatText, "":
		_, err := fmt.Fprintln(w, result.Diagnosis)
		return err
	case types.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case types.FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}
}

func init() {
	defaults := types.DefaultConfig()

	diagnoseCmd.Flags().String("text", "", "report text (instead of a file or stdin)")
	diagnoseCmd.Flags().String("format", string(defaults.Output.Format), "output format: text, json or yaml")
	diagnoseCmd.Flags().String("lang", string(defaults.Output.Language), "diagnosis language: ru or en")
	diagnoseCmd.Flags().String("catalog", "", "YAML artery catalog replacing the built-in one")
	diagnoseCmd.Flags().Bool("merge-repeats", defaults.Extraction.MergeRepeatMentions, "OR occlusion and stent flags from later lines into the first finding")

	_ = viper.BindPFlag("output.format", diagnoseCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.language", diagnoseCmd.Flags().Lookup("lang"))
	_ = viper.BindPFlag("extraction.catalog_path", diagnoseCmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("extraction.merge_repeat_mentions", diagnoseCmd.Flags().Lookup("merge-repeats"))

	rootCmd.AddCommand(diagnoseCmd)
}
