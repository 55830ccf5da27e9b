// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/angioreport/internal/catalog"
	"github.com/pdiddy/angioreport/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List recognized arteries and abbreviations",
	Long: `Catalog prints the artery table in canonical anatomical order: the
identifier, the genitive form used in diagnoses, and the abbreviations
recognized in reports. Pass --file to inspect (and validate) a custom
catalog before using it with "diagnose --catalog".`,
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		loaded, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}
		cat = loaded
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalog(cmd.OutOrStdout(), cat.Arteries(), jsonOutput)
}

func formatCatalog(w io.Writer, arteries []types.Artery, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(arteries)
	}

	fmt.Fprintf(w, "%-5s  %-22s  %-36s  %s\n", "Order", "ID", "Genitive", "Abbreviations")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, a := range arteries {
		order := "-"
		if a.Order > 0 {
			order = fmt.Sprintf("%d", a.Order)
		}
		fmt.Fprintf(w, "%-5s  %-22s  %-36s  %s\n", order, a.ID, a.Genitive, strings.Join(a.Abbreviations, ", "))
	}
	fmt.Fprintf(w, "\n%d arteries\n", len(arteries))
	return nil
}

func init() {
	catalogCmd.Flags().String("file", "", "catalog YAML file to load instead of the built-in one")
	catalogCmd.Flags().Bool("json", false, "output the catalog as JSON")

	rootCmd.AddCommand(catalogCmd)
}
