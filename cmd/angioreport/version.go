// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pdiddy/angioreport/internal/catalog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the angioreport version and built-in catalog size",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "angioreport %s (%s, %d arteries in built-in catalog)\n",
			version, runtime.Version(), len(catalog.Default().Arteries()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
