// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/health-convert/internal/convert"
	"github.com/pdiddy/health-convert/pkg/types"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the export files health-convert looks for",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printCatalog(os.Stdout, convert.Catalog())
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func printCatalog(w io.Writer, files []types.ExportFile) {
	fmt.Fprintf(w, "%-20s  %-8s  %s\n", "File", "Kind", "Unit")
	for _, f := range files {
		unit := f.Unit
		if f.Kind() == types.KindWorkout {
			unit = "-"
		}
		fmt.Fprintf(w, "%-20s  %-8s  %s\n", f.Name, f.Kind(), unit)
	}
}
