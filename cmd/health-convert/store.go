// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/health-convert/internal/store"
	"github.com/pdiddy/health-convert/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Load converted files into a local SQLite database",
	Long: `Store reads the converted files listed in the output directory's
manifest.yaml (or every known converted file when there is no manifest) and
loads them into a SQLite database: metric series into the samples table and
workouts into the workouts table. Unchanged files are skipped on subsequent
runs; changed files replace their previous rows.`,
	Args: cobra.NoArgs,
	RunE: runStore,
}

func init() {
	storeCmd.Flags().String("db", "", "SQLite database path (default: <output-dir>/health.db)")
	viper.BindPFlag(keyDB, storeCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(storeCmd)
}

func runStore(cmd *cobra.Command, args []string) error {
	cfg := types.StoreConfig{
		OutputDir: viper.GetString(keyOutputDir),
		DBPath:    viper.GetString(keyDB),
	}

	s, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary, err := s.Ingest(ctx, os.Stdout)
	if err != nil {
		return err
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	printStats(os.Stdout, stats)

	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
	}
	return nil
}

func printStats(w io.Writer, stats []store.SourceStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "\nNo samples stored.")
		return
	}

	fmt.Fprintf(w, "\n%-20s  %-8s  %-10s  %8s  %-32s  %s\n",
		"Source", "Kind", "Unit", "Rows", "First", "Last")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, st := range stats {
		fmt.Fprintf(w, "%-20s  %-8s  %-10s  %8d  %-32s  %s\n",
			st.Source, st.Kind, st.Unit, st.Rows, st.First, st.Last)
	}
}
