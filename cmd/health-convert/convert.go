// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/health-convert/internal/convert"
	"github.com/pdiddy/health-convert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the exports in the input directory",
	Long: `Convert processes every known export file in a fixed order:
heart_rate, resting_hr, hrv, steps, active_energy, cardio_fitness, sleep and
workouts. Each file is converted independently; a missing file or column is
skipped and an unreadable file is reported, without stopping the run.

This is what health-convert does when run without a subcommand.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

// runConvert always succeeds once configuration is loaded: per-file outcomes
// are reported on stdout and recorded in the manifest, not in the exit code.
func runConvert(cmd *cobra.Command, args []string) error {
	convert.Run(conversionConfig(), os.Stdout)
	return nil
}

func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		InputDir:  viper.GetString(keyInputDir),
		OutputDir: viper.GetString(keyOutputDir),
	}
}
