// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the health-convert CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/health-convert/internal/convert"
)

// version is set at build time via ldflags.
var version = "dev"

// Config keys shared by flags, the config file and HEALTH_CONVERT_* variables.
const (
	keyInputDir  = "input_dir"
	keyOutputDir = "output_dir"
	keyDB        = "db"
)

// rootCmd is the base command for the health-convert CLI. Run without a
// subcommand it converts the exports in the input directory.
var rootCmd = &cobra.Command{
	Use:   "health-convert",
	Short: "Convert health-app exports into timestamp,value,unit series",
	Long: `health-convert reads the tab-delimited exports of a health app (heart rate,
steps, sleep, workouts, ...) from the input directory and writes
comma-delimited files ready for import into another platform.

Metric exports become three columns, timestamp,value,unit, where the
timestamp is the midpoint of each sample's start and end. The workout export
is flattened into start_time, end_time, duration_min, activity_type,
energy_kcal and distance_km.

Missing exports are skipped. Results go to converted/ by default.`,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./health-convert.yaml or ~/.config/health-convert/config.yaml)")
	rootCmd.PersistentFlags().String("input-dir", convert.DefaultInputDir, "directory containing the exported files")
	rootCmd.PersistentFlags().String("output-dir", convert.DefaultOutputDir, "directory for converted files")

	viper.BindPFlag(keyInputDir, rootCmd.PersistentFlags().Lookup("input-dir"))
	viper.BindPFlag(keyOutputDir, rootCmd.PersistentFlags().Lookup("output-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("health-convert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "health-convert"))
		}
	}

	viper.SetEnvPrefix("HEALTH_CONVERT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
