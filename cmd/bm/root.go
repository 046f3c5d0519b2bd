// Command bm inspects, converts, merges and archives benchmark result
// files produced by the benchmeter model.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "bm",
	Short: "Inspect and manage benchmark result files",
	Long: `bm works with benchmark result files: JSON documents holding one or
more benchmarks, each a series of measurement runs with samples, warmups
and metadata.

Commands read a result file, compute statistics over it, rewrite it, merge
several files into one, or archive results into a local history database.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig wires environment variables (BM_ARCHIVE_PATH, ...) and an
// optional config file into the defaults used by the commands.
func initConfig() {
	viper.SetEnvPrefix("BM")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("archive_path", filepath.Join(home, ".benchmeter", "archive.db"))
		viper.AddConfigPath(filepath.Join(home, ".benchmeter"))
	} else {
		viper.SetDefault("archive_path", "archive.db")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	// Missing config file is fine; only report real read failures.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config: %v\n", err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
