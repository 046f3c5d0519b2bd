package main

import (
	"github.com/spf13/cobra"

	"github.com/benchmeter/benchmeter/internal/store"
)

var (
	mergeOutput  string
	mergeReplace bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Merge several result files into one",
	Long: `Merge result files into a single suite. Benchmarks sharing a name are
combined by concatenating their runs, which requires compatible metadata
(same machine, same calibration parameters); distinct names are collected
side by side.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Output file (required)")
	mergeCmd.Flags().BoolVar(&mergeReplace, "replace", false, "Overwrite the output file if it exists")
	_ = mergeCmd.MarkFlagRequired("output")
}

func runMerge(cmd *cobra.Command, args []string) error {
	merged, err := store.Load(args[0])
	if err != nil {
		return err
	}
	for _, path := range args[1:] {
		suite, err := store.Load(path)
		if err != nil {
			return err
		}
		for _, b := range suite.Benchmarks() {
			if err := merged.AddBenchmark(b); err != nil {
				return err
			}
		}
	}
	return store.Save(mergeOutput, merged, mergeReplace)
}
