package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchmeter/benchmeter/internal/bench"
	"github.com/benchmeter/benchmeter/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Display detailed statistics for each benchmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	suite, err := store.Load(args[0])
	if err != nil {
		return err
	}

	for i, b := range suite.Benchmarks() {
		if i > 0 {
			fmt.Println()
		}
		printStats(b)
	}
	return nil
}

func printStats(b *bench.Benchmark) {
	fmt.Printf("=== %s ===\n", b.Name())
	fmt.Printf("Runs:              %d\n", b.RunCount())
	fmt.Printf("Samples per run:   %s\n", formatCount(b.SamplesPerRun()))
	fmt.Printf("Warmups per run:   %s\n", formatCount(b.WarmupsPerRun()))
	fmt.Printf("Total duration:    %s\n", bench.FormatValue("second", b.TotalDuration()))
	if start, end, ok := b.Dates(); ok {
		fmt.Printf("Start date:        %s\n", bench.FormatDate(start))
		fmt.Printf("End date:          %s\n", bench.FormatDate(end))
	}

	if b.IsCalibration() {
		fmt.Printf("\n%s\n", b.String())
		return
	}

	values := bench.Float64s(b.Samples())
	unit := b.Unit()
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	med, _ := b.Median()
	avg, _ := b.Mean()

	fmt.Println()
	fmt.Printf("Minimum:           %s\n", bench.FormatValue(unit, min))
	fmt.Printf("Median:            %s\n", bench.FormatValue(unit, med))
	fmt.Printf("Mean:              %s\n", bench.FormatValue(unit, avg))
	if dev, err := b.StdDev(); err == nil {
		fmt.Printf("Std dev:           %s\n", bench.FormatValue(unit, dev))
	}
	fmt.Printf("Maximum:           %s\n", bench.FormatValue(unit, max))
}

// formatCount renders a per-run count, flagging non-uniform runs.
func formatCount(c bench.AverageCount) string {
	if n, ok := c.Int(); ok {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%.1f (non-uniform)", c.Value)
}
