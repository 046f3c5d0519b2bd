package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/benchmeter/benchmeter/internal/bench"
	"github.com/benchmeter/benchmeter/internal/store"
	"github.com/benchmeter/benchmeter/internal/watch"
)

var (
	showMetadata bool
	showWatch    bool
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Display benchmark results from a file",
	Long: `Display a one-line summary per benchmark: the median and standard
deviation of its samples, or the stabilized loop count for calibration
runs.

With --watch, the display refreshes whenever the file changes (for
example while another process appends runs to it).`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVarP(&showMetadata, "metadata", "m", false, "Also display per-benchmark metadata")
	showCmd.Flags().BoolVarP(&showWatch, "watch", "w", false, "Re-display when the file changes")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !showWatch {
		return showFile(path)
	}

	watcher, err := watch.NewFileWatcher(path)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := showFile(path); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watcher.Errors():
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", err)
		case _, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Println()
			if err := showFile(path); err != nil {
				// The file may be mid-rewrite; report and keep watching.
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}
	}
}

func showFile(path string) error {
	suite, err := store.Load(path)
	if err != nil {
		return err
	}

	single := suite.Len() == 1
	for _, b := range suite.Benchmarks() {
		if single {
			fmt.Println(b.String())
		} else {
			fmt.Printf("%s: %s\n", b.Name(), b.Format())
		}
		if showMetadata {
			printMetadata(b.Metadata(), "  ")
		}
	}
	return nil
}

func printMetadata(meta bench.Metadata, indent string) {
	values := meta.Values()
	for _, name := range meta.Names() {
		mv := values[name]
		fmt.Printf("%s- %s: %s\n", indent, name, formatMetadataValue(mv))
	}
}

func formatMetadataValue(mv bench.MetadataValue) string {
	n, ok := mv.Value.Number()
	if !ok {
		return mv.Value.String()
	}
	switch mv.Unit {
	case bench.UnitDuration:
		return bench.FormatValue("second", n.Float64())
	case bench.UnitByte:
		return bench.FormatValue("byte", n.Float64())
	default:
		return mv.Value.String()
	}
}
