package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benchmeter/benchmeter/internal/bench"
	"github.com/benchmeter/benchmeter/internal/store"
)

var (
	convertOutput     string
	convertReplace    bool
	convertBenchmarks []string
	convertExtract    string
	convertRemoveMeta bool
	convertUpdateMeta []string
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Rewrite a result file, optionally transforming it",
	Long: `Read a result file, apply the requested transformations and write the
result to a new file:

  --benchmark         keep only the named benchmarks
  --extract-metadata  pivot a numeric metadata key into the sample series
  --remove-all-metadata  strip all metadata except name and unit
  --update-metadata   set a metadata value on every run (KEY=VALUE)`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (required)")
	convertCmd.Flags().BoolVar(&convertReplace, "replace", false, "Overwrite the output file if it exists")
	convertCmd.Flags().StringArrayVar(&convertBenchmarks, "benchmark", nil, "Keep only this benchmark (repeatable)")
	convertCmd.Flags().StringVar(&convertExtract, "extract-metadata", "", "Pivot this metadata key into the sample series")
	convertCmd.Flags().BoolVar(&convertRemoveMeta, "remove-all-metadata", false, "Strip all metadata except name and unit")
	convertCmd.Flags().StringArrayVar(&convertUpdateMeta, "update-metadata", nil, "Set KEY=VALUE on every run (repeatable)")
	_ = convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	suite, err := store.Load(args[0])
	if err != nil {
		return err
	}

	if len(convertBenchmarks) > 0 {
		kept := make([]*bench.Benchmark, 0, len(convertBenchmarks))
		for _, name := range convertBenchmarks {
			b, err := suite.Get(name)
			if err != nil {
				return err
			}
			kept = append(kept, b)
		}
		suite, err = bench.NewSuite(kept)
		if err != nil {
			return err
		}
	}

	patch, err := parseMetadataPatch(convertUpdateMeta)
	if err != nil {
		return err
	}

	for _, b := range suite.Benchmarks() {
		if convertExtract != "" {
			if err := b.ExtractMetadata(convertExtract); err != nil {
				return fmt.Errorf("benchmark %q: %w", b.Name(), err)
			}
		}
		if convertRemoveMeta {
			b.RemoveAllMetadata()
		}
		if len(patch) > 0 {
			if err := b.UpdateMetadata(patch); err != nil {
				return fmt.Errorf("benchmark %q: %w", b.Name(), err)
			}
		}
	}

	return store.Save(convertOutput, suite, convertReplace)
}

// parseMetadataPatch parses repeated KEY=VALUE flags, classifying each
// value as integer, float or text from its form.
func parseMetadataPatch(pairs []string) (bench.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	patch := bench.Metadata{}
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid metadata %q: expected KEY=VALUE", pair)
		}
		patch[key] = parseMetadataScalar(raw)
	}
	return patch, nil
}

func parseMetadataScalar(raw string) bench.Value {
	if n, err := bench.ParseNumber(raw); err == nil {
		return bench.NumberValue(n)
	}
	return bench.StringValue(raw)
}
