package main

import (
	"github.com/spf13/cobra"

	"github.com/benchmeter/benchmeter/internal/sysmeta"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Collect and display metadata of the current host",
	Long: `Collect the host and runtime metadata that would be attached to a
benchmark run recorded on this machine, and print it sorted by key.`,
	Args: cobra.NoArgs,
	RunE: runMetadata,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	meta, err := sysmeta.Host{}.Collect()
	if err != nil {
		return err
	}
	printMetadata(meta, "")
	return nil
}
