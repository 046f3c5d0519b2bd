package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benchmeter/benchmeter/internal/archive"
	"github.com/benchmeter/benchmeter/internal/store"
)

var archiveDB string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Record and inspect benchmark result history",
}

var archiveAddCmd = &cobra.Command{
	Use:   "add FILE",
	Short: "Record the results of a file into the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveAdd,
}

var archiveListCmd = &cobra.Command{
	Use:   "list [NAME]",
	Short: "List archived results, optionally for one benchmark",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArchiveList,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveAddCmd)
	archiveCmd.AddCommand(archiveListCmd)

	archiveCmd.PersistentFlags().StringVar(&archiveDB, "db", "", "Archive database path (default from BM_ARCHIVE_PATH)")
}

func archivePath() string {
	if archiveDB != "" {
		return archiveDB
	}
	return viper.GetString("archive_path")
}

func runArchiveAdd(cmd *cobra.Command, args []string) error {
	suite, err := store.Load(args[0])
	if err != nil {
		return err
	}

	db, err := archive.Open(archivePath())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RecordSuite(cmd.Context(), suite); err != nil {
		return err
	}
	fmt.Printf("Archived %d benchmark(s) from %s\n", suite.Len(), args[0])
	return nil
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	db, err := archive.Open(archivePath())
	if err != nil {
		return err
	}
	defer db.Close()

	var entries []archive.Entry
	if len(args) == 1 {
		entries, err = db.History(cmd.Context(), args[0])
	} else {
		entries, err = db.All(cmd.Context())
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No archived results.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-20s %s\n",
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			e.Name,
			formatEntry(e))
	}
	return nil
}

func formatEntry(e archive.Entry) string {
	if e.Median == nil {
		return fmt.Sprintf("calibration (%d runs)", e.RunCount)
	}
	summary := fmt.Sprintf("%.6g %s", *e.Median, e.Unit)
	if e.StdDev != nil {
		summary += fmt.Sprintf(" +- %.2g", *e.StdDev)
	}
	return fmt.Sprintf("%s (%d runs, %d samples)", summary, e.RunCount, e.SampleSum)
}
