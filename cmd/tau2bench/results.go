package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/binleiwang/tau2-bench/pkg/cli"
	"github.com/binleiwang/tau2-bench/pkg/results"
)

var resultsFlags struct {
	task     string
	failOnly bool
	limit    int
	format   string
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List stored benchmark results",
	Long: `Results lists scored sessions from the configured results backend,
newest first.

Examples:
  # Most recent results
  tau2bench results --limit 20

  # Failures for one task, as JSON
  tau2bench results --task allergy-safe-ordering --fail-only --format json`,
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().StringVar(&resultsFlags.task, "task", "", "filter by task name")
	resultsCmd.Flags().BoolVar(&resultsFlags.failOnly, "fail-only", false, "only failed sessions")
	resultsCmd.Flags().IntVar(&resultsFlags.limit, "limit", 50, "maximum records")
	resultsCmd.Flags().StringVar(&resultsFlags.format, "format", "text", "output format (text, json)")
}

func runResults(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(resultsFlags.format)
	if err != nil {
		return err
	}
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	store, err := openResultsStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background(), results.Filter{
		TaskName: resultsFlags.task,
		FailOnly: resultsFlags.failOnly,
		Limit:    resultsFlags.limit,
	})
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, records)
	}

	table := cli.NewTable("CREATED", "TASK", "PASS", "REWARD", "CALLS")
	for _, rec := range records {
		table.AddRow(rec.CreatedAt.Format(time.RFC3339), rec.TaskName, rec.Pass,
			fmt.Sprintf("%.2f", rec.Reward), len(rec.Calls))
	}
	return table.Write(os.Stdout)
}
