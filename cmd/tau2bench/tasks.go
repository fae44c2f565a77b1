package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/binleiwang/tau2-bench/pkg/cli"
	"github.com/binleiwang/tau2-bench/pkg/tasks"
)

var tasksFlags struct {
	dir    string
	format string
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks in the tasks directory",
	RunE:  runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)

	tasksCmd.Flags().StringVarP(&tasksFlags.dir, "dir", "d", "./tasks", "tasks directory")
	tasksCmd.Flags().StringVar(&tasksFlags.format, "format", "text", "output format (text, json)")
}

func runTasks(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(tasksFlags.format)
	if err != nil {
		return err
	}
	list, err := tasks.LoadDir(tasksFlags.dir)
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		type row struct {
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
			Steps       int    `json:"steps"`
			Checks      int    `json:"checks"`
		}
		rows := make([]row, len(list))
		for i, t := range list {
			rows[i] = row{
				Name:        t.Name,
				Description: t.Description,
				Steps:       len(t.Script),
				Checks:      len(t.Scoring.RequiredActions) + len(t.Scoring.Assertions),
			}
		}
		return cli.WriteJSON(os.Stdout, rows)
	}

	table := cli.NewTable("NAME", "STEPS", "CHECKS", "DESCRIPTION")
	for _, t := range list {
		table.AddRow(t.Name, len(t.Script),
			len(t.Scoring.RequiredActions)+len(t.Scoring.Assertions), t.Description)
	}
	return table.Write(os.Stdout)
}
