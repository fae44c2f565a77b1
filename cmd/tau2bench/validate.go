package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binleiwang/tau2-bench/pkg/tasks"
)

var validateFlags struct {
	dir  string
	file string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate task files without running them",
	Long: `Validate checks task YAML files for structural problems: missing
names, empty scripts, unnamed tools, and malformed scoring specs.

Examples:
  # Validate every task in a directory
  tau2bench validate --dir ./tasks

  # Validate a single file
  tau2bench validate --file tasks/allergy.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "./tasks", "tasks directory")
	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "single task file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		list []tasks.Task
		err  error
	)
	if validateFlags.file != "" {
		list, err = tasks.LoadFile(validateFlags.file)
	} else {
		list, err = tasks.LoadDir(validateFlags.dir)
	}
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d tasks valid\n", len(list))
	return nil
}
