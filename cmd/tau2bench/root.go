package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tau2bench",
	Short: "Deterministic policy benchmark for restaurant service agents",
	Long: `tau2bench replays scripted agent tool calls against an isolated
restaurant state, enforces service policy deterministically, and scores
each session against its task's required actions and assertions.

Sessions never share state: every task seeds its own store, and the same
script against the same seed always produces the same score.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
