package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/binleiwang/tau2-bench/pkg/cli"
	"github.com/binleiwang/tau2-bench/pkg/config"
	"github.com/binleiwang/tau2-bench/pkg/results"
	"github.com/binleiwang/tau2-bench/pkg/scoring"
	"github.com/binleiwang/tau2-bench/pkg/session"
	"github.com/binleiwang/tau2-bench/pkg/tasks"
	"github.com/binleiwang/tau2-bench/pkg/telemetry/logging"
	"github.com/binleiwang/tau2-bench/pkg/telemetry/metrics"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

var runFlags struct {
	tasksDir string
	workers  int
	logLevel string
	backend  string
	watch    bool
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run benchmark tasks and persist scored results",
	Long: `Run every task in the tasks directory. Each task seeds a private
restaurant state, replays its scripted tool calls in order, and is scored
against its required actions and assertions.

Examples:
  # Run with default config
  tau2bench run

  # Run a different task directory with more workers
  tau2bench run --tasks ./scenarios --workers 8

  # Keep running, reloading tasks when files change
  tau2bench run --watch

  # Validate config and tasks without running sessions
  tau2bench run --dry-run`,
	RunE: runBenchmark,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.tasksDir, "tasks", "t", "", "override tasks directory")
	runCmd.Flags().IntVarP(&runFlags.workers, "workers", "w", 0, "override worker count")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runFlags.backend, "backend", "", "override results backend (memory, sqlite)")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "rerun when task files change")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and tasks without running")
}

// loadRunConfig loads the config file, falling back to built-in defaults
// when the default path does not exist, then applies flag overrides.
func loadRunConfig() (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(cfgFile); err != nil {
		if !os.IsNotExist(err) || cfgFile != "config.yaml" {
			return nil, cli.NewConfigError("", fmt.Sprintf("cannot read %s: %v", cfgFile, err))
		}
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return nil, cli.NewConfigError("", err.Error())
		}
	}

	if runFlags.tasksDir != "" {
		cfg.Tasks.Dir = runFlags.tasksDir
	}
	if runFlags.workers > 0 {
		cfg.Runner.Workers = runFlags.workers
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if runFlags.backend != "" {
		cfg.Results.Backend = runFlags.backend
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openResultsStore(cfg *config.Config) (results.Store, error) {
	switch cfg.Results.Backend {
	case "memory":
		return results.NewMemoryStore(), nil
	case "sqlite":
		return results.NewSQLiteStore(&results.SQLiteConfig{
			Path:        cfg.Results.SQLitePath,
			BusyTimeout: cfg.Results.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported results backend: %s", cfg.Results.Backend)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	logger, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		RedactPII: cfg.Logging.RedactPII,
	})
	if err != nil {
		return cli.NewConfigError("logging", err.Error())
	}

	taskList, err := tasks.LoadDir(cfg.Tasks.Dir)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	if len(taskList) == 0 {
		return fmt.Errorf("no tasks found in %s", cfg.Tasks.Dir)
	}
	fmt.Printf("✓ Loaded %d tasks from %s\n", len(taskList), cfg.Tasks.Dir)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration and tasks valid")
		return nil
	}

	var collector *metrics.Collector
	registryOpts := []tools.Option{tools.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&metrics.Config{
			Enabled:   true,
			Namespace: cfg.Metrics.Namespace,
			Subsystem: cfg.Metrics.Subsystem,
		}, nil)
		registryOpts = append(registryOpts, tools.WithObserver(collector))

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.ListenAddress, mux); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
		fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Metrics.ListenAddress)
	}

	store, err := openResultsStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer store.Close()

	if cfg.Results.Backend == "sqlite" && cfg.Results.RetentionDays > 0 {
		pruner, err := results.NewPruner(store, &results.PrunerConfig{
			RetentionDays: cfg.Results.RetentionDays,
			Schedule:      cfg.Results.PruneSchedule,
		})
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		if err := pruner.Start(); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer pruner.Stop()
	}

	registry := tools.NewRegistry(registryOpts...)
	runner := session.NewRunner(registry, cfg.Runner.Workers)
	ctx := cli.SetupSignalHandler()

	runSuite := func(list []tasks.Task) error {
		return runAndScore(ctx, cfg, runner, collector, store, list)
	}
	if err := runSuite(taskList); err != nil {
		return cli.NewCommandError("run", err)
	}

	if runFlags.watch || cfg.Tasks.Watch {
		watcher, err := tasks.NewWatcher(cfg.Tasks.Dir, tasks.DefaultDebounce)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		fmt.Println("\nWatching for task changes. Press Ctrl+C to stop.")
		return watcher.Watch(ctx, func(reloaded []tasks.Task) {
			if err := runSuite(reloaded); err != nil {
				logger.Error("rerun failed", "error", err)
			}
		})
	}
	return nil
}

// runAndScore executes one pass over the task list, scores every session,
// persists records, and prints a summary table.
func runAndScore(ctx context.Context, cfg *config.Config, runner *session.Runner, collector *metrics.Collector, store results.Store, taskList []tasks.Task) error {
	jobs := make([]session.Job, len(taskList))
	for i, task := range taskList {
		timeout := task.Timeout()
		if timeout == 0 {
			timeout = cfg.Runner.SessionTimeout
		}
		jobs[i] = session.Job{
			Name:     task.Name,
			Seed:     task.BuildSeed(),
			Requests: task.Script,
			Timeout:  timeout,
		}
	}

	jobResults := runner.Run(ctx, jobs)

	evaluator := scoring.NewEvaluator()
	progress := cli.NewProgress(len(jobs), os.Stdout)
	table := cli.NewTable("TASK", "PASS", "REWARD", "CALLS", "DURATION")

	var firstErr error
	for i, jr := range jobResults {
		if jr.Err != nil {
			if errors.Is(jr.Err, context.Canceled) {
				continue
			}
			if firstErr == nil {
				firstErr = jr.Err
			}
			table.AddRow(jr.Name, "error", "-", "-", "-")
			continue
		}

		report := evaluator.Evaluate(taskList[i].Scoring, jr.Result)
		progress.Record(report.Pass)
		if collector != nil {
			collector.ObserveSession(jr.Name, report.Pass, report.Reward, jr.Result.Duration)
		}

		rec := results.NewRecord(jr.Name, jr.Result, report)
		if err := store.Save(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
		table.AddRow(jr.Name, report.Pass, fmt.Sprintf("%.2f", report.Reward),
			len(jr.Result.Records), jr.Result.Duration.Round(time.Millisecond))
	}

	fmt.Println()
	if err := table.Write(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("\n%d/%d tasks passed\n", progress.Passed(), len(jobs))
	return firstErr
}
