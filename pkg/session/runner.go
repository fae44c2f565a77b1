package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

// Job is one session's worth of work: a seed to build its private store
// from and the scripted calls to apply.
type Job struct {
	Name     string
	Seed     *restaurant.Seed
	Requests []tools.Request
	Timeout  time.Duration
}

// JobResult pairs a job with its session outcome or a fatal setup error.
type JobResult struct {
	Name   string
	Result Result
	Err    error
}

// Runner executes independent jobs in parallel. Each job gets its own store
// built from its own seed, so no mutable state crosses sessions.
type Runner struct {
	registry *tools.Registry
	workers  int
	logger   *slog.Logger
}

// NewRunner builds a runner over a shared tool registry.
func NewRunner(registry *tools.Registry, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		registry: registry,
		workers:  workers,
		logger:   slog.Default().With("component", "runner"),
	}
}

// Run executes all jobs and returns results in job order. A canceled context
// skips jobs not yet started; in-flight sessions run to completion so their
// logs stay scorable.
func (r *Runner) Run(ctx context.Context, jobs []Job) []JobResult {
	results := make([]JobResult, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = r.runOne(jobs[i])
			}
		}()
	}

	for i := range jobs {
		select {
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				results[j] = JobResult{Name: jobs[j].Name, Err: ctx.Err()}
			}
			close(indexes)
			wg.Wait()
			return results
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return results
}

func (r *Runner) runOne(job Job) JobResult {
	seed := job.Seed
	if seed == nil {
		seed = restaurant.DefaultSeed()
	}
	store, err := seed.Build()
	if err != nil {
		// Seed failure is fatal to this session only.
		r.logger.Error("seed build failed", "job", job.Name, "error", err)
		return JobResult{Name: job.Name, Err: err}
	}

	opts := []Option{WithLogger(r.logger)}
	if job.Timeout > 0 {
		opts = append(opts, WithTimeout(job.Timeout))
	}
	sess := New(store, r.registry, opts...)
	for _, req := range job.Requests {
		if _, err := sess.Apply(req); err != nil {
			break
		}
	}
	return JobResult{Name: job.Name, Result: sess.Finish()}
}
