package results

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// PrunerConfig configures scheduled pruning of old results.
type PrunerConfig struct {
	// RetentionDays is how long records are kept. Zero disables pruning.
	RetentionDays int

	// Schedule is a standard cron expression for when pruning runs.
	Schedule string
}

// DefaultPrunerConfig returns the default pruning configuration.
func DefaultPrunerConfig() *PrunerConfig {
	return &PrunerConfig{
		RetentionDays: 30,
		Schedule:      "0 3 * * *",
	}
}

// Pruner deletes results past their retention window on a cron schedule.
type Pruner struct {
	store  Store
	config *PrunerConfig
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPruner validates the schedule and creates a pruner.
func NewPruner(store Store, config *PrunerConfig) (*Pruner, error) {
	if config == nil {
		config = DefaultPrunerConfig()
	}
	if config.RetentionDays < 0 {
		return nil, fmt.Errorf("retention days must not be negative, got %d", config.RetentionDays)
	}
	if _, err := cron.ParseStandard(config.Schedule); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", config.Schedule, err)
	}
	return &Pruner{
		store:  store,
		config: config,
		cron:   cron.New(),
		logger: slog.Default().With("component", "results.pruner"),
	}, nil
}

// Start begins scheduled pruning. A zero retention makes Start a no-op.
func (p *Pruner) Start() error {
	if p.config.RetentionDays == 0 {
		p.logger.Info("result pruning disabled")
		return nil
	}
	_, err := p.cron.AddFunc(p.config.Schedule, func() {
		if _, err := p.RunOnce(context.Background()); err != nil {
			p.logger.Error("scheduled prune failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}
	p.cron.Start()
	p.logger.Info("result pruning started",
		"schedule", p.config.Schedule,
		"retention_days", p.config.RetentionDays)
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info("result pruning stopped")
}

// RunOnce prunes immediately and returns the number of deleted records.
func (p *Pruner) RunOnce(ctx context.Context) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
	return p.store.DeleteOlderThan(ctx, cutoff)
}
