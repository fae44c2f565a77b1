package results

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/binleiwang/tau2-bench/pkg/scoring"
	"github.com/binleiwang/tau2-bench/pkg/session"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

// ErrNotFound is returned when a record ID has no stored result.
var ErrNotFound = errors.New("result not found")

// Record is one stored session outcome.
type Record struct {
	ID        string          `json:"id"`
	TaskName  string          `json:"task_name"`
	SessionID string          `json:"session_id"`
	Pass      bool            `json:"pass"`
	Reward    float64         `json:"reward"`
	TimedOut  bool            `json:"timed_out"`
	Duration  time.Duration   `json:"duration"`
	Calls     []tools.Record  `json:"calls"`
	Checks    []scoring.Check `json:"checks"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewRecord assembles a stored record from a scored session.
func NewRecord(taskName string, result session.Result, report scoring.Report) Record {
	return Record{
		ID:        uuid.NewString(),
		TaskName:  taskName,
		SessionID: result.SessionID,
		Pass:      report.Pass,
		Reward:    report.Reward,
		TimedOut:  result.TimedOut,
		Duration:  result.Duration,
		Calls:     result.Records,
		Checks:    report.Checks,
		CreatedAt: time.Now().UTC(),
	}
}

// Filter narrows List queries. Zero values match everything.
type Filter struct {
	TaskName string
	FailOnly bool
	Limit    int
}

// Store is the persistence interface for scored results.
type Store interface {
	// Save persists one record.
	Save(ctx context.Context, rec Record) error

	// Get returns a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// List returns records newest first, narrowed by the filter.
	List(ctx context.Context, f Filter) ([]Record, error)

	// DeleteOlderThan removes records created before the cutoff and
	// returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}
