package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/binleiwang/tau2-bench/pkg/tools"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false every record call
	// is a no-op.
	Enabled bool

	// Namespace and Subsystem prefix every metric name.
	Namespace string
	Subsystem string

	// DurationBuckets are the histogram buckets for invocation and
	// session durations, in seconds.
	DurationBuckets []float64
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Namespace: "tau2",
		Subsystem: "bench",
	}
}

// Collector registers and records all Prometheus metrics. It implements
// tools.Observer so the registry reports every invocation outcome.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	invocationsTotal   *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	sessionsTotal      *prometheus.CounterVec
	sessionDuration    prometheus.Histogram
	sessionReward      prometheus.Histogram
}

// NewCollector creates a collector and registers its metrics with the
// given registry. A nil registry gets a fresh private one.
func NewCollector(cfg *Config, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "tau2"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "bench"
	}
	if len(cfg.DurationBuckets) == 0 {
		// Tool handlers are in-memory; sessions span many calls.
		cfg.DurationBuckets = []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		invocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tool_invocations_total",
				Help:      "Total tool invocations by tool, kind, and status",
			},
			[]string{"tool", "kind", "status"},
		),

		invocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tool_invocation_duration_seconds",
				Help:      "Duration of tool invocations in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"tool"},
		),

		sessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sessions_total",
				Help:      "Total scored sessions by task and outcome",
			},
			[]string{"task", "outcome"},
		),

		sessionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "session_duration_seconds",
				Help:      "Duration of sessions in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		sessionReward: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "session_reward",
				Help:      "Reward distribution of scored sessions",
				Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
	}

	registry.MustRegister(
		c.invocationsTotal,
		c.invocationDuration,
		c.sessionsTotal,
		c.sessionDuration,
		c.sessionReward,
	)

	return c
}

// ObserveInvocation implements tools.Observer.
func (c *Collector) ObserveInvocation(tool string, kind tools.Kind, status tools.Status, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.invocationsTotal.WithLabelValues(tool, string(kind), string(status)).Inc()
	c.invocationDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// ObserveSession records the outcome of one scored session.
func (c *Collector) ObserveSession(task string, pass bool, reward float64, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	outcome := "fail"
	if pass {
		outcome = "pass"
	}
	c.sessionsTotal.WithLabelValues(task, outcome).Inc()
	c.sessionDuration.Observe(d.Seconds())
	c.sessionReward.Observe(reward)
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
