package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/minivue/pkg/scheduler"
)

var _ scheduler.Observer = (*Collector)(nil)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "minivue").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "minivue",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the runtime's Prometheus metrics.
type Collector struct {
	jobsQueued    prometheus.Counter
	jobsDeduped   prometheus.Counter
	flushes       prometheus.Counter
	flushDuration prometheus.Histogram
	hostOps       *prometheus.CounterVec
	liveSessions  prometheus.Gauge
	liveEvents    *prometheus.CounterVec
}

// New creates and registers a Collector.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		jobsQueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   "scheduler",
			Name:        "jobs_queued_total",
			Help:        "Total number of jobs added to the scheduler queue",
			ConstLabels: config.ConstLabels,
		}),

		jobsDeduped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   "scheduler",
			Name:        "jobs_deduped_total",
			Help:        "Total number of jobs dropped because they were already queued",
			ConstLabels: config.ConstLabels,
		}),

		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   "scheduler",
			Name:        "flushes_total",
			Help:        "Total number of scheduler flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   "scheduler",
			Name:        "flush_duration_seconds",
			Help:        "Scheduler flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		hostOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   "host",
			Name:        "ops_total",
			Help:        "Total number of host operations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   "live",
			Name:        "sessions_active",
			Help:        "Number of connected live sessions",
			ConstLabels: config.ConstLabels,
		}),

		liveEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   "live",
			Name:        "events_total",
			Help:        "Total number of client events by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),
	}
}

// JobQueued implements scheduler.Observer.
func (c *Collector) JobQueued(deduped bool) {
	if deduped {
		c.jobsDeduped.Inc()
		return
	}
	c.jobsQueued.Inc()
}

// FlushCompleted implements scheduler.Observer.
func (c *Collector) FlushCompleted(_ int, d time.Duration) {
	c.flushes.Inc()
	c.flushDuration.Observe(d.Seconds())
}

// HostOp counts one host operation.
func (c *Collector) HostOp(op string) {
	c.hostOps.WithLabelValues(op).Inc()
}

// SessionOpened increments the active live session gauge.
func (c *Collector) SessionOpened() {
	c.liveSessions.Inc()
}

// SessionClosed decrements the active live session gauge.
func (c *Collector) SessionClosed() {
	c.liveSessions.Dec()
}

// LiveEvent counts a client event with status "ok" or "error".
func (c *Collector) LiveEvent(status string) {
	c.liveEvents.WithLabelValues(status).Inc()
}
