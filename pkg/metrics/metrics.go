// Package metrics provides Prometheus instrumentation for tinytp components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for tinytp components.
type Registry struct {
	// Pool Metrics
	TasksSubmitted        *prometheus.CounterVec
	TasksRejected         *prometheus.CounterVec
	TasksExecuted         *prometheus.CounterVec
	TasksPanicked         *prometheus.CounterVec
	ResultsPublished      *prometheus.CounterVec
	ResultsDrained        *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	PoolWorkers           *prometheus.GaugeVec
	PoolIdleWorkers       *prometheus.GaugeVec
	PoolQueuedTasks       *prometheus.GaugeVec
	PoolPendingResults    *prometheus.GaugeVec

	// Throttle Metrics
	ThrottleRequests *prometheus.CounterVec
	ThrottleAllowed  *prometheus.CounterVec
	ThrottleDenied   *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by tinytp components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Pool Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted into the queue",
			},
			[]string{"pool_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "tasks_rejected_total",
				Help:      "Total number of rejected submissions",
			},
			[]string{"pool_name", "reason"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"pool_name"},
		),

		TasksPanicked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "tasks_panicked_total",
				Help:      "Total number of tasks that panicked during execution",
			},
			[]string{"pool_name"},
		),

		ResultsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "results_published_total",
				Help:      "Total number of non-nil results published to the buffer",
			},
			[]string{"pool_name"},
		),

		ResultsDrained: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "results_drained_total",
				Help:      "Total number of results handed to callers via Drain",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		PoolWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Number of workers in the pool",
			},
			[]string{"pool_name"},
		),

		PoolIdleWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "idle_workers",
				Help:      "Number of workers currently waiting for work",
			},
			[]string{"pool_name"},
		),

		PoolQueuedTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "queued_tasks",
				Help:      "Number of queued tasks",
			},
			[]string{"pool_name"},
		),

		PoolPendingResults: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tinytp",
				Subsystem: "pool",
				Name:      "pending_results",
				Help:      "Number of results awaiting a drain",
			},
			[]string{"pool_name"},
		),

		// Throttle Metrics
		ThrottleRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "throttle",
				Name:      "requests_total",
				Help:      "Total number of throttled submission attempts",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		ThrottleAllowed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "throttle",
				Name:      "allowed_total",
				Help:      "Total number of allowed submissions",
			},
			[]string{"limiter_type", "limiter_name"},
		),

		ThrottleDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinytp",
				Subsystem: "throttle",
				Name:      "denied_total",
				Help:      "Total number of denied submissions",
			},
			[]string{"limiter_type", "limiter_name"},
		),
	}
}
