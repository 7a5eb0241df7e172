package pool

import (
	"context"
	"errors"
	"log"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lau0120/tiny-thread-pool/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a new pool with metrics enabled.
func NewWithMetrics(workerCount, queueSize int, name string) Pool {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	}, name, config)
}

// NewWithConfigAndMetrics creates a new pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) Pool {
	if !metricsConfig.Enabled {
		return NewWithConfig(config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		name:     name,
		registry: registry,
		enabled:  true,
	}

	// Count panics before handing off to the caller's handler.
	userHandler := config.PanicHandler
	config.PanicHandler = func(task Task, recovered any) {
		if mp.enabled {
			registry.TasksPanicked.WithLabelValues(name).Inc()
		}
		if wrapped, ok := task.(*metricsTask); ok {
			task = wrapped.original
		}
		if userHandler != nil {
			userHandler(task, recovered)
			return
		}
		log.Printf("pool: task panicked: %v\n%s", recovered, debug.Stack())
	}

	mp.pool = NewWithConfig(config)
	mp.updateMetrics()

	return mp
}

// updateMetrics updates the current state gauges.
func (mp *MetricsPool) updateMetrics() {
	if !mp.enabled {
		return
	}

	mp.registry.PoolWorkers.WithLabelValues(mp.name).Set(float64(mp.pool.Size()))
	mp.registry.PoolIdleWorkers.WithLabelValues(mp.name).Set(float64(mp.pool.IdleWorkers()))
	mp.registry.PoolQueuedTasks.WithLabelValues(mp.name).Set(float64(mp.pool.QueueSize()))
	mp.registry.PoolPendingResults.WithLabelValues(mp.name).Set(float64(mp.pool.PendingResults()))
}

// Submit adds a task to the pool, recording acceptance or rejection.
func (mp *MetricsPool) Submit(task Task) error {
	if !mp.enabled {
		return mp.pool.Submit(task)
	}

	// Wrap the task to collect execution metrics
	wrapped := &metricsTask{
		original: task,
		pool:     mp,
	}

	err := mp.pool.Submit(wrapped)

	switch {
	case err == nil:
		mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
	case errors.Is(err, ErrQueueFull):
		mp.registry.TasksRejected.WithLabelValues(mp.name, "queue_full").Inc()
	case errors.Is(err, ErrPoolClosed):
		mp.registry.TasksRejected.WithLabelValues(mp.name, "closed").Inc()
	}

	mp.updateMetrics()

	return err
}

// metricsTask wraps a Task to collect execution metrics.
type metricsTask struct {
	original Task
	pool     *MetricsPool
}

// Execute runs the original task and records metrics.
func (mt *metricsTask) Execute(ctx context.Context) Result {
	start := time.Now()

	out := mt.original.Execute(ctx)

	if mt.pool.enabled {
		reg := mt.pool.registry
		reg.TaskExecutionDuration.WithLabelValues(mt.pool.name).Observe(time.Since(start).Seconds())
		reg.TasksExecuted.WithLabelValues(mt.pool.name).Inc()
		if out != nil {
			reg.ResultsPublished.WithLabelValues(mt.pool.name).Inc()
		}
		mt.pool.updateMetrics()
	}

	return out
}

// Drain empties the result buffer, counting the handed-out results.
func (mp *MetricsPool) Drain() []Result {
	results := mp.pool.Drain()

	if mp.enabled {
		mp.registry.ResultsDrained.WithLabelValues(mp.name).Add(float64(len(results)))
		mp.updateMetrics()
	}

	return results
}

// IdleWorkers returns the number of workers currently waiting for work.
func (mp *MetricsPool) IdleWorkers() int {
	idle := mp.pool.IdleWorkers()

	if mp.enabled {
		mp.registry.PoolIdleWorkers.WithLabelValues(mp.name).Set(float64(idle))
	}

	return idle
}

// QueueSize returns the current number of queued tasks.
func (mp *MetricsPool) QueueSize() int {
	queued := mp.pool.QueueSize()

	if mp.enabled {
		mp.registry.PoolQueuedTasks.WithLabelValues(mp.name).Set(float64(queued))
	}

	return queued
}

// PendingResults returns the number of results awaiting a Drain.
func (mp *MetricsPool) PendingResults() int {
	pending := mp.pool.PendingResults()

	if mp.enabled {
		mp.registry.PoolPendingResults.WithLabelValues(mp.name).Set(float64(pending))
	}

	return pending
}

// Size returns the number of workers in the pool.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// MaxQueueSize returns the task queue capacity.
func (mp *MetricsPool) MaxQueueSize() int {
	return mp.pool.MaxQueueSize()
}

// Shutdown stops the pool, blocking until all workers have acknowledged.
func (mp *MetricsPool) Shutdown() {
	mp.pool.Shutdown()
	mp.updateMetrics()
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	mp.enabled = config.Enabled

	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}

	if mp.enabled {
		mp.updateMetrics()
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}
