// Package metrics provides Prometheus instrumentation for tinytp components.
//
// The metrics package provides automatic instrumentation for:
//   - Pool operations (submissions, rejections, executions, drains)
//   - Pool state (workers, idle workers, queued tasks, pending results)
//   - Submission throttling (requests, allows, denies)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	p := pool.NewWithMetrics(5, 100, "task_pool")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	p := pool.NewWithConfigAndMetrics(
//		pool.Config{WorkerCount: 5, QueueSize: 100},
//		"task_pool",
//		config,
//	)
//
// # Available Metrics
//
// ## Pool Metrics
//
//   - tinytp_pool_tasks_submitted_total: Total number of tasks accepted into the queue
//   - tinytp_pool_tasks_rejected_total: Total number of rejected submissions
//   - tinytp_pool_tasks_executed_total: Total number of tasks executed
//   - tinytp_pool_tasks_panicked_total: Total number of tasks that panicked
//   - tinytp_pool_results_published_total: Total number of published results
//   - tinytp_pool_results_drained_total: Total number of drained results
//   - tinytp_pool_task_duration_seconds: Time spent executing tasks
//   - tinytp_pool_workers: Number of workers in the pool
//   - tinytp_pool_idle_workers: Number of workers waiting for work
//   - tinytp_pool_queued_tasks: Number of queued tasks
//   - tinytp_pool_pending_results: Number of results awaiting a drain
//
// ## Throttle Metrics
//
//   - tinytp_throttle_requests_total: Total number of throttled submission attempts
//   - tinytp_throttle_allowed_total: Total number of allowed submissions
//   - tinytp_throttle_denied_total: Total number of denied submissions
//
// # Labels
//
// Metrics include relevant labels for filtering and aggregation:
//
//   - pool_name: User-provided name for the pool instance
//   - reason: Rejection reason ("queue_full" or "closed")
//   - limiter_type: "local" or "redis_fixed_window"
//   - limiter_name: User-provided name for the limiter instance
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	p := pool.NewWithMetrics(5, 100, "task_pool")
//	mp := p.(metrics.Instrumentable)
//	mp.DisableMetrics()
//	mp.EnableMetrics(config)
package metrics
