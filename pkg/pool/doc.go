/*
Package pool provides a fixed-size worker pool with a bounded task queue and
batch result harvesting.

A pool manages a fixed number of worker goroutines that consume tasks from a
bounded FIFO queue. Completed tasks publish their non-nil results into an
internal buffer that the caller harvests in batches; there is no per-task
handle or future.

Basic usage:

	p := pool.New(4, 100) // 4 workers, queue capacity 100
	defer p.Shutdown()

	task := pool.TaskFunc(func(ctx context.Context) pool.Result {
		return compute()
	})

	if err := p.Submit(task); err != nil {
		log.Printf("failed to submit: %v", err)
	}

	for _, r := range p.Drain() {
		// handle result
	}

Task Interface:

Tasks implement a single-method interface:

	type Task interface {
		Execute(ctx context.Context) Result
	}

A nil return means "nothing to publish", which is valid for monitoring or
periodic tasks that only perform side effects. The pool offers no separate
failure channel: a task that wants to report an error encodes it in the
result value it returns.

Backpressure:

Submit never blocks. When the queue is at capacity it returns ErrQueueFull
and the queue is left untouched; rejecting submissions is the pool's only
defense against unbounded memory growth. The caller decides whether to
retry, drop, or throttle upstream (see pkg/throttle).

Introspection:

IdleWorkers, QueueSize and PendingResults expose pool state for
opportunistic scheduling. The counts are hints, not guarantees: workers
change state concurrently, so a count can be stale the instant it is read.
They never gate admission to the queue.

Shutdown:

Shutdown enqueues one stop signal per worker through the same bounded queue
as ordinary tasks and blocks until every worker has acknowledged. Because
the queue is FIFO, tasks accepted before Shutdown are executed before their
worker stops; a running task is never interrupted.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics wrap the pool with Prometheus
instrumentation; see pkg/metrics for the exported series.
*/
package pool
