/*
Package tinytp provides a small fixed-size thread pool for Go with a bounded
task queue, batch result harvesting, and graceful shutdown.

Core (pkg/pool):
  - pool: fixed worker count, bounded FIFO task queue, non-blocking submit
    with backpressure, idle-worker introspection, drain-style result buffer

Wrappers built on the pool's public contract:
  - timeout (pkg/timeout): deadline-polling dispatch driven by the pool's
    idle-worker count
  - timer (pkg/timer): interval and cron-expression repeating tasks
  - throttle (pkg/throttle): local and Redis-coordinated submission limiting

Example usage:

	import (
		"github.com/Lau0120/tiny-thread-pool/pkg/pool"
	)

	p := pool.New(4, 100) // 4 workers, queue capacity 100
	defer p.Shutdown()

	p.Submit(pool.TaskFunc(func(ctx context.Context) pool.Result {
		return compute()
	}))

	for _, r := range p.Drain() {
		// handle result
	}
*/
package tinytp
