/*
Package timeout layers deadline-aware dispatch on top of a worker pool.

Tasks are submitted with a time-to-live and wait in an unbounded pending
list. A polling loop periodically hands pending tasks to the pool, at most
as many per tick as the pool reports idle workers. When a worker finally
runs a task, the task's OnReady branch executes if the deadline has not
passed and its OnExpire branch executes otherwise, so expiry is reported
even for tasks that expired while queued.

	d := timeout.New(timeout.Config{Workers: 4, PollInterval: 100 * time.Millisecond})
	defer d.Stop()

	d.Submit(task, 3*time.Second)

	// later
	for _, r := range d.Drain() {
		// handle outcome
	}

The pool's idle-worker count is advisory, so a dispatched task may still
queue briefly behind others; the deadline check at execution time is what
actually decides the branch.
*/
package timeout
