/*
Package timer fires repeating tasks into a worker pool.

A Scheduler supports two kinds of schedules: fixed intervals with an
optional fire count, and cron expressions (six-field form with a leading
seconds field, via robfig/cron).

	s := timer.NewWithConfig(timer.Config{Workers: 2})
	defer s.Stop()

	s.ScheduleEvery("heartbeat", task, time.Second, 0)   // until canceled
	s.ScheduleEvery("warmup", warmTask, time.Minute, 3)  // exactly 3 fires
	s.ScheduleCron("report", "0 0 * * * *", reportTask)  // top of every hour

Each fire is an ordinary non-blocking Submit into the pool: if the pool's
queue is full the fire is skipped and the schedule advances, so a slow pool
never accumulates an unbounded backlog of missed fires.
*/
package timer
